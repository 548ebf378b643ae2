package advising

import (
	"fmt"
	"strings"

	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

// systemInstruction posiciona o modelo como consultor financeiro.
// O produto é em inglês, então o prompt também é.
const systemInstruction = `You are an experienced CFO advisor helping founders and small business owners make financial decisions. Be concise and practical. Ground every recommendation in the numbers provided when financial context is available. Prefer short paragraphs and bullet points over long essays. If a question is outside business finance, politely steer the conversation back.`

// insightsInstruction pede a análise proativa exibida no dashboard
const insightsInstruction = `Based on the financial snapshot below, give exactly 3 short, actionable insights for the business owner. Number them 1 to 3. Each insight must reference a concrete figure from the snapshot.`

// buildPrompt monta o prompt de um turno: instrução, contexto financeiro
// quando disponível, os últimos turnos da conversa e a mensagem nova
func buildPrompt(fc *domain.FinancialContext, history []domain.ChatMessage, window int, message string) string {
	var sb strings.Builder

	sb.WriteString(systemInstruction)
	sb.WriteString("\n\n")

	if fc != nil {
		sb.WriteString(formatContext(*fc))
		sb.WriteString("\n")
	}

	if len(history) > 0 {
		start := 0
		if len(history) > window {
			start = len(history) - window
		}

		sb.WriteString("Conversation so far:\n")
		for _, msg := range history[start:] {
			if msg.IsUser {
				sb.WriteString("User: ")
			} else {
				sb.WriteString("Assistant: ")
			}
			sb.WriteString(msg.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("User: ")
	sb.WriteString(message)

	return sb.String()
}

// buildInsightsPrompt monta o prompt dos insights proativos do dashboard
func buildInsightsPrompt(fc domain.FinancialContext) string {
	return insightsInstruction + "\n\n" + formatContext(fc)
}

func formatContext(fc domain.FinancialContext) string {
	return fmt.Sprintf(`Current financial snapshot:
- Current monthly revenue: $%.2f
- Projected monthly revenue: $%.2f
- Monthly expenses: $%.2f
- Revenue growth rate: %.2f%%
- Planning horizon: %d months
- Monthly cash flow: $%.2f
- Profit margin: %.2f%%
`,
		fc.CurrentRevenue,
		fc.ProjectedRevenue,
		fc.Expenses,
		fc.GrowthRate,
		fc.TimeHorizon,
		fc.CashFlow,
		fc.ProfitMargin,
	)
}
