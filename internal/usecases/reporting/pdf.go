package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

// ExportPDF monta o relatório da simulação corrente em PDF
func (s *Service) ExportPDF(req *ExportRequest) ([]byte, error) {
	if req == nil || req.Results == nil {
		return nil, ErrNoResultToExport
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "CFO Helper - Financial Report")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 10)
	if req.CompanyName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Company: %s", req.CompanyName))
		pdf.Ln(6)
	}
	if req.OrgType != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Organization type: %s", req.OrgType))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated at: %s", req.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(12)

	s.writeMetricsSection(pdf, req.Results)
	s.writeInputsSection(pdf, req.Inputs)
	s.writeHistoricalSection(pdf, req.Historical)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *Service) writeMetricsSection(pdf *gofpdf.Fpdf, results *domain.FinancialData) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Projection results")
	pdf.Ln(10)

	runway := fmt.Sprintf("%d months", results.Runway)
	if results.RunwayIsUnbounded() {
		runway = "Unlimited"
	}

	rows := [][2]string{
		{"Monthly revenue", fmt.Sprintf("$%.2f", results.Revenue)},
		{"Monthly expenses", fmt.Sprintf("$%.2f", results.Expenses)},
		{"Net profit", fmt.Sprintf("$%.2f", results.NetProfit)},
		{"Runway", runway},
		{"Profit margin", fmt.Sprintf("%.2f%%", results.ProfitMargin)},
	}

	s.writeTable(pdf, rows)
	pdf.Ln(8)
}

func (s *Service) writeInputsSection(pdf *gofpdf.Fpdf, inputs domain.SimulationInputs) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Simulation parameters")
	pdf.Ln(10)

	rows := [][2]string{
		{"Employees", fmt.Sprintf("%d", inputs.Employees)},
		{"Marketing spend", fmt.Sprintf("$%.2f", inputs.MarketingSpend)},
		{"Product price", fmt.Sprintf("$%.2f", inputs.ProductPrice)},
		{"Misc expenses", fmt.Sprintf("$%.2f", inputs.MiscExpenses)},
		{"Current funds", fmt.Sprintf("$%.2f", inputs.CurrentFunds)},
	}

	for _, param := range inputs.CustomParameters {
		rows = append(rows, [2]string{
			fmt.Sprintf("%s (%s)", param.Label, param.Category),
			fmt.Sprintf("$%.2f", param.Value),
		})
	}

	s.writeTable(pdf, rows)
}

func (s *Service) writeHistoricalSection(pdf *gofpdf.Fpdf, series []domain.HistoricalPoint) {
	if len(series) == 0 {
		return
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Historical trend")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(60, 8, "Month", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Revenue", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 8, "Expenses", "1", 0, "R", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, point := range series {
		pdf.CellFormat(60, 8, point.Month, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("$%.2f", point.Revenue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("$%.2f", point.Expenses), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
}

func (s *Service) writeTable(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Arial", "", 11)

	for _, row := range rows {
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(90, 8, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(90, 8, row[1], "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
}
