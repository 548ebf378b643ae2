package advising

import "github.com/pkg/errors"

// Erros do consultor de IA. Só a fase de validação e o rate-gate
// devolvem erro ao chamador; depois de aprovada, a requisição sempre
// produz uma resposta, nem que seja o texto de contingência.
var (
	ErrEmptyMessage   = errors.New("mensagem vazia")
	ErrMessageTooLong = errors.New("mensagem excede o tamanho máximo permitido")
	ErrRateLimited    = errors.New("limite de requisições do consultor atingido")
)
