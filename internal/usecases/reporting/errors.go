package reporting

import "github.com/pkg/errors"

var (
	// ErrNoResultToExport indica exportação sem uma simulação corrente
	ErrNoResultToExport = errors.New("nenhum resultado de simulação para exportar")
)
