package identifying

import "github.com/pkg/errors"

// Erros de validação do token do provedor de identidade
var (
	ErrInvalidToken   = errors.New("token inválido")
	ErrExpiredToken   = errors.New("token expirado")
	ErrMissingSubject = errors.New("token sem identificador de usuário")
)
