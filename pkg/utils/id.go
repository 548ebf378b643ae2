package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewID gera um id opaco curto para registros criados no lado do cliente
// (parâmetros customizados, mensagens de chat, sessões)
func NewID() (string, error) {
	return gonanoid.Generate(characters, 12)
}

// MustNewID gera um id e ignora o erro de entropia, que na prática não ocorre
func MustNewID() string {
	id, _ := gonanoid.Generate(characters, 12)
	return id
}
