package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateOrderID gera o identificador curto de um pedido.
func GenerateOrderID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
