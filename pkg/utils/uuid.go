package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Prefixos dos identificadores gerados
const (
	RunIDPrefix     = "run"
	TokenIDPrefix   = "tok"
	RevenueIDPrefix = "rev"
)

// idSize cabe nas colunas VARCHAR(21) junto com o prefixo
const idSize = 16

// GenerateID gera um identificador alfanumérico no formato <prefixo>_<id>
func GenerateID(prefix string) (string, error) {
	id, err := gonanoid.Generate(characters, idSize)
	if err != nil {
		return "", err
	}
	return prefix + "_" + id, nil
}
