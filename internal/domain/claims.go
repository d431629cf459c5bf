package domain

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAnalyst
}

// Claims identifica o consumidor da API (serviço de relatórios, painel, operador)
type Claims struct {
	ClientName string `json:"client_name"`
	Role       Role   `json:"role"`
	jwt.RegisteredClaims
}
