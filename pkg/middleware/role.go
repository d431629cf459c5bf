package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
)

// RoleMiddleware cria um middleware que restringe o acesso com base nos perfis
// allowedRoles é a lista de perfis que têm permissão para acessar a rota
func RoleMiddleware(allowedRoles []domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cliente não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, claims.Role) {
				logrus.Warningf("Acesso negado para cliente=%s, perfil=%s", claims.ClientName, claims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly é um middleware que permite acesso apenas para administradores
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.Role{domain.RoleAdmin})
}

// AllRoles permite acesso para analistas e administradores
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.Role{domain.RoleAdmin, domain.RoleAnalyst})
}
