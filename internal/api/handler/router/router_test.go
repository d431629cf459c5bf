package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
)

func TestRouter(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:   "/v1/months",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		Middlewares: []func(http.Handler) http.Handler{tag("primeiro"), tag("segundo")},
	}))

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "rota registrada", method: http.MethodGet, target: "/v1/months", wantStatus: http.StatusOK},
		{name: "rota inexistente", method: http.MethodGet, target: "/v1/desconhecida", wantStatus: http.StatusNotFound, wantCode: apiErrors.ErrRouteNotFound},
		{name: "método não suportado", method: http.MethodDelete, target: "/v1/months", wantStatus: http.StatusMethodNotAllowed, wantCode: apiErrors.ErrMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order = nil
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
				return
			}
			assert.Equal(t, []string{"primeiro", "segundo"}, order)
		})
	}

	assert.Equal(t, []string{"GET /v1/months"}, rt.Routes())
}
