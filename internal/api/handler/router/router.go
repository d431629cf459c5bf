package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // Middlewares da rota, aplicados na ordem da lista
}

// Router registra as rotas da API sobre httprouter e responde rotas e métodos
// desconhecidos no mesmo formato de erro dos handlers
type Router struct {
	router *httprouter.Router
	routes []Route
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) *Router {
	rt := httprouter.New()
	rt.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "Rota não encontrada: "+r.URL.Path, nil)
	})
	rt.HandleMethodNotAllowed = true
	rt.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método "+r.Method+" não suportado em "+r.URL.Path, nil)
	})

	router := &Router{router: rt}
	for _, config := range configs {
		config(router)
	}

	return router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes adiciona rotas ao router com seus middlewares específicos
func (r *Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
		r.routes = append(r.routes, route)
	}
}

// Routes lista método e caminho das rotas registradas, na ordem de registro
func (r *Router) Routes() []string {
	routes := make([]string, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, route.Method+" "+route.Path)
	}
	return routes
}
