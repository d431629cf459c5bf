package handler

import (
	"net/http"

	"github.com/vfg2006/segment-insights-api/internal/api/handler/router"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Dataset(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/months",
			Method:      http.MethodGet,
			Handler:     ListMonths(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dataset",
			Method:      http.MethodGet,
			Handler:     GetDatasetInfo(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dataset/reload",
			Method:      http.MethodPost,
			Handler:     ReloadDataset(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Movements(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/movements/transitions",
			Method:      http.MethodGet,
			Handler:     GetTransitions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/movements/migrations",
			Method:      http.MethodGet,
			Handler:     GetMigrations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/movements/entities",
			Method:      http.MethodGet,
			Handler:     GetMovementEntities(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/movements/summary",
			Method:      http.MethodGet,
			Handler:     GetSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/movements/flows",
			Method:      http.MethodGet,
			Handler:     GetFlows(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Revenue(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/revenue",
			Method:      http.MethodGet,
			Handler:     GetSegmentRevenue(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/revenue/matrix",
			Method:      http.MethodGet,
			Handler:     GetRevenueMatrix(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/revenue/mix",
			Method:      http.MethodGet,
			Handler:     GetProductMix(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Cohorts(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cohorts",
			Method:      http.MethodGet,
			Handler:     ListCohorts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cohorts/retention",
			Method:      http.MethodGet,
			Handler:     GetRetention(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Risk(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/risk/entities",
			Method:      http.MethodGet,
			Handler:     GetRiskRanking(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/risk/segments",
			Method:      http.MethodGet,
			Handler:     GetSegmentRisk(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Entities(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/entities/:id/journey",
			Method:      http.MethodGet,
			Handler:     GetJourney(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/entities/:id/risk",
			Method:      http.MethodGet,
			Handler:     GetEntityRisk(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
