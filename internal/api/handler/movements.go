package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

// TransitionsResponse traz a matriz, sua forma tabular com linha NEW e coluna LOST, a
// retenção por origem e, quando metric difere de count, a matriz ponderada
type TransitionsResponse struct {
	Matrix         *domain.TransitionMatrix `json:"matrix"`
	Table          domain.MatrixTable       `json:"table"`
	RetentionRates map[string]float64       `json:"retention_rates"`
	Weighted       *domain.WeightedMatrix   `json:"weighted,omitempty"`
}

var movementStatuses = map[string]domain.MovementStatus{
	"retained":       domain.StatusRetained,
	"moved_internal": domain.StatusMovedInternal,
	"new_system":     domain.StatusNewSystem,
	"lost_system":    domain.StatusLostSystem,
}

func metricNames() string {
	names := make([]string, 0, len(analyzing.Metrics))
	for _, metric := range analyzing.Metrics {
		names = append(names, string(metric))
	}
	return strings.Join(names, ", ")
}

// weightingParam lê metric (padrão count) e product da query
func weightingParam(w http.ResponseWriter, r *http.Request) (analyzing.Weighting, bool) {
	weighting := analyzing.Weighting{
		Metric:  analyzing.Metric(strings.TrimSpace(r.URL.Query().Get("metric"))),
		Product: strings.TrimSpace(r.URL.Query().Get("product")),
	}
	if weighting.Metric == "" {
		weighting.Metric = analyzing.MetricCount
	}
	if !weighting.Metric.Valid() {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Métrica inválida. Valores aceitos: "+metricNames(), nil)
		return analyzing.Weighting{}, false
	}
	return weighting, true
}

func periodParams(w http.ResponseWriter, r *http.Request) (domain.Month, domain.Month, bool) {
	from, ok := monthParam(w, r, "from")
	if !ok {
		return 0, 0, false
	}
	to, ok := monthParam(w, r, "to")
	if !ok {
		return 0, 0, false
	}
	return from, to, true
}

func GetTransitions(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		from, to, ok := periodParams(w, r)
		if !ok {
			return
		}
		weighting, ok := weightingParam(w, r)
		if !ok {
			return
		}
		logger = logger.WithFields(log.Fields{"from_month": from, "to_month": to, "metric": weighting.Metric})

		matrix, err := service.Transitions(r.Context(), from, to)
		if err != nil {
			writeAnalysisError(w, logger, "transitions", err)
			return
		}

		response := TransitionsResponse{
			Matrix:         matrix,
			Table:          matrix.Table(),
			RetentionRates: matrix.RetentionRates(),
		}

		if weighting.Metric != analyzing.MetricCount {
			response.Weighted, err = service.WeightedTransitions(r.Context(), from, to, weighting)
			if err != nil {
				writeAnalysisError(w, logger, "transitions", err)
				return
			}
		}

		logger.WithField("total", matrix.Total()).Info("transitions: matriz calculada")

		writeJSON(w, logger, http.StatusOK, response)
	})
}

func GetMigrations(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		from, to, ok := periodParams(w, r)
		if !ok {
			return
		}

		migrations, err := service.Migrations(r.Context(), from, to)
		if err != nil {
			writeAnalysisError(w, logger, "migrations", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, migrations)
	})
}

// GetMovementEntities classifica as entidades entre from e to; status filtra o resultado
func GetMovementEntities(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		from, to, ok := periodParams(w, r)
		if !ok {
			return
		}

		var filter domain.MovementStatus
		if raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))); raw != "" {
			if filter, ok = movementStatuses[raw]; !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Status inválido. Valores aceitos: retained, moved_internal, new_system, lost_system", nil)
				return
			}
		}

		movements, err := service.Movements(r.Context(), from, to)
		if err != nil {
			writeAnalysisError(w, logger, "movements", err)
			return
		}

		if filter != "" {
			filtered := make([]domain.EntityMovement, 0, len(movements))
			for _, movement := range movements {
				if movement.Status == filter {
					filtered = append(filtered, movement)
				}
			}
			movements = filtered
		}

		writeJSON(w, logger, http.StatusOK, movements)
	})
}

// GetSummary retorna a visão resumo por segmento; metric=count (padrão), revenue,
// volume, ttm_revenue ou ttm_volume, com product opcional
func GetSummary(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		from, to, ok := periodParams(w, r)
		if !ok {
			return
		}
		weighting, ok := weightingParam(w, r)
		if !ok {
			return
		}

		rows, err := service.Summary(r.Context(), from, to, weighting)
		if err != nil {
			writeAnalysisError(w, logger, "summary", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, rows)
	})
}

// GetFlows retorna os fluxos do diagrama com o mesmo peso aceito pela visão resumo
func GetFlows(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		from, to, ok := periodParams(w, r)
		if !ok {
			return
		}
		weighting, ok := weightingParam(w, r)
		if !ok {
			return
		}

		flows, err := service.Flows(r.Context(), from, to, weighting)
		if err != nil {
			writeAnalysisError(w, logger, "flows", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, flows)
	})
}
