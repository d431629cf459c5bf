package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

func ListCohorts(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cohorts, err := service.Cohorts(r.Context())
		if err != nil {
			writeAnalysisError(w, logger, "cohorts", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, cohorts)
	})
}

// GetRetention retorna a curva de retenção da coorte (segment, origin) nos meses informados
func GetRetention(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		segment := strings.TrimSpace(r.URL.Query().Get("segment"))
		if segment == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro obrigatório ausente: segment", nil)
			return
		}

		origin, ok := monthParam(w, r, "origin")
		if !ok {
			return
		}

		months, ok := monthsParam(w, r, "months")
		if !ok {
			return
		}

		report, err := service.Retention(r.Context(), segment, origin, months)
		if err != nil {
			writeAnalysisError(w, logger, "retention", err)
			return
		}

		logger.WithFields(log.Fields{
			"segment": segment,
			"month":   origin,
			"points":  len(report.Points),
		}).Info("retention: curva calculada")

		writeJSON(w, logger, http.StatusOK, report)
	})
}
