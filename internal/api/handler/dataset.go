package handler

import (
	"net/http"

	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

func ListMonths(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		months, err := service.Months(r.Context())
		if err != nil {
			writeAnalysisError(w, logger, "months", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, map[string]any{"months": months})
	})
}

func GetDatasetInfo(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		info, err := service.Info(r.Context())
		if err != nil {
			writeAnalysisError(w, logger, "dataset-info", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, info)
	})
}

// ReloadDataset relê a origem de dados; o dataset anterior continua ativo em caso de falha
func ReloadDataset(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("dataset-reload: recarregando dataset")

		info, err := service.Reload(r.Context())
		if err != nil {
			writeAnalysisError(w, logger, "dataset-reload", err)
			return
		}

		logger.WithFields(log.Fields{
			"entities": info.Entities,
			"months":   len(info.Months),
		}).Info("dataset-reload: dataset recarregado")

		writeJSON(w, logger, http.StatusOK, info)
	})
}
