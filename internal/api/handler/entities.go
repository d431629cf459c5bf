package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

// GetJourney retorna a jornada mês a mês de uma entidade
func GetJourney(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		entityID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		steps, err := service.Journey(r.Context(), entityID)
		if err != nil {
			writeAnalysisError(w, logger.WithField("entity_id", entityID), "journey", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, steps)
	})
}
