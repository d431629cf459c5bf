package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

func GetRiskRanking(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		asOf, ok := monthParam(w, r, "as_of")
		if !ok {
			return
		}

		limit, ok := limitParam(w, r, "limit")
		if !ok {
			return
		}

		report, err := service.RiskRanking(r.Context(), asOf, limit)
		if err != nil {
			writeAnalysisError(w, logger, "risk-ranking", err)
			return
		}

		logger.WithFields(log.Fields{
			"month":   asOf,
			"scores":  len(report.Scores),
			"skipped": len(report.Skipped),
		}).Info("risk-ranking: ranking calculado")

		writeJSON(w, logger, http.StatusOK, report)
	})
}

func GetSegmentRisk(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		asOf, ok := monthParam(w, r, "as_of")
		if !ok {
			return
		}

		scores, err := service.SegmentRisk(r.Context(), asOf)
		if err != nil {
			writeAnalysisError(w, logger, "segment-risk", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, scores)
	})
}

func GetEntityRisk(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		entityID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		asOf, ok := monthParam(w, r, "as_of")
		if !ok {
			return
		}

		score, err := service.EntityRisk(r.Context(), entityID, asOf)
		if err != nil {
			writeAnalysisError(w, logger.WithField("entity_id", entityID), "entity-risk", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, score)
	})
}
