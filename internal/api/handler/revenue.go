package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

func GetSegmentRevenue(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		month, ok := monthParam(w, r, "month")
		if !ok {
			return
		}

		revenue, err := service.SegmentRevenue(r.Context(), month)
		if err != nil {
			writeAnalysisError(w, logger, "revenue", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, revenue)
	})
}

func GetRevenueMatrix(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		month, ok := monthParam(w, r, "month")
		if !ok {
			return
		}

		matrix, err := service.RevenueMatrix(r.Context(), month)
		if err != nil {
			writeAnalysisError(w, logger, "revenue-matrix", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, matrix)
	})
}

// GetProductMix retorna a participação dos produtos; sem segment considera todos os segmentos atribuídos
func GetProductMix(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		month, ok := monthParam(w, r, "month")
		if !ok {
			return
		}
		segment := strings.TrimSpace(r.URL.Query().Get("segment"))

		mix, err := service.ProductMix(r.Context(), month, segment)
		if err != nil {
			writeAnalysisError(w, logger, "product-mix", err)
			return
		}

		writeJSON(w, logger, http.StatusOK, mix)
	})
}
