package handler

import (
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON codifica a resposta; falhas de codificação são apenas registradas
func writeJSON(w http.ResponseWriter, logger log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("erro ao codificar resposta")
	}
}

// monthParam lê um mês YYYYMM da query; escreve o erro de validação e retorna false em caso de falha
func monthParam(w http.ResponseWriter, r *http.Request, name string) (domain.Month, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro obrigatório ausente: "+name, nil)
		return 0, false
	}

	month, err := domain.ParseMonth(raw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidMonth, "Mês inválido em "+name+". Use o formato YYYYMM", nil)
		return 0, false
	}

	return month, true
}

// monthsParam lê uma lista de meses separados por vírgula; vazio retorna nil
func monthsParam(w http.ResponseWriter, r *http.Request, name string) ([]domain.Month, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	months := make([]domain.Month, 0, len(parts))
	for _, part := range parts {
		month, err := domain.ParseMonth(strings.TrimSpace(part))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidMonth, "Mês inválido em "+name+": "+part, nil)
			return nil, false
		}
		months = append(months, month)
	}

	return months, true
}

// limitParam lê um inteiro não negativo; ausente retorna 0 (sem limite)
func limitParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro "+name+" deve ser um inteiro não negativo", nil)
		return 0, false
	}

	return limit, true
}

// writeAnalysisError registra e converte um erro do motor de análise
func writeAnalysisError(w http.ResponseWriter, logger log.Logger, operation string, err error) {
	apiErr := apiErrors.FromDomain(err)
	if apiErrors.StatusFor(apiErr.Code) >= http.StatusInternalServerError {
		logger.WithError(err).Error(operation + ": erro na análise")
	} else {
		logger.WithError(err).Warn(operation + ": consulta rejeitada")
	}
	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
