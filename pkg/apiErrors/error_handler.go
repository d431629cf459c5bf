package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de rota
	ErrRouteNotFound    = "REQ_001" // Rota inexistente
	ErrMethodNotAllowed = "REQ_002" // Método não suportado pela rota

	// Erros de análise (3000-3999)
	ErrInvalidEntityID     = domain.CodeInvalidEntityID     // Identificador de entidade inválido
	ErrDuplicateMonth      = domain.CodeDuplicateMonth      // Atribuições conflitantes no mesmo mês
	ErrInsufficientHistory = domain.CodeInsufficientHistory // Histórico insuficiente para a janela
	ErrEntityNotFound      = domain.CodeEntityNotFound      // Entidade não encontrada
	ErrInvalidMonth        = domain.CodeInvalidMonth        // Mês inválido
	ErrUnknownMonth        = domain.CodeUnknownMonth        // Mês fora do dataset
	ErrDatasetNotLoaded    = domain.CodeDatasetNotLoaded    // Dataset ainda não carregado
	ErrUnknownProduct      = domain.CodeUnknownProduct      // Produto fora do dataset
	ErrInvalidMetric       = domain.CodeInvalidMetric       // Métrica desconhecida

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInvalidEntityID:       http.StatusBadRequest,
	ErrDuplicateMonth:        http.StatusConflict,
	ErrInsufficientHistory:   http.StatusUnprocessableEntity,
	ErrEntityNotFound:        http.StatusNotFound,
	ErrInvalidMonth:          http.StatusBadRequest,
	ErrUnknownMonth:          http.StatusNotFound,
	ErrDatasetNotLoaded:      http.StatusServiceUnavailable,
	ErrUnknownProduct:        http.StatusNotFound,
	ErrInvalidMetric:         http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}

// conflictDetails expõe o contexto do erro de análise para o cliente
type conflictDetails struct {
	EntityID string   `json:"entity_id,omitempty"`
	Month    string   `json:"month,omitempty"`
	Conflict []string `json:"conflict,omitempty"`
}

// FromDomain converte erros do motor de análise; erros desconhecidos viram SRV_001
func FromDomain(err error) APIError {
	code := domain.ErrorCode(err)
	if code == "" {
		apiErr := FromError(err, ErrInternalServer)
		if err != nil {
			apiErr.Message = "Erro interno do servidor"
		}
		return apiErr
	}

	apiErr := FromError(err, code)

	var analysisErr *domain.AnalysisError
	if errors.As(err, &analysisErr) {
		details := conflictDetails{
			EntityID: analysisErr.EntityID,
			Conflict: analysisErr.Conflict,
		}
		if analysisErr.Month != 0 {
			details.Month = analysisErr.Month.String()
		}
		if details.EntityID != "" || details.Month != "" || len(details.Conflict) > 0 {
			apiErr.Details = details
		}
	}

	return apiErr
}

// WriteDomainError escreve na resposta o erro convertido por FromDomain
func WriteDomainError(w http.ResponseWriter, err error) {
	apiErr := FromDomain(err)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
