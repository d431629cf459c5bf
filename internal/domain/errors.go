package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros do motor de análise
var (
	// Erros de identidade e calendário
	ErrInvalidEntityID = errors.New("invalid entity id")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrUnknownMonth    = errors.New("month not present in dataset")
	ErrUnknownProduct  = errors.New("product not present in dataset")
	ErrInvalidMetric   = errors.New("invalid metric")

	// Erros de consistência dos dados de entrada
	ErrDuplicateMonth = errors.New("conflicting segment assignments for the same entity and month")

	// Erros de consulta
	ErrInsufficientHistory = errors.New("insufficient history for the requested window")
	ErrEntityNotFound      = errors.New("entity not found")
	ErrDatasetNotLoaded    = errors.New("dataset not loaded")
)

// Códigos expostos para a camada de apresentação
const (
	CodeInvalidEntityID     = "ANL_001"
	CodeDuplicateMonth      = "ANL_002"
	CodeInsufficientHistory = "ANL_003"
	CodeEntityNotFound      = "ANL_004"
	CodeInvalidMonth        = "ANL_005"
	CodeUnknownMonth        = "ANL_006"
	CodeDatasetNotLoaded    = "ANL_007"
	CodeUnknownProduct      = "ANL_008"
	CodeInvalidMetric       = "ANL_009"
)

var codesByError = map[error]string{
	ErrInvalidEntityID:     CodeInvalidEntityID,
	ErrDuplicateMonth:      CodeDuplicateMonth,
	ErrInsufficientHistory: CodeInsufficientHistory,
	ErrEntityNotFound:      CodeEntityNotFound,
	ErrInvalidMonth:        CodeInvalidMonth,
	ErrUnknownMonth:        CodeUnknownMonth,
	ErrDatasetNotLoaded:    CodeDatasetNotLoaded,
	ErrUnknownProduct:      CodeUnknownProduct,
	ErrInvalidMetric:       CodeInvalidMetric,
}

// AnalysisError é um erro com o contexto necessário para a camada de apresentação
type AnalysisError struct {
	Err      error    // Erro base
	Code     string   // Código de erro para API
	EntityID string   // Entidade envolvida (quando aplicável)
	Month    Month    // Mês envolvido (quando aplicável)
	Conflict []string // Valores conflitantes (ex: segmentos divergentes)
	Details  string   // Detalhes adicionais
}

// Error implementa a interface error
func (e *AnalysisError) Error() string {
	parts := []string{e.Err.Error()}
	if e.EntityID != "" {
		parts = append(parts, fmt.Sprintf("entity=%s", e.EntityID))
	}
	if e.Month != 0 {
		parts = append(parts, fmt.Sprintf("month=%s", e.Month))
	}
	if len(e.Conflict) > 0 {
		parts = append(parts, fmt.Sprintf("conflict=[%s]", strings.Join(e.Conflict, ", ")))
	}
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	return strings.Join(parts, ": ")
}

// Unwrap retorna o erro subjacente
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError cria um novo AnalysisError preenchendo o código a partir do erro base
func NewAnalysisError(err error, entityID string, month Month, details string) *AnalysisError {
	return &AnalysisError{
		Err:      err,
		Code:     codesByError[err],
		EntityID: entityID,
		Month:    month,
		Details:  details,
	}
}

// NewConflictError cria um erro de meses duplicados com os valores conflitantes
func NewConflictError(entityID string, month Month, conflict []string, details string) *AnalysisError {
	e := NewAnalysisError(ErrDuplicateMonth, entityID, month, details)
	e.Conflict = conflict
	return e
}

// ErrorCode retorna o código associado a um erro do motor, ou vazio se não for um erro conhecido
func ErrorCode(err error) string {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) && analysisErr.Code != "" {
		return analysisErr.Code
	}
	for base, code := range codesByError {
		if errors.Is(err, base) {
			return code
		}
	}
	return ""
}
