package domain

import "time"

// SourceData são as tabelas de entrada já tipadas, entregues pelo carregador
type SourceData struct {
	Base    []SegmentRow
	Monthly []SegmentSnapshot
	Revenue []RevenueRow
}

// DatasetInfo resume o dataset carregado em memória
type DatasetInfo struct {
	LoadedAt      time.Time `json:"loaded_at"`
	Source        string    `json:"source"`
	Entities      int       `json:"entities"`
	Months        []Month   `json:"months"`
	BaseMonth     Month     `json:"base_month"`
	Products      []string  `json:"products"`
	RevenueRows   int       `json:"revenue_rows"`
	MonthlyFiles  int       `json:"monthly_files"`
	SegmentsCount int       `json:"segments_count"`
}

// PeriodComparison reúne as análises de movimento entre dois meses
type PeriodComparison struct {
	From           Month             `json:"from"`
	To             Month             `json:"to"`
	Transitions    *TransitionMatrix `json:"transitions"`
	Migrations     []Migration       `json:"migrations"`
	Summary        []SummaryRow      `json:"summary"`
	RevenueSummary []SummaryRow      `json:"revenue_summary"`
}

type AnalysisRunStatus string

const (
	AnalysisRunRunning AnalysisRunStatus = "running"
	AnalysisRunSuccess AnalysisRunStatus = "success"
	AnalysisRunError   AnalysisRunStatus = "error"
)

// AnalysisRun registra uma execução da análise em lote
type AnalysisRun struct {
	ID          string            `json:"id"`
	BaseMonth   Month             `json:"base_month"`
	Months      []Month           `json:"months"`
	Status      AnalysisRunStatus `json:"status"`
	ReportPath  string            `json:"report_path,omitempty"`
	Error       string            `json:"error,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}
