package domain

// RiskKind indica se o score é de uma entidade ou de um segmento
type RiskKind string

const (
	RiskKindEntity  RiskKind = "entity"
	RiskKindSegment RiskKind = "segment"
)

// RiskLevel é a faixa do score de risco
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "High"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelLow    RiskLevel = "Low"
)

// Limites do score de risco
const (
	RiskScoreMin = 0.0
	RiskScoreMax = 100.0
)

// RiskSignals são os sinais normalizados que compõem o score
type RiskSignals struct {
	Volatility   float64 `json:"volatility"`    // [0,1]
	RevenueTrend float64 `json:"revenue_trend"` // [-1,1], positivo = queda de receita
	PresenceGap  float64 `json:"presence_gap"`  // [0,1]
}

// RiskScore é um valor derivado, recalculado a cada mês de referência
type RiskScore struct {
	Subject       string      `json:"subject"`
	Kind          RiskKind    `json:"kind"`
	AsOf          Month       `json:"as_of"`
	Window        int         `json:"window"`
	Score         float64     `json:"score"`
	Level         RiskLevel   `json:"level"`
	Signals       RiskSignals `json:"signals"`
	Contributions RiskSignals `json:"contributions"`
	Members       int         `json:"members,omitempty"`
	Skipped       int         `json:"skipped,omitempty"`
}

// LevelFor classifica um score em faixas de risco
func LevelFor(score float64) RiskLevel {
	switch {
	case score >= 60:
		return RiskLevelHigh
	case score >= 30:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// RiskDistribution resume a distribuição de scores
type RiskDistribution struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P90   float64 `json:"p90"`
	P99   float64 `json:"p99"`
}
