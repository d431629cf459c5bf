package domain

// Cohort agrupa entidades com a mesma origem (primeiro segmento, primeiro mês)
type Cohort struct {
	Segment  string   `json:"segment"`
	Origin   Month    `json:"origin"`
	Entities []Entity `json:"entities"`
}

// Size retorna o tamanho da coorte na origem
func (c Cohort) Size() int {
	return len(c.Entities)
}

// RetentionPoint é um ponto da curva de retenção de uma coorte
type RetentionPoint struct {
	Month         Month   `json:"month"`
	RetainedCount int     `json:"retained_count"`
	RetentionRate float64 `json:"retention_rate"`
	Revenue       float64 `json:"revenue"`
}

// CohortBreakdown detalha o destino das entidades de uma coorte em um mês
type CohortBreakdown struct {
	Segment       string  `json:"segment"`
	Origin        Month   `json:"origin"`
	Month         Month   `json:"month"`
	Size          int     `json:"size"`
	Retained      int     `json:"retained"`
	MovedUp       int     `json:"moved_up"`
	MovedDown     int     `json:"moved_down"`
	MovedLateral  int     `json:"moved_lateral"`
	Churned       int     `json:"churned"`
	RetentionRate float64 `json:"retention_rate"`
	ChurnRate     float64 `json:"churn_rate"`
}

// CohortRevenueChange compara a receita da coorte na origem com um mês posterior
type CohortRevenueChange struct {
	Segment          string  `json:"segment"`
	Origin           Month   `json:"origin"`
	Month            Month   `json:"month"`
	Entities         int     `json:"entities"`
	OriginRevenue    float64 `json:"origin_revenue"`
	MonthRevenue     float64 `json:"month_revenue"`
	Change           float64 `json:"change"`
	ChangePercentage float64 `json:"change_percentage"`
	AvgOriginRevenue float64 `json:"avg_origin_revenue"`
	AvgMonthRevenue  float64 `json:"avg_month_revenue"`
}
