package domain

// JourneyStep é um mês da jornada de uma entidade
type JourneyStep struct {
	Month        Month                     `json:"month"`
	Segment      string                    `json:"segment"`
	Assigned     bool                      `json:"assigned"`
	Products     map[string]ProductMetrics `json:"products,omitempty"`
	TotalRevenue float64                   `json:"total_revenue"`
}
