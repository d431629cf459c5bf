package risk

// Weights define o peso de cada sinal no score final
type Weights struct {
	Volatility   float64
	RevenueTrend float64
	PresenceGap  float64
}

// Options são os parâmetros ajustáveis do score de risco
type Options struct {
	// Window é a quantidade de meses da janela móvel, terminando no mês de referência
	Window int
	Weights
	// TrendSensitivity multiplica a inclinação relativa da receita antes do clamp em [-1,1]
	TrendSensitivity float64
}

// DefaultOptions retorna janela de 6 meses e pesos 0.40/0.35/0.25
func DefaultOptions() Options {
	return Options{
		Window: 6,
		Weights: Weights{
			Volatility:   0.40,
			RevenueTrend: 0.35,
			PresenceGap:  0.25,
		},
		TrendSensitivity: 5.0,
	}
}

// withDefaults completa valores não informados ou inválidos com os padrões
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.Window <= 0 {
		o.Window = defaults.Window
	}
	if !(o.Volatility >= 0 && o.RevenueTrend >= 0 && o.PresenceGap >= 0) ||
		o.Volatility+o.RevenueTrend+o.PresenceGap == 0 {
		o.Weights = defaults.Weights
	}
	if !(o.TrendSensitivity > 0) {
		o.TrendSensitivity = defaults.TrendSensitivity
	}
	return o
}
