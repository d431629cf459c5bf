package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DataSource: DataSource{Kind: "csv", DataDir: "data"},
		Schema:     DefaultSchema(),
		Analysis: Analysis{
			TTMMonths:              12,
			MonthlyPrecedence:      true,
			RiskWindowMonths:       6,
			RiskWeightVolatility:   0.40,
			RiskWeightRevenueTrend: 0.35,
			RiskWeightPresenceGap:  0.25,
			RiskTrendSensitivity:   5,
			MaxConcurrentJobs:      3,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Configuração válida", mutate: func(c *Config) {}},
		{name: "Fonte postgres", mutate: func(c *Config) { c.DataSource.Kind = "postgres" }},
		{name: "Fonte desconhecida", mutate: func(c *Config) { c.DataSource.Kind = "parquet" }, wantErr: true},
		{name: "Janela TTM zerada", mutate: func(c *Config) { c.Analysis.TTMMonths = 0 }, wantErr: true},
		{name: "Janela de risco negativa", mutate: func(c *Config) { c.Analysis.RiskWindowMonths = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_ConcorrenciaMinima(t *testing.T) {
	cfg := validConfig()
	cfg.Analysis.MaxConcurrentJobs = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Analysis.MaxConcurrentJobs)
}

func TestAnalysisOptions(t *testing.T) {
	cfg := validConfig()

	opts := cfg.Analysis.RiskOptions()
	assert.Equal(t, 6, opts.Window)
	assert.Equal(t, 0.40, opts.Volatility)
	assert.Equal(t, 0.35, opts.RevenueTrend)
	assert.Equal(t, 0.25, opts.PresenceGap)
	assert.Equal(t, 5.0, opts.TrendSensitivity)

	assert.True(t, cfg.Analysis.TimelineOptions().MonthlyPrecedence)
}

func TestNeedsDatabase(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   bool
	}{
		{name: "CSV sem registro de execuções", mutate: func(c *Config) {}, want: false},
		{name: "Fonte postgres", mutate: func(c *Config) { c.DataSource.Kind = "postgres" }, want: true},
		{name: "CSV com registro de execuções", mutate: func(c *Config) { c.BatchAnalysis.RecordRuns = true }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Equal(t, tt.want, cfg.NeedsDatabase())
		})
	}
}
