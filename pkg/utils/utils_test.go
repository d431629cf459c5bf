package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "zero", in: 0, want: 0},
		{name: "arredonda para cima", in: 33.336, want: 33.34},
		{name: "arredonda para baixo", in: 66.664, want: 66.66},
		{name: "negativo", in: -12.346, want: -12.35},
		{name: "meio centavo exato", in: 1.005, want: 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundWithTwoDecimalPlace(tt.in), 1e-9)
		})
	}
}

func TestPrettyJson(t *testing.T) {
	assert.Equal(t, "{\n\t\"a\": 1\n}", PrettyJson(map[string]int{"a": 1}))
	assert.Equal(t, "{\n\t\"b\": true\n}", PrettyJson([]byte(`{"b":true}`)))
	assert.Equal(t, "não é json", PrettyJson([]byte("não é json")))
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		part  float64
		total float64
		want  float64
	}{
		{name: "um terço", part: 1, total: 3, want: 33.33},
		{name: "dois terços", part: 2, total: 3, want: 66.67},
		{name: "total", part: 0.3, total: 0.3, want: 100},
		{name: "total zero", part: 10, total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.part, tt.total))
		})
	}
}

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{name: "execução", prefix: RunIDPrefix},
		{name: "token", prefix: TokenIDPrefix},
		{name: "receita", prefix: RevenueIDPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.prefix)
			assert.NoError(t, err)
			assert.Len(t, id, len(tt.prefix)+1+idSize)
			assert.True(t, strings.HasPrefix(id, tt.prefix+"_"))
			assert.LessOrEqual(t, len(id), 21)
		})
	}
}
