package risk

import (
	"math"
	"testing"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

const asOf domain.Month = 202406

type historyStub map[domain.Entity]map[domain.Month]float64

func (h historyStub) Total(entity domain.Entity, month domain.Month) float64 {
	return h[entity][month]
}

// timeline atribui os segmentos informados a partir de 202401; "" deixa o mês sem atribuição
func timeline(entity domain.Entity, segments ...string) domain.Timeline {
	tl := domain.Timeline{}
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		tl = append(tl, domain.SegmentAssignment{Entity: entity, Month: domain.Month(202401).AddMonths(i), Segment: segment})
	}
	return tl
}

func revenue(values ...float64) map[domain.Month]float64 {
	byMonth := make(map[domain.Month]float64)
	for i, v := range values {
		byMonth[domain.Month(202401).AddMonths(i)] = v
	}
	return byMonth
}

func TestScoreEntity(t *testing.T) {
	tests := []struct {
		name      string
		timeline  domain.Timeline
		history   historyStub
		wantScore float64
		wantLevel domain.RiskLevel
		want      domain.RiskSignals
	}{
		{
			name:      "Entidade estável",
			timeline:  timeline("E1", "SEG01", "SEG01", "SEG01", "SEG01", "SEG01", "SEG01"),
			history:   historyStub{"E1": revenue(100, 100, 100, 100, 100, 100)},
			wantScore: 100 * 0.40 / 6,
			wantLevel: domain.RiskLevelLow,
			want:      domain.RiskSignals{Volatility: 1.0 / 6},
		},
		{
			name:      "Receita em queda",
			timeline:  timeline("E1", "SEG01", "SEG01", "SEG01", "SEG01", "SEG01", "SEG01"),
			history:   historyStub{"E1": revenue(600, 500, 400, 300, 200, 100)},
			wantScore: 100 * (0.40/6 + 0.35),
			wantLevel: domain.RiskLevelMedium,
			want:      domain.RiskSignals{Volatility: 1.0 / 6, RevenueTrend: 1},
		},
		{
			name:      "Receita em alta limita em zero",
			timeline:  timeline("E1", "SEG01", "SEG01", "SEG01", "SEG01", "SEG01", "SEG01"),
			history:   historyStub{"E1": revenue(100, 200, 300, 400, 500, 600)},
			wantScore: 0,
			wantLevel: domain.RiskLevelLow,
			want:      domain.RiskSignals{Volatility: 1.0 / 6, RevenueTrend: -1},
		},
		{
			name:      "Volátil com ausências",
			timeline:  timeline("E1", "SEG01", "SEG02", "", "SEG03", "", "SEG04"),
			history:   historyStub{},
			wantScore: 100 * (0.40*4/6 + 0.25*2/6),
			wantLevel: domain.RiskLevelMedium,
			want:      domain.RiskSignals{Volatility: 4.0 / 6, PresenceGap: 2.0 / 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := ScoreEntity("E1", tt.timeline, tt.history, asOf, DefaultOptions())
			require.NoError(t, err)

			assert.InDelta(t, tt.wantScore, score.Score, 1e-9)
			assert.Equal(t, tt.wantLevel, score.Level)
			assert.InDelta(t, tt.want.Volatility, score.Signals.Volatility, 1e-9)
			assert.InDelta(t, tt.want.RevenueTrend, score.Signals.RevenueTrend, 1e-9)
			assert.InDelta(t, tt.want.PresenceGap, score.Signals.PresenceGap, 1e-9)
			assert.Equal(t, domain.RiskKindEntity, score.Kind)
			assert.Equal(t, 6, score.Window)
		})
	}
}

func TestScoreEntity_HistoricoInsuficiente(t *testing.T) {
	tests := []struct {
		name     string
		timeline domain.Timeline
	}{
		{name: "Histórico menor que a janela", timeline: timeline("E1", "", "", "", "SEG01", "SEG01", "SEG01")},
		{name: "Histórico vazio", timeline: domain.Timeline{}},
		{name: "Histórico posterior ao mês de referência", timeline: domain.Timeline{{Entity: "E1", Month: 202501, Segment: "SEG01"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScoreEntity("E1", tt.timeline, nil, asOf, DefaultOptions())
			require.ErrorIs(t, err, domain.ErrInsufficientHistory)

			var analysisErr *domain.AnalysisError
			require.ErrorAs(t, err, &analysisErr)
			assert.Equal(t, "E1", analysisErr.EntityID)
			assert.Equal(t, asOf, analysisErr.Month)
		})
	}
}

func TestScoreEntity_LimitesComEntradasExtremas(t *testing.T) {
	full := timeline("E1", "A", "B", "", "C", "", "D")
	tests := []struct {
		name    string
		history historyStub
		opts    Options
	}{
		{name: "Receita NaN", history: historyStub{"E1": revenue(math.NaN(), math.NaN(), 1, math.NaN(), 2, 3)}, opts: DefaultOptions()},
		{name: "Receita infinita", history: historyStub{"E1": revenue(math.Inf(1), 0, 0, 0, 0, math.Inf(-1))}, opts: DefaultOptions()},
		{name: "Receita negativa", history: historyStub{"E1": revenue(-1e12, 5, -3, 1e12, -7, 0)}, opts: DefaultOptions()},
		{name: "Pesos enormes", history: historyStub{"E1": revenue(9, 8, 7, 6, 5, 1)}, opts: Options{Window: 6, Weights: Weights{1e9, 1e9, 1e9}, TrendSensitivity: 1e9}},
		{name: "Pesos negativos", history: historyStub{"E1": revenue(1, 2, 3, 4, 5, 6)}, opts: Options{Window: 6, Weights: Weights{-5, 1, 1}}},
		{name: "Sensibilidade NaN", history: historyStub{"E1": revenue(1, 2, 3, 4, 5, 6)}, opts: Options{Window: 6, Weights: Weights{1, 1, 1}, TrendSensitivity: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := ScoreEntity("E1", full, tt.history, asOf, tt.opts)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, score.Score, domain.RiskScoreMin)
			assert.LessOrEqual(t, score.Score, domain.RiskScoreMax)
			assert.False(t, math.IsNaN(score.Score))
			assert.GreaterOrEqual(t, score.Signals.RevenueTrend, -1.0)
			assert.LessOrEqual(t, score.Signals.RevenueTrend, 1.0)
		})
	}
}

func scorerFixture() *Scorer {
	timelines := domain.TimelineMap{
		"E1": timeline("E1", "SEG01", "SEG01", "SEG01", "SEG01", "SEG01", "SEG01"),
		"E2": timeline("E2", "SEG02", "SEG01", "", "SEG02", "SEG01", "SEG01"),
		"E3": timeline("E3", "SEG03", "SEG03", "SEG02", "SEG02", "SEG02", "SEG02"),
		"E4": timeline("E4", "", "", "", "", "SEG01", "SEG01"),
	}
	history := historyStub{
		"E1": revenue(100, 100, 100, 100, 100, 100),
		"E2": revenue(600, 500, 400, 300, 200, 100),
		"E3": revenue(10, 10, 10, 10, 10, 10),
	}
	return NewScorer(timelines, history, DefaultOptions())
}

func TestScorer_ScoreSegmentConsistente(t *testing.T) {
	scorer := scorerFixture()

	e1, err := scorer.ScoreEntity("E1", asOf)
	require.NoError(t, err)
	e2, err := scorer.ScoreEntity("E2", asOf)
	require.NoError(t, err)

	segment, err := scorer.ScoreSegment("SEG01", asOf)
	require.NoError(t, err)

	assert.InDelta(t, (e1.Score+e2.Score)/2, segment.Score, 1e-9)
	assert.Equal(t, domain.RiskKindSegment, segment.Kind)
	assert.Equal(t, 2, segment.Members)
	// E4 não tem seis meses de histórico
	assert.Equal(t, 1, segment.Skipped)
	assert.Equal(t, domain.LevelFor(segment.Score), segment.Level)
}

func TestScorer_ScoreSegmentSemMembros(t *testing.T) {
	_, err := scorerFixture().ScoreSegment("SEG09", asOf)
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
}

func TestScorer_ScoreEntityDesconhecida(t *testing.T) {
	_, err := scorerFixture().ScoreEntity("E9", asOf)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestScorer_ScoreAll(t *testing.T) {
	scorer := scorerFixture()

	scores, skipped, err := scorer.ScoreAll(asOf)
	require.NoError(t, err)

	assert.Equal(t, []domain.Entity{"E4"}, skipped)
	require.Len(t, scores, 3)
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Score, scores[i].Score)
	}
	assert.Equal(t, "E2", scores[0].Subject)

	again, _, err := scorer.ScoreAll(asOf)
	require.NoError(t, err)
	assert.Equal(t, scores, again)
}

func TestScorer_ScoreAllSegments(t *testing.T) {
	scorer := scorerFixture()

	segments, err := scorer.ScoreAllSegments(asOf)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	for _, segment := range segments {
		single, err := scorer.ScoreSegment(segment.Subject, asOf)
		require.NoError(t, err)
		assert.InDelta(t, single.Score, segment.Score, 1e-9)
		assert.Equal(t, single.Members, segment.Members)
		assert.Equal(t, single.Skipped, segment.Skipped)
	}
}

func TestDistribution(t *testing.T) {
	scores := make([]domain.RiskScore, 0, 100)
	for i := 1; i <= 100; i++ {
		scores = append(scores, domain.RiskScore{Score: float64(i)})
	}

	dist := Distribution(scores)

	assert.Equal(t, 100, dist.Count)
	assert.Equal(t, 1.0, dist.Min)
	assert.Equal(t, 100.0, dist.Max)
	assert.InDelta(t, 50.5, dist.Mean, 1e-9)
	assert.InDelta(t, 50.0, dist.P50, 0.1)
	assert.InDelta(t, 90.0, dist.P90, 0.1)
	assert.InDelta(t, 99.0, dist.P99, 0.1)
}

func TestRecordScore(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		wantErr bool
	}{
		{name: "dentro da faixa", score: 0.5},
		{name: "zero", score: 0},
		{name: "acima da faixa", score: 50, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			histogram := hdrhistogram.New(1, 100, 3)

			err := recordScore(histogram, tt.score)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, int64(0), histogram.TotalCount())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, int64(1), histogram.TotalCount())
		})
	}
}

func TestDistribution_ScoreNaNContaComoMinimo(t *testing.T) {
	dist := Distribution([]domain.RiskScore{{Score: math.NaN()}, {Score: 40}})

	assert.Equal(t, 2, dist.Count)
	assert.Equal(t, 0.0, dist.Min)
	assert.Equal(t, 40.0, dist.Max)
	assert.Equal(t, 20.0, dist.Mean)
	assert.InDelta(t, 40.0, dist.P99, 0.1)
}

func TestDistribution_Vazia(t *testing.T) {
	assert.Equal(t, domain.RiskDistribution{}, Distribution(nil))
}
