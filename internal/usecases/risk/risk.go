// Package risk calcula scores de risco de churn para entidades e segmentos a partir de
// volatilidade de segmento, tendência de receita e ausência de atribuição
package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// RevenueHistory fornece a receita total de uma entidade em um mês
type RevenueHistory interface {
	Total(entity domain.Entity, month domain.Month) float64
}

// ScoreEntity calcula o score de uma entidade na janela que termina em asOf.
// Retorna ErrInsufficientHistory quando o histórico é menor que a janela.
func ScoreEntity(entity domain.Entity, timeline domain.Timeline, history RevenueHistory, asOf domain.Month, opts Options) (domain.RiskScore, error) {
	opts = opts.withDefaults()

	if !asOf.Valid() {
		return domain.RiskScore{}, domain.NewAnalysisError(domain.ErrInvalidMonth, string(entity), asOf, "mês de referência do risco")
	}

	first, ok := timeline.First()
	if !ok || first.Month.MonthsUntil(asOf) < opts.Window {
		available := 0
		if ok {
			available = first.Month.MonthsUntil(asOf)
		}
		return domain.RiskScore{}, domain.NewAnalysisError(domain.ErrInsufficientHistory, string(entity), asOf,
			fmt.Sprintf("histórico de %d meses para janela de %d", available, opts.Window))
	}

	window := asOf.Trailing(opts.Window)
	signals := domain.RiskSignals{
		Volatility:   volatility(timeline, window),
		RevenueTrend: trend(entity, history, window, opts.TrendSensitivity),
		PresenceGap:  presenceGap(timeline, window),
	}

	return compose(string(entity), domain.RiskKindEntity, asOf, opts, signals), nil
}

func compose(subject string, kind domain.RiskKind, asOf domain.Month, opts Options, signals domain.RiskSignals) domain.RiskScore {
	contributions := domain.RiskSignals{
		Volatility:   opts.Volatility * signals.Volatility * domain.RiskScoreMax,
		RevenueTrend: opts.RevenueTrend * signals.RevenueTrend * domain.RiskScoreMax,
		PresenceGap:  opts.PresenceGap * signals.PresenceGap * domain.RiskScoreMax,
	}

	raw := opts.Volatility*signals.Volatility + opts.RevenueTrend*signals.RevenueTrend + opts.PresenceGap*signals.PresenceGap
	score := domain.RiskScoreMax * clamp(raw, 0, 1)

	return domain.RiskScore{
		Subject:       subject,
		Kind:          kind,
		AsOf:          asOf,
		Window:        opts.Window,
		Score:         score,
		Level:         domain.LevelFor(score),
		Signals:       signals,
		Contributions: contributions,
	}
}

// volatility é a quantidade de segmentos distintos ocupados na janela dividida pelo tamanho da janela
func volatility(timeline domain.Timeline, window []domain.Month) float64 {
	segments := make(map[string]struct{})
	for _, month := range window {
		if segment, ok := timeline.At(month); ok {
			segments[segment] = struct{}{}
		}
	}
	return clamp(float64(len(segments))/float64(len(window)), 0, 1)
}

// presenceGap é a fração de meses da janela sem atribuição de segmento
func presenceGap(timeline domain.Timeline, window []domain.Month) float64 {
	missing := 0
	for _, month := range window {
		if _, ok := timeline.At(month); !ok {
			missing++
		}
	}
	return float64(missing) / float64(len(window))
}

// trend usa a inclinação por mínimos quadrados da receita mensal relativa à média.
// Queda de receita gera valor positivo (penaliza), alta gera negativo.
func trend(entity domain.Entity, history RevenueHistory, window []domain.Month, sensitivity float64) float64 {
	if history == nil || len(window) < 2 {
		return 0
	}

	n := float64(len(window))
	values := make([]float64, len(window))
	sumX, sumY := 0.0, 0.0
	for i, month := range window {
		v := history.Total(entity, month)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		values[i] = v
		sumX += float64(i)
		sumY += v
	}

	mean := sumY / n
	if mean == 0 {
		return 0
	}

	meanX := sumX / n
	num, den := 0.0, 0.0
	for i, v := range values {
		dx := float64(i) - meanX
		num += dx * (v - mean)
		den += dx * dx
	}
	slope := num / den

	return clamp(-slope/math.Abs(mean)*sensitivity, -1, 1)
}

// clamp limita v ao intervalo; NaN vira o limite inferior
func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

func sortScores(scores []domain.RiskScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Subject < scores[j].Subject
	})
}
