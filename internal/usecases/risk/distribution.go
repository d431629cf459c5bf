package risk

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// scoreScale guarda duas casas decimais do score no histograma
const scoreScale = 100

// Distribution resume os scores com percentis calculados por histograma HDR.
// Mínimo, máximo e média são exatos; percentis têm a precisão de 3 dígitos significativos.
func Distribution(scores []domain.RiskScore) domain.RiskDistribution {
	if len(scores) == 0 {
		return domain.RiskDistribution{}
	}

	histogram := hdrhistogram.New(1, int64(domain.RiskScoreMax*scoreScale), 3)

	result := domain.RiskDistribution{
		Count: len(scores),
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
	}
	sum := 0.0
	for _, score := range scores {
		value := clamp(score.Score, domain.RiskScoreMin, domain.RiskScoreMax)
		if err := recordScore(histogram, value); err != nil {
			// fica fora dos percentis, mas entra em mínimo, máximo e média
			logrus.WithError(err).WithField("subject", score.Subject).Warn("Score não registrado no histograma")
		}

		sum += value
		result.Min = math.Min(result.Min, value)
		result.Max = math.Max(result.Max, value)
	}

	result.Mean = sum / float64(len(scores))
	result.P50 = quantile(histogram, 50)
	result.P90 = quantile(histogram, 90)
	result.P99 = quantile(histogram, 99)

	return result
}

// recordScore registra o score com duas casas decimais
func recordScore(histogram *hdrhistogram.Histogram, score float64) error {
	value := int64(math.Round(score * scoreScale))
	if err := histogram.RecordValue(value); err != nil {
		return errors.Wrapf(err, "score %.2f fora da faixa do histograma", score)
	}
	return nil
}

func quantile(histogram *hdrhistogram.Histogram, q float64) float64 {
	value := float64(histogram.ValueAtQuantile(q)) / scoreScale
	return clamp(value, domain.RiskScoreMin, domain.RiskScoreMax)
}
