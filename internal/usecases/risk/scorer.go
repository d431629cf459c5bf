package risk

import (
	"errors"
	"sort"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// Scorer calcula scores sobre um conjunto imutável de históricos e receitas
type Scorer struct {
	timelines domain.TimelineMap
	history   RevenueHistory
	opts      Options
}

func NewScorer(timelines domain.TimelineMap, history RevenueHistory, opts Options) *Scorer {
	return &Scorer{
		timelines: timelines,
		history:   history,
		opts:      opts.withDefaults(),
	}
}

// Options retorna os parâmetros efetivos do scorer
func (s *Scorer) Options() Options {
	return s.opts
}

// ScoreEntity calcula o score da entidade; entidades sem histórico retornam ErrEntityNotFound
func (s *Scorer) ScoreEntity(entity domain.Entity, asOf domain.Month) (domain.RiskScore, error) {
	timeline, ok := s.timelines[entity]
	if !ok {
		return domain.RiskScore{}, domain.NewAnalysisError(domain.ErrEntityNotFound, string(entity), asOf, "entidade sem histórico de segmentação")
	}
	return ScoreEntity(entity, timeline, s.history, asOf, s.opts)
}

// ScoreSegment agrega os scores das entidades do segmento em asOf pela média simples
// (peso igual por entidade). Membros sem histórico suficiente são ignorados e contados
// em Skipped; se nenhum membro puder ser avaliado retorna ErrInsufficientHistory.
func (s *Scorer) ScoreSegment(segment string, asOf domain.Month) (domain.RiskScore, error) {
	if !asOf.Valid() {
		return domain.RiskScore{}, domain.NewAnalysisError(domain.ErrInvalidMonth, "", asOf, "mês de referência do risco")
	}

	var (
		scored  []domain.RiskScore
		skipped int
	)
	for _, entity := range s.timelines.Entities() {
		current, ok := s.timelines[entity].At(asOf)
		if !ok || current != segment {
			continue
		}

		score, err := ScoreEntity(entity, s.timelines[entity], s.history, asOf, s.opts)
		if errors.Is(err, domain.ErrInsufficientHistory) {
			skipped++
			continue
		}
		if err != nil {
			return domain.RiskScore{}, err
		}
		scored = append(scored, score)
	}

	if len(scored) == 0 {
		return domain.RiskScore{}, domain.NewAnalysisError(domain.ErrInsufficientHistory, "", asOf,
			"segmento "+segment+" sem membros com histórico suficiente")
	}

	return aggregate(segment, asOf, s.opts, scored, skipped), nil
}

func aggregate(segment string, asOf domain.Month, opts Options, scored []domain.RiskScore, skipped int) domain.RiskScore {
	n := float64(len(scored))
	result := domain.RiskScore{
		Subject: segment,
		Kind:    domain.RiskKindSegment,
		AsOf:    asOf,
		Window:  opts.Window,
		Members: len(scored),
		Skipped: skipped,
	}

	for _, score := range scored {
		result.Score += score.Score / n
		result.Signals.Volatility += score.Signals.Volatility / n
		result.Signals.RevenueTrend += score.Signals.RevenueTrend / n
		result.Signals.PresenceGap += score.Signals.PresenceGap / n
		result.Contributions.Volatility += score.Contributions.Volatility / n
		result.Contributions.RevenueTrend += score.Contributions.RevenueTrend / n
		result.Contributions.PresenceGap += score.Contributions.PresenceGap / n
	}
	result.Score = clamp(result.Score, domain.RiskScoreMin, domain.RiskScoreMax)
	result.Level = domain.LevelFor(result.Score)

	return result
}

// ScoreAll avalia todas as entidades atribuídas em asOf, ordenadas do maior para o menor
// score. Entidades com histórico insuficiente são retornadas separadamente.
func (s *Scorer) ScoreAll(asOf domain.Month) ([]domain.RiskScore, []domain.Entity, error) {
	if !asOf.Valid() {
		return nil, nil, domain.NewAnalysisError(domain.ErrInvalidMonth, "", asOf, "mês de referência do risco")
	}

	scores := make([]domain.RiskScore, 0)
	var skipped []domain.Entity
	for _, entity := range s.timelines.Entities() {
		if _, ok := s.timelines[entity].At(asOf); !ok {
			continue
		}

		score, err := ScoreEntity(entity, s.timelines[entity], s.history, asOf, s.opts)
		if errors.Is(err, domain.ErrInsufficientHistory) {
			skipped = append(skipped, entity)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		scores = append(scores, score)
	}

	sortScores(scores)
	return scores, skipped, nil
}

// ScoreAllSegments avalia todos os segmentos presentes em asOf; segmentos sem membros
// avaliáveis ficam de fora
func (s *Scorer) ScoreAllSegments(asOf domain.Month) ([]domain.RiskScore, error) {
	if !asOf.Valid() {
		return nil, domain.NewAnalysisError(domain.ErrInvalidMonth, "", asOf, "mês de referência do risco")
	}

	scored := make(map[string][]domain.RiskScore)
	skipped := make(map[string]int)
	for _, entity := range s.timelines.Entities() {
		segment, ok := s.timelines[entity].At(asOf)
		if !ok {
			continue
		}

		score, err := ScoreEntity(entity, s.timelines[entity], s.history, asOf, s.opts)
		if errors.Is(err, domain.ErrInsufficientHistory) {
			skipped[segment]++
			continue
		}
		if err != nil {
			return nil, err
		}
		scored[segment] = append(scored[segment], score)
	}

	segments := make([]string, 0, len(scored))
	for segment := range scored {
		segments = append(segments, segment)
	}
	sort.Strings(segments)

	result := make([]domain.RiskScore, 0, len(segments))
	for _, segment := range segments {
		result = append(result, aggregate(segment, asOf, s.opts, scored[segment], skipped[segment]))
	}

	sortScores(result)
	return result, nil
}
