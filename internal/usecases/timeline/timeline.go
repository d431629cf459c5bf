// Package timeline monta o histórico de segmentos por entidade a partir do snapshot base
// e dos snapshots mensais
package timeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// Normalizer converte identificadores brutos em entidades canônicas
type Normalizer interface {
	Normalize(raw string) (domain.Entity, error)
}

// Options define a regra de precedência entre o snapshot base e os mensais
type Options struct {
	// MonthlyPrecedence indica que um snapshot mensal corrige o base no mesmo mês.
	// Quando falso, o base prevalece e a linha mensal é descartada.
	MonthlyPrecedence bool
}

// DefaultOptions retorna a regra padrão: o arquivo mensal corrige o base
func DefaultOptions() Options {
	return Options{MonthlyPrecedence: true}
}

type key struct {
	entity domain.Entity
	month  domain.Month
}

type claim struct {
	segment string
	source  string
}

const baseSource = "base"

// Build combina o snapshot base com zero ou mais snapshots mensais.
// Conflitos entre snapshots mensais (ou dentro de um mesmo snapshot) são reportados
// como ErrDuplicateMonth; conflitos entre base e mensal seguem Options.
func Build(normalizer Normalizer, base []domain.SegmentRow, monthly []domain.SegmentSnapshot, opts Options) (domain.TimelineMap, error) {
	baseClaims, err := collect(normalizer, []domain.SegmentSnapshot{{Source: baseSource, Rows: base}})
	if err != nil {
		return nil, err
	}

	monthlyClaims, err := collect(normalizer, monthly)
	if err != nil {
		return nil, err
	}

	merged := make(map[key]string, len(baseClaims)+len(monthlyClaims))
	for k, c := range baseClaims {
		merged[k] = c.segment
	}

	for k, c := range monthlyClaims {
		if _, inBase := baseClaims[k]; inBase && !opts.MonthlyPrecedence {
			continue
		}
		merged[k] = c.segment
	}

	timelines := make(domain.TimelineMap)
	for k, segment := range merged {
		timelines[k.entity] = append(timelines[k.entity], domain.SegmentAssignment{
			Entity:  k.entity,
			Month:   k.month,
			Segment: segment,
		})
	}

	for entity, tl := range timelines {
		sort.Slice(tl, func(i, j int) bool { return tl[i].Month < tl[j].Month })
		timelines[entity] = tl
	}

	return timelines, nil
}

// collect normaliza as linhas e detecta atribuições divergentes para a mesma entidade e mês
func collect(normalizer Normalizer, snapshots []domain.SegmentSnapshot) (map[key]claim, error) {
	claims := make(map[key]claim)

	for _, snapshot := range snapshots {
		for _, row := range snapshot.Rows {
			entity, err := normalizer.Normalize(row.EntityID)
			if err != nil {
				return nil, err
			}

			if !row.Month.Valid() {
				return nil, domain.NewAnalysisError(domain.ErrInvalidMonth, string(entity), row.Month,
					fmt.Sprintf("origem %s", snapshot.Source))
			}

			// Segmento em branco significa entidade não acompanhada no mês
			segment := strings.TrimSpace(row.Segment)
			if segment == "" {
				continue
			}

			k := key{entity: entity, month: row.Month}
			existing, found := claims[k]
			if !found {
				claims[k] = claim{segment: segment, source: snapshot.Source}
				continue
			}

			if existing.segment != segment {
				return nil, domain.NewConflictError(string(entity), row.Month,
					[]string{
						fmt.Sprintf("%s (%s)", existing.segment, existing.source),
						fmt.Sprintf("%s (%s)", segment, snapshot.Source),
					},
					"atribuições divergentes para o mesmo mês",
				)
			}
		}
	}

	return claims, nil
}
