package domain

import "sort"

// SegmentRow é uma linha bruta de segmentação, já tipada pela camada de carga
type SegmentRow struct {
	EntityID string `json:"entity_id"`
	Month    Month  `json:"month"`
	Segment  string `json:"segment"`
}

// SegmentSnapshot agrupa as linhas de um arquivo/tabela de segmentação mensal
type SegmentSnapshot struct {
	Source string       `json:"source"` // Nome do arquivo ou tabela de origem
	Rows   []SegmentRow `json:"rows"`
}

// SegmentAssignment é a atribuição de segmento de uma entidade em um mês
type SegmentAssignment struct {
	Entity  Entity `json:"entity"`
	Month   Month  `json:"month"`
	Segment string `json:"segment"`
}

// Timeline é o histórico ordenado por mês, sem meses repetidos, de uma entidade
type Timeline []SegmentAssignment

// At retorna o segmento da entidade no mês informado
func (t Timeline) At(month Month) (string, bool) {
	i := sort.Search(len(t), func(i int) bool { return t[i].Month >= month })
	if i < len(t) && t[i].Month == month {
		return t[i].Segment, true
	}
	return "", false
}

// First retorna a primeira atribuição observada
func (t Timeline) First() (SegmentAssignment, bool) {
	if len(t) == 0 {
		return SegmentAssignment{}, false
	}
	return t[0], true
}

// Months retorna os meses em que a entidade foi observada
func (t Timeline) Months() []Month {
	months := make([]Month, len(t))
	for i, a := range t {
		months[i] = a.Month
	}
	return months
}

// TimelineMap é o histórico de todas as entidades
type TimelineMap map[Entity]Timeline

// Entities retorna as entidades em ordem crescente de identificador
func (tm TimelineMap) Entities() []Entity {
	entities := make([]Entity, 0, len(tm))
	for entity := range tm {
		entities = append(entities, entity)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })
	return entities
}

// Months retorna todos os meses presentes em qualquer histórico, em ordem crescente
func (tm TimelineMap) Months() []Month {
	seen := make(map[Month]struct{})
	for _, timeline := range tm {
		for _, a := range timeline {
			seen[a.Month] = struct{}{}
		}
	}

	months := make([]Month, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}

// SegmentsAt retorna o segmento de cada entidade presente no mês
func (tm TimelineMap) SegmentsAt(month Month) map[Entity]string {
	segments := make(map[Entity]string)
	for entity, timeline := range tm {
		if segment, ok := timeline.At(month); ok {
			segments[entity] = segment
		}
	}
	return segments
}
