package domain

// Entity é o identificador canônico de um cliente/conta após normalização
type Entity string

func (e Entity) String() string {
	return string(e)
}

// Segmentos especiais usados nos relatórios
const (
	SegmentUnassigned = "UNASSIGNED" // Receita de entidades sem segmento no mês
	SegmentNew        = "NEW"        // Origem de entidades que entraram no sistema
	SegmentLost       = "LOST"       // Destino de entidades que saíram do sistema
	SegmentTotal      = "TOTAL"
)

// SegmentRank extrai o número final de um código de segmento (SEG01 -> 1).
// Segmentos com número menor são considerados superiores.
func SegmentRank(code string) (int, bool) {
	end := len(code)
	start := end
	for start > 0 && code[start-1] >= '0' && code[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}

	rank := 0
	for _, c := range code[start:end] {
		rank = rank*10 + int(c-'0')
	}
	return rank, true
}

// CompareSegments retorna a direção do movimento de from para to
func CompareSegments(from, to string) Direction {
	fromRank, okFrom := SegmentRank(from)
	toRank, okTo := SegmentRank(to)
	if !okFrom || !okTo || fromRank == toRank {
		return DirectionLateral
	}
	if toRank < fromRank {
		return DirectionUp
	}
	return DirectionDown
}
