package domain

import "sort"

// MovementStatus classifica a situação de uma entidade entre dois meses
type MovementStatus string

const (
	StatusRetained      MovementStatus = "Retained"
	StatusMovedInternal MovementStatus = "Moved Internal"
	StatusNewSystem     MovementStatus = "New (System)"
	StatusLostSystem    MovementStatus = "Lost (System)"
)

// Direction indica o sentido de uma migração entre segmentos ranqueáveis
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionLateral Direction = "lateral"
)

// TransitionMatrix conta entidades por (segmento de origem, segmento de destino)
// para um par fixo de meses. Cells contém apenas entidades presentes nos dois meses;
// Lost e New trazem as entidades presentes em apenas um deles.
type TransitionMatrix struct {
	FromMonth    Month                     `json:"from_month"`
	ToMonth      Month                     `json:"to_month"`
	Origins      []string                  `json:"origins"`
	Destinations []string                  `json:"destinations"`
	Cells        map[string]map[string]int `json:"cells"`
	Lost         map[string]int            `json:"lost"`
	New          map[string]int            `json:"new"`
	OriginTotals map[string]int            `json:"origin_totals"`
	Dropped      []Entity                  `json:"dropped"`
	Added        []Entity                  `json:"added"`
}

// Count retorna a quantidade de entidades em uma célula
func (m *TransitionMatrix) Count(origin, destination string) int {
	return m.Cells[origin][destination]
}

// RowSum soma a linha de origem incluindo as entidades perdidas
func (m *TransitionMatrix) RowSum(origin string) int {
	sum := m.Lost[origin]
	for _, count := range m.Cells[origin] {
		sum += count
	}
	return sum
}

// Total soma todas as linhas de origem (igual ao número de entidades em FromMonth)
func (m *TransitionMatrix) Total() int {
	total := 0
	for _, origin := range m.Origins {
		total += m.RowSum(origin)
	}
	return total
}

// RetentionRate retorna a fração da origem que permaneceu no mesmo segmento
func (m *TransitionMatrix) RetentionRate(origin string) float64 {
	size := m.OriginTotals[origin]
	if size == 0 {
		return 0
	}
	return float64(m.Cells[origin][origin]) / float64(size)
}

// RetentionRates retorna a taxa de retenção de cada segmento de origem
func (m *TransitionMatrix) RetentionRates() map[string]float64 {
	rates := make(map[string]float64, len(m.Origins))
	for _, origin := range m.Origins {
		rates[origin] = m.RetentionRate(origin)
	}
	return rates
}

// WeightedMatrix soma um peso (contagem, receita, volume...) por par de segmentos.
// Células e novos usam o peso no mês de destino; perdidos usam o peso no mês de origem.
type WeightedMatrix struct {
	FromMonth    Month                         `json:"from_month"`
	ToMonth      Month                         `json:"to_month"`
	Metric       string                        `json:"metric"`
	Product      string                        `json:"product,omitempty"`
	Origins      []string                      `json:"origins"`
	Destinations []string                      `json:"destinations"`
	Cells        map[string]map[string]float64 `json:"cells"`
	Lost         map[string]float64            `json:"lost"`
	New          map[string]float64            `json:"new"`
}

// Value retorna o peso acumulado em uma célula
func (m *WeightedMatrix) Value(origin, destination string) float64 {
	return m.Cells[origin][destination]
}

// RowSum soma a linha de origem incluindo o peso perdido
func (m *WeightedMatrix) RowSum(origin string) float64 {
	sum := m.Lost[origin]
	for _, destination := range m.Destinations {
		sum += m.Cells[origin][destination]
	}
	return sum
}

// MatrixTable é a representação tabular da matriz com linha NEW, coluna LOST e totais
type MatrixTable struct {
	Columns []string  `json:"columns"`
	Rows    []string  `json:"rows"`
	Values  [][]int  `json:"values"`
}

// Table monta a tabela completa da matriz para a camada de relatórios
func (m *TransitionMatrix) Table() MatrixTable {
	columns := append(append([]string{}, m.Destinations...), SegmentLost, "Total Out")
	rows := append(append([]string{}, m.Origins...), SegmentNew, "Total In")

	values := make([][]int, len(rows))
	for i := range values {
		values[i] = make([]int, len(columns))
	}

	for i, origin := range m.Origins {
		for j, destination := range m.Destinations {
			values[i][j] = m.Cells[origin][destination]
		}
		values[i][len(m.Destinations)] = m.Lost[origin]
	}

	newRow := len(m.Origins)
	for j, destination := range m.Destinations {
		values[newRow][j] = m.New[destination]
	}

	// Totais de saída por linha
	lastCol := len(columns) - 1
	for i := 0; i < len(rows)-1; i++ {
		for j := 0; j < lastCol; j++ {
			values[i][lastCol] += values[i][j]
		}
	}

	// Totais de entrada por coluna
	lastRow := len(rows) - 1
	for j := range columns {
		for i := 0; i < lastRow; i++ {
			values[lastRow][j] += values[i][j]
		}
	}

	return MatrixTable{Columns: columns, Rows: rows, Values: values}
}

// Migration é a mudança de segmento de uma entidade entre dois meses
type Migration struct {
	Entity      Entity    `json:"entity"`
	FromSegment string    `json:"from_segment"`
	ToSegment   string    `json:"to_segment"`
	Direction   Direction `json:"direction"`
}

// EntityMovement é a classificação de uma entidade entre dois meses
type EntityMovement struct {
	Entity      Entity         `json:"entity"`
	FromSegment string         `json:"from_segment,omitempty"`
	ToSegment   string         `json:"to_segment,omitempty"`
	Status      MovementStatus `json:"status"`
}

// SummaryRow é uma linha da visão resumo por segmento
type SummaryRow struct {
	Segment           string  `json:"segment"`
	Base              float64 `json:"base"`
	Current           float64 `json:"current"`
	Retained          float64 `json:"retained"`
	NewSystem         float64 `json:"new_system"`
	AddedOtherSegment float64 `json:"added_other_segment"`
	LostOtherSegment  float64 `json:"lost_other_segment"`
	LostSystem        float64 `json:"lost_system"`
	NetChange         float64 `json:"net_change"`
}

// Flow é um fluxo entre nós de origem e destino (diagramas de fluxo)
type Flow struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// SortedKeys retorna as chaves de um mapa de contagem em ordem crescente
func SortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
