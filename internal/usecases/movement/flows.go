package movement

import (
	"fmt"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// Rótulos dos nós de sistema nos fluxos
const (
	NewSystemNode  = "New (System)"
	LostSystemNode = "Lost (System)"
)

func baseNode(segment string) string {
	return fmt.Sprintf("%s (Base)", segment)
}

func currentNode(segment string) string {
	return fmt.Sprintf("%s (Current)", segment)
}

// Flows converte a matriz ponderada em fluxos com valor positivo, incluindo entradas e
// saídas do sistema
func Flows(matrix *domain.WeightedMatrix) []domain.Flow {
	flows := make([]domain.Flow, 0)

	for _, origin := range matrix.Origins {
		for _, destination := range matrix.Destinations {
			if value := matrix.Cells[origin][destination]; value > 0 {
				flows = append(flows, domain.Flow{Source: baseNode(origin), Target: currentNode(destination), Value: value})
			}
		}

		if lost := matrix.Lost[origin]; lost > 0 {
			flows = append(flows, domain.Flow{Source: baseNode(origin), Target: LostSystemNode, Value: lost})
		}
	}

	for _, destination := range matrix.Destinations {
		if added := matrix.New[destination]; added > 0 {
			flows = append(flows, domain.Flow{Source: NewSystemNode, Target: currentNode(destination), Value: added})
		}
	}

	return flows
}
