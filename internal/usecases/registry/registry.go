// Package registry normaliza identificadores de entidades vindos de todas as tabelas de entrada
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

const maxEntityIDLength = 64

// Registry normaliza identificadores e mantém um cache compartilhado dos já vistos.
// É seguro para uso concorrente.
type Registry struct {
	mu    sync.RWMutex
	cache map[string]domain.Entity
}

func New() *Registry {
	return &Registry{
		cache: make(map[string]domain.Entity),
	}
}

// Normalize converte um identificador bruto na entidade canônica (trim + maiúsculas)
func (r *Registry) Normalize(raw string) (domain.Entity, error) {
	r.mu.RLock()
	entity, ok := r.cache[raw]
	r.mu.RUnlock()
	if ok {
		return entity, nil
	}

	entity, err := Normalize(raw)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.cache[raw] = entity
	r.mu.Unlock()

	return entity, nil
}

// ReadOnly retorna uma visão do registro que consulta o cache mas nunca o altera.
// Identificadores fora do cache são normalizados pela função pura.
func (r *Registry) ReadOnly() ReadOnly {
	return ReadOnly{registry: r}
}

// ReadOnly normaliza identificadores de consultas sem crescer o cache do dataset
type ReadOnly struct {
	registry *Registry
}

func (v ReadOnly) Normalize(raw string) (domain.Entity, error) {
	v.registry.mu.RLock()
	entity, ok := v.registry.cache[raw]
	v.registry.mu.RUnlock()
	if ok {
		return entity, nil
	}
	return Normalize(raw)
}

// Size retorna a quantidade de identificadores brutos em cache
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// Normalize é a função pura de normalização, sem cache
func Normalize(raw string) (domain.Entity, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return "", domain.NewAnalysisError(domain.ErrInvalidEntityID, raw, 0, "identificador vazio")
	}

	if len(id) > maxEntityIDLength {
		return "", domain.NewAnalysisError(domain.ErrInvalidEntityID, raw, 0, fmt.Sprintf("identificador excede %d caracteres", maxEntityIDLength))
	}

	for _, c := range id {
		if !isAllowed(c) {
			return "", domain.NewAnalysisError(domain.ErrInvalidEntityID, raw, 0, fmt.Sprintf("caractere inválido %q", c))
		}
	}

	return domain.Entity(id), nil
}

func isAllowed(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.'
}
