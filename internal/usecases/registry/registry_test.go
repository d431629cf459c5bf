package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.Entity
		wantErr bool
	}{
		{name: "remove espaços e converte para maiúsculas", raw: "  e0000001 ", want: "E0000001"},
		{name: "mantém hífen, underline e ponto", raw: "acc-01_x.9", want: "ACC-01_X.9"},
		{name: "identificador vazio", raw: "   ", wantErr: true},
		{name: "espaço interno é inválido", raw: "E 01", wantErr: true},
		{name: "caractere especial é inválido", raw: "E#01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidEntityID))

				var analysisErr *domain.AnalysisError
				require.True(t, errors.As(err, &analysisErr))
				assert.Equal(t, domain.CodeInvalidEntityID, analysisErr.Code)
				assert.Equal(t, tt.raw, analysisErr.EntityID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_ReadOnlyNaoAlteraCache(t *testing.T) {
	r := New()
	_, err := r.Normalize(" e1 ")
	require.NoError(t, err)
	require.Equal(t, 1, r.Size())

	view := r.ReadOnly()

	cached, err := view.Normalize(" e1 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Entity("E1"), cached)

	for i := 0; i < 100; i++ {
		entity, err := view.Normalize(fmt.Sprintf("unknown%d", i))
		require.NoError(t, err)
		assert.Equal(t, domain.Entity(fmt.Sprintf("UNKNOWN%d", i)), entity)
	}

	_, err = view.Normalize("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidEntityID)

	assert.Equal(t, 1, r.Size())
}

func TestRegistry_CacheConcorrente(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entity, err := r.Normalize("e01")
			assert.NoError(t, err)
			assert.Equal(t, domain.Entity("E01"), entity)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.Size())
}
