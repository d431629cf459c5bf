package loader

import (
	"os"

	"github.com/pkg/errors"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"gopkg.in/yaml.v3"
)

// LoadSchemaFile lê um schema.yaml e sobrescreve apenas os campos informados no arquivo.
// Caminho vazio retorna o schema recebido sem alterações.
func LoadSchemaFile(path string, fallback config.Schema) (config.Schema, error) {
	if path == "" {
		return fallback, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fallback, errors.Wrapf(err, "erro ao ler schema %s", path)
	}

	var override config.Schema
	if err := yaml.Unmarshal(file, &override); err != nil {
		return fallback, errors.Wrapf(err, "erro ao interpretar schema %s", path)
	}

	return merge(fallback, override), nil
}

func merge(base, override config.Schema) config.Schema {
	pick := func(current, candidate string) string {
		if candidate != "" {
			return candidate
		}
		return current
	}

	return config.Schema{
		EntityColumn:        pick(base.EntityColumn, override.EntityColumn),
		SegmentMonthColumn:  pick(base.SegmentMonthColumn, override.SegmentMonthColumn),
		SegmentColumn:       pick(base.SegmentColumn, override.SegmentColumn),
		MetricsEntityColumn: pick(base.MetricsEntityColumn, override.MetricsEntityColumn),
		MetricsMonthColumn:  pick(base.MetricsMonthColumn, override.MetricsMonthColumn),
		RevenueSuffix:       pick(base.RevenueSuffix, override.RevenueSuffix),
		VolumeSuffix:        pick(base.VolumeSuffix, override.VolumeSuffix),
		BaseFile:            pick(base.BaseFile, override.BaseFile),
		MonthlyPrefix:       pick(base.MonthlyPrefix, override.MonthlyPrefix),
		RevenueFile:         pick(base.RevenueFile, override.RevenueFile),
	}
}
