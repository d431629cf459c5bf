// Package exporter grava os resultados das análises em arquivos JSON com carimbo de data e hora
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const timestampLayout = "20060102_150405"

// ComparisonReport é o conteúdo gravado para cada par de meses comparado
type ComparisonReport struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Dataset     *domain.DatasetInfo      `json:"dataset,omitempty"`
	Comparison  *domain.PeriodComparison `json:"comparison"`
}

type JSONExporter struct {
	dir string
	now func() time.Time
}

func NewJSONExporter(dir string) *JSONExporter {
	return &JSONExporter{
		dir: dir,
		now: time.Now,
	}
}

func (e *JSONExporter) Dir() string {
	return e.dir
}

// ExportComparison grava a comparação em <dir>/movement_<from>_<to>_<timestamp>.json
func (e *JSONExporter) ExportComparison(info *domain.DatasetInfo, comparison *domain.PeriodComparison) (string, error) {
	if comparison == nil {
		return "", errors.New("comparação vazia")
	}

	generatedAt := e.now()
	name := fmt.Sprintf("movement_%s_%s_%s.json", comparison.From, comparison.To, generatedAt.Format(timestampLayout))

	return e.write(name, ComparisonReport{
		GeneratedAt: generatedAt,
		Dataset:     info,
		Comparison:  comparison,
	})
}

// Export grava qualquer valor serializável com o prefixo informado
func (e *JSONExporter) Export(prefix string, v any) (string, error) {
	name := fmt.Sprintf("%s_%s.json", prefix, e.now().Format(timestampLayout))
	return e.write(name, v)
}

func (e *JSONExporter) write(name string, v any) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "erro ao criar diretório de exportação %s", e.dir)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar relatório")
	}

	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "erro ao gravar relatório %s", path)
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(data),
	}).Info("Relatório exportado")

	return path, nil
}
