// Package loader lê as tabelas de segmentação e receita de arquivos CSV
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// ErrMissingColumn indica que uma coluna obrigatória não está no cabeçalho
var ErrMissingColumn = errors.New("coluna obrigatória ausente")

// ErrInvalidValue indica uma célula numérica que não pôde ser interpretada
var ErrInvalidValue = errors.New("valor inválido")

// CSVLoader carrega base_seg.csv, curr_seg_YYYYMM.csv e rev_glbl.csv de um diretório
type CSVLoader struct {
	dir    string
	schema config.Schema
}

func NewCSVLoader(dir string, schema config.Schema) *CSVLoader {
	return &CSVLoader{dir: dir, schema: schema}
}

func (l *CSVLoader) Name() string {
	return "csv"
}

// AvailableMonths procura arquivos mensais no diretório e retorna os meses em ordem crescente
func (l *CSVLoader) AvailableMonths() ([]domain.Month, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar diretório %s", l.dir)
	}

	months := make([]domain.Month, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, l.schema.MonthlyPrefix) || !strings.HasSuffix(name, ".csv") {
			continue
		}

		raw := strings.TrimSuffix(strings.TrimPrefix(name, l.schema.MonthlyPrefix), ".csv")
		month, err := domain.ParseMonth(raw)
		if err != nil {
			logrus.WithField("file", name).Warn("Arquivo mensal com nome fora do padrão, ignorando")
			continue
		}
		months = append(months, month)
	}

	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months, nil
}

// Load lê todas as tabelas; o arquivo base e o de receita são opcionais
func (l *CSVLoader) Load(ctx context.Context) (*domain.SourceData, error) {
	data := &domain.SourceData{}

	base, err := l.LoadBase()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	data.Base = base

	months, err := l.AvailableMonths()
	if err != nil {
		return nil, err
	}

	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snapshot, err := l.LoadMonthly(month)
		if err != nil {
			return nil, err
		}
		data.Monthly = append(data.Monthly, snapshot)
	}

	revenue, err := l.LoadRevenue()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	data.Revenue = revenue

	logrus.WithFields(logrus.Fields{
		"dir":           l.dir,
		"base_rows":     len(data.Base),
		"monthly_files": len(data.Monthly),
		"revenue_rows":  len(data.Revenue),
	}).Info("Arquivos CSV carregados")

	return data, nil
}

func (l *CSVLoader) monthlyFile(month domain.Month) string {
	return fmt.Sprintf("%s%s.csv", l.schema.MonthlyPrefix, month)
}

// LoadBase lê o snapshot base; o mês vem da coluna de mês de segmentação
func (l *CSVLoader) LoadBase() ([]domain.SegmentRow, error) {
	snapshot, err := l.loadSegments(l.schema.BaseFile, 0)
	if err != nil {
		return nil, err
	}
	return snapshot.Rows, nil
}

// LoadMonthly lê um snapshot mensal; sem coluna de mês usa o mês do nome do arquivo
func (l *CSVLoader) LoadMonthly(month domain.Month) (domain.SegmentSnapshot, error) {
	return l.loadSegments(l.monthlyFile(month), month)
}

func (l *CSVLoader) loadSegments(name string, fileMonth domain.Month) (domain.SegmentSnapshot, error) {
	snapshot := domain.SegmentSnapshot{Source: name}

	table, err := readTable(filepath.Join(l.dir, name))
	if err != nil {
		return snapshot, err
	}

	entityIdx, err := table.require(name, l.schema.EntityColumn)
	if err != nil {
		return snapshot, err
	}
	segmentIdx, err := table.require(name, l.schema.SegmentColumn)
	if err != nil {
		return snapshot, err
	}
	monthIdx, hasMonth := table.columns[l.schema.SegmentMonthColumn]
	if !hasMonth && fileMonth == 0 {
		return snapshot, errors.Wrapf(ErrMissingColumn, "%s: %s", name, l.schema.SegmentMonthColumn)
	}

	for i, record := range table.records {
		month := fileMonth
		if hasMonth {
			month, err = parseMonthCell(value(record, monthIdx))
			if err != nil {
				return snapshot, errors.Wrapf(err, "%s linha %d", name, i+2)
			}
		}

		snapshot.Rows = append(snapshot.Rows, domain.SegmentRow{
			EntityID: value(record, entityIdx),
			Month:    month,
			Segment:  value(record, segmentIdx),
		})
	}

	return snapshot, nil
}

// LoadRevenue lê a tabela de receita descobrindo os produtos pelo sufixo das colunas
func (l *CSVLoader) LoadRevenue() ([]domain.RevenueRow, error) {
	name := l.schema.RevenueFile
	table, err := readTable(filepath.Join(l.dir, name))
	if err != nil {
		return nil, err
	}

	entityIdx, err := table.require(name, l.schema.MetricsEntityColumn)
	if err != nil {
		return nil, err
	}
	monthIdx, err := table.require(name, l.schema.MetricsMonthColumn)
	if err != nil {
		return nil, err
	}

	products := DiscoverProducts(table.header, l.schema.RevenueSuffix)

	rows := make([]domain.RevenueRow, 0, len(table.records))
	for i, record := range table.records {
		line := i + 2
		month, err := parseMonthCell(value(record, monthIdx))
		if err != nil {
			return nil, errors.Wrapf(err, "%s linha %d", name, line)
		}

		row := domain.RevenueRow{
			EntityID: value(record, entityIdx),
			Month:    month,
			Products: make(map[string]domain.ProductMetrics, len(products)),
		}
		for _, product := range products {
			revenue, err := parseMetric(record, table.columns, product+l.schema.RevenueSuffix)
			if err != nil {
				return nil, errors.Wrapf(err, "%s linha %d", name, line)
			}
			volume, err := parseMetric(record, table.columns, product+l.schema.VolumeSuffix)
			if err != nil {
				return nil, errors.Wrapf(err, "%s linha %d", name, line)
			}
			row.Products[product] = domain.ProductMetrics{Revenue: revenue, Volume: volume}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// DiscoverProducts retorna os produtos cujas colunas terminam com o sufixo de receita
func DiscoverProducts(header []string, revenueSuffix string) []string {
	products := make([]string, 0)
	seen := make(map[string]struct{})
	for _, column := range header {
		if !strings.HasSuffix(column, revenueSuffix) {
			continue
		}
		product := strings.TrimSuffix(column, revenueSuffix)
		if product == "" {
			continue
		}
		if _, ok := seen[product]; ok {
			continue
		}
		seen[product] = struct{}{}
		products = append(products, product)
	}
	sort.Strings(products)
	return products
}

// IgnoredColumns lista as colunas da tabela de receita que não são entidade, mês nem
// métrica de produto com os sufixos configurados (ex: EXP_rev_wof com sufixo _rev_wf)
func IgnoredColumns(header []string, schema config.Schema) []string {
	products := DiscoverProducts(header, schema.RevenueSuffix)
	known := map[string]struct{}{
		schema.MetricsEntityColumn: {},
		schema.MetricsMonthColumn:  {},
	}
	for _, product := range products {
		known[product+schema.RevenueSuffix] = struct{}{}
		known[product+schema.VolumeSuffix] = struct{}{}
	}

	ignored := make([]string, 0)
	for _, column := range header {
		if _, ok := known[column]; !ok {
			ignored = append(ignored, column)
		}
	}
	return ignored
}

type table struct {
	header  []string
	columns map[string]int
	records [][]string
}

func (t *table) require(file, column string) (int, error) {
	idx, ok := t.columns[column]
	if !ok {
		return 0, errors.Wrapf(ErrMissingColumn, "%s: %s", file, column)
	}
	return idx, nil
}

func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler cabeçalho de %s", filepath.Base(path))
	}

	t := &table{header: make([]string, len(header)), columns: make(map[string]int, len(header))}
	for i, column := range header {
		column = strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
		t.header[i] = column
		t.columns[column] = i
	}

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrapf(err, "erro ao ler %s", filepath.Base(path))
		}
		if len(record) == 0 {
			continue
		}
		t.records = append(t.records, record)
	}

	return t, nil
}

func value(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseMonthCell aceita YYYYMM também quando exportado como número decimal (202406.0)
func parseMonthCell(raw string) (domain.Month, error) {
	raw = strings.TrimSpace(raw)
	if whole, fraction, ok := strings.Cut(raw, "."); ok && strings.Trim(fraction, "0") == "" {
		raw = whole
	}
	return domain.ParseMonth(raw)
}

// parseMetric converte a célula em float; coluna ausente ou célula vazia valem zero
func parseMetric(record []string, columns map[string]int, column string) (float64, error) {
	idx, ok := columns[column]
	if !ok {
		return 0, nil
	}

	raw := value(record, idx)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return 0, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidValue, "%q na coluna %s", raw, column)
	}
	return v, nil
}
