package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// FileReport é o resultado da validação de um arquivo de entrada
type FileReport struct {
	File     string   `json:"file"`
	Rows     int      `json:"rows"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidationReport agrupa a validação de todos os arquivos do diretório
type ValidationReport struct {
	Files []FileReport `json:"files"`
}

// HasErrors indica se algum arquivo tem erro impeditivo
func (r *ValidationReport) HasErrors() bool {
	for _, file := range r.Files {
		if len(file.Errors) > 0 {
			return true
		}
	}
	return false
}

// Validate confere colunas obrigatórias (erro), entidades repetidas e segmentos em
// branco (aviso) em cada arquivo, sem interromper na primeira falha
func (l *CSVLoader) Validate() (*ValidationReport, error) {
	months, err := l.AvailableMonths()
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{}
	if file, ok := l.validateSegments(l.schema.BaseFile, 0); ok {
		report.Files = append(report.Files, file)
	}
	for _, month := range months {
		file, _ := l.validateSegments(l.monthlyFile(month), month)
		report.Files = append(report.Files, file)
	}
	if file, ok := l.validateRevenue(); ok {
		report.Files = append(report.Files, file)
	}

	return report, nil
}

// validateSegments retorna false quando o arquivo não existe
func (l *CSVLoader) validateSegments(name string, month domain.Month) (FileReport, bool) {
	file := FileReport{File: name}

	if _, err := os.Stat(filepath.Join(l.dir, name)); errors.Is(err, os.ErrNotExist) {
		return file, false
	}

	snapshot, err := l.loadSegments(name, month)
	if err != nil {
		file.Errors = append(file.Errors, err.Error())
		return file, true
	}

	file.Rows = len(snapshot.Rows)
	seen := make(map[string]int)
	blank := 0
	for _, row := range snapshot.Rows {
		key := fmt.Sprintf("%s|%s", row.EntityID, row.Month)
		seen[key]++
		if row.Segment == "" {
			blank++
		}
	}

	duplicated := 0
	for _, count := range seen {
		if count > 1 {
			duplicated++
		}
	}
	if duplicated > 0 {
		file.Warnings = append(file.Warnings, fmt.Sprintf("%d entidades repetidas no mesmo mês", duplicated))
	}
	if blank > 0 {
		file.Warnings = append(file.Warnings, fmt.Sprintf("%d linhas com segmento em branco", blank))
	}

	return file, true
}

func (l *CSVLoader) validateRevenue() (FileReport, bool) {
	name := l.schema.RevenueFile
	file := FileReport{File: name}

	if _, err := os.Stat(filepath.Join(l.dir, name)); errors.Is(err, os.ErrNotExist) {
		return file, false
	}

	rows, err := l.LoadRevenue()
	if err != nil {
		file.Errors = append(file.Errors, err.Error())
		return file, true
	}

	file.Rows = len(rows)
	if len(rows) > 0 && len(rows[0].Products) == 0 {
		file.Warnings = append(file.Warnings, fmt.Sprintf("nenhuma coluna de produto com sufixo %s", l.schema.RevenueSuffix))
	}

	table, err := readTable(filepath.Join(l.dir, name))
	if err != nil {
		file.Errors = append(file.Errors, err.Error())
		return file, true
	}
	if ignored := IgnoredColumns(table.header, l.schema); len(ignored) > 0 {
		file.Warnings = append(file.Warnings, fmt.Sprintf("colunas ignoradas (sufixos %s e %s): %s",
			l.schema.RevenueSuffix, l.schema.VolumeSuffix, strings.Join(ignored, ", ")))
	}

	return file, true
}
