package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Month representa um mês no formato inteiro YYYYMM (ex: 202406)
type Month int

// ParseMonth converte uma string YYYYMM em Month validando ano e mês
func ParseMonth(raw string) (Month, error) {
	value := strings.TrimSpace(raw)
	if len(value) != 6 {
		return 0, NewAnalysisError(ErrInvalidMonth, "", 0, fmt.Sprintf("formato esperado YYYYMM, recebido %q", raw))
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewAnalysisError(ErrInvalidMonth, "", 0, fmt.Sprintf("mês não numérico %q", raw))
	}

	month := Month(n)
	if !month.Valid() {
		return 0, NewAnalysisError(ErrInvalidMonth, "", month, fmt.Sprintf("mês fora do intervalo %q", raw))
	}

	return month, nil
}

func (m Month) Year() int {
	return int(m) / 100
}

func (m Month) MonthOfYear() int {
	return int(m) % 100
}

// Valid verifica se o mês está entre 01 e 12 e o ano entre 1900 e 9999
func (m Month) Valid() bool {
	year, month := m.Year(), m.MonthOfYear()
	return year >= 1900 && year <= 9999 && month >= 1 && month <= 12
}

// AddMonths desloca o mês n posições (n pode ser negativo)
func (m Month) AddMonths(n int) Month {
	index := m.Year()*12 + (m.MonthOfYear() - 1) + n
	return Month((index/12)*100 + index%12 + 1)
}

// MonthsUntil retorna a quantidade de meses entre m e other, contando ambos os extremos.
// Retorna zero quando other é anterior a m.
func (m Month) MonthsUntil(other Month) int {
	span := (other.Year()*12 + other.MonthOfYear()) - (m.Year()*12 + m.MonthOfYear()) + 1
	if span < 0 {
		return 0
	}
	return span
}

// Trailing retorna os n meses terminando em m, em ordem crescente
func (m Month) Trailing(n int) []Month {
	if n <= 0 {
		return []Month{}
	}

	months := make([]Month, n)
	for i := 0; i < n; i++ {
		months[n-1-i] = m.AddMonths(-i)
	}
	return months
}

func (m Month) String() string {
	return fmt.Sprintf("%06d", int(m))
}
