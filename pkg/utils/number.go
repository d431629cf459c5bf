package utils

import "github.com/shopspring/decimal"

// RoundWithTwoDecimalPlace arredonda em base decimal, metade para longe de zero
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// Percentage retorna part/total em pontos percentuais com duas casas; total zero retorna zero
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}

	return decimal.NewFromFloat(part).
		Div(decimal.NewFromFloat(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}
