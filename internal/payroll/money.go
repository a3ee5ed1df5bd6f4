package payroll

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	thirty  = decimal.NewFromInt(30)
)

// pesos rounds half away from zero to a whole peso.
func pesos(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func applyRate(amount int64, rate float64) int64 {
	return pesos(decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(rate)))
}

// percent converts a fraction to a percentage without float noise (0.0127 -> 1.27).
func percent(rate float64) float64 {
	return decimal.NewFromFloat(rate).Mul(hundred).InexactFloat64()
}

func ufToPesos(uf, ufValue float64) int64 {
	return pesos(decimal.NewFromFloat(uf).Mul(decimal.NewFromFloat(ufValue)))
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
