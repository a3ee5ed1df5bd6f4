package payroll

import "github.com/shopspring/decimal"

// IncomeTax applies the monthly bracket table to a taxable base in pesos.
func IncomeTax(brackets []TaxBracket, utm float64, base int64) int64 {
	if base <= 0 || utm <= 0 {
		return 0
	}
	utmValue := decimal.NewFromFloat(utm)
	inUTM := decimal.NewFromInt(base).Div(utmValue)

	for _, b := range brackets {
		from := decimal.NewFromFloat(b.FromUTM)
		if inUTM.LessThanOrEqual(from) && b.FromUTM > 0 {
			continue
		}
		if b.ToUTM > 0 && inUTM.GreaterThan(decimal.NewFromFloat(b.ToUTM)) {
			continue
		}
		tax := decimal.NewFromInt(base).
			Mul(decimal.NewFromFloat(b.Rate)).
			Sub(decimal.NewFromFloat(b.RebateUTM).Mul(utmValue))
		return maxInt64(pesos(tax), 0)
	}
	return 0
}
