package payroll

import "github.com/shopspring/decimal"

// EmployerContributions are the employer-funded premiums for one liquidation.
type EmployerContributions struct {
	Unemployment int64 `json:"unemployment"`
	WorkAccident int64 `json:"work_accident"`
	SIS          int64 `json:"sis"`
}

// Total sums every employer contribution.
func (e EmployerContributions) Total() int64 {
	return e.Unemployment + e.WorkAccident + e.SIS
}

// Employer computes the employer premiums on a taxable income. additionalAccidentRate is the
// company's risk surcharge on top of the base work accident rate. When the SIS premium is
// charged to the worker it is not repeated here.
func Employer(p Parameters, contractType string, taxable int64, additionalAccidentRate float64) EmployerContributions {
	base := minInt64(taxable, ufToPesos(p.TaxableCapUF, p.UF))
	unemploymentBase := minInt64(taxable, ufToPesos(p.UnemploymentCapUF, p.UF))

	rates, _ := p.unemploymentRates(contractType)
	out := EmployerContributions{
		Unemployment: applyRate(unemploymentBase, rates.Employer),
		WorkAccident: pesos(decimal.NewFromInt(base).Mul(
			decimal.NewFromFloat(p.Employer.WorkAccidentBase).Add(decimal.NewFromFloat(additionalAccidentRate)))),
	}
	if !p.SISWorkerDeduction {
		out.SIS = applyRate(base, p.Employer.SIS)
	}
	return out
}
