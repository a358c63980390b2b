// Package loan computes borrowing capacity with the annuity formula.
package loan

import (
	"math"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"loancalc/pkg/contracts/domain"
)

// Summary aggregates a batch of computed rows
type Summary struct {
	Rows           int
	Skipped        int
	TotalPrincipal float64
	AveragePayment float64
}

// NormalizeRatio turns a debt ratio given in percent into a fraction.
// Values up to and including 1 are already fractions.
func NormalizeRatio(ratio float64) float64 {
	if ratio > 1 {
		return ratio / 100
	}
	return ratio
}

// MonthlyRate converts an annual percentage rate to a monthly fraction
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / 12
}

// Principal is the present value of n payments at monthly rate r.
// A zero rate degenerates to payment * n.
func Principal(payment, r, n float64) float64 {
	if r == 0 {
		return payment * n
	}
	return payment * (1 - math.Pow(1+r, -n)) / r
}

// Calculate derives the report figures for one input row
func Calculate(in domain.InputRow) domain.ComputedRow {
	ratio := NormalizeRatio(in.DebtRatio)
	payment := in.MonthlyIncome * ratio
	principal := Principal(payment, MonthlyRate(in.AnnualInterestRate), in.DurationMonths)

	return domain.ComputedRow{
		InterestRate:      in.AnnualInterestRate,
		DurationYears:     round(in.DurationMonths/12, 2),
		DurationMonths:    int(in.DurationMonths),
		Deferral:          domain.DeferralMonths,
		MonthlyIncome:     int64(in.MonthlyIncome),
		DebtRatioPercent:  round(ratio*100, 4),
		MaxMonthlyPayment: round(payment, 2),
		LoanAmount:        round(principal, 0),
	}
}

// CalculateAll computes every row in order and summarizes the batch.
// Rows whose figures are not finite, such as a rate at or below -1200%,
// are dropped and counted in Summary.Skipped.
func CalculateAll(rows []domain.InputRow) ([]domain.ComputedRow, Summary) {
	computed := lo.FilterMap(rows, func(in domain.InputRow, _ int) (domain.ComputedRow, bool) {
		c := Calculate(in)
		return c, finite(c.LoanAmount) && finite(c.MaxMonthlyPayment)
	})

	summary := Summary{Rows: len(computed), Skipped: len(rows) - len(computed)}
	if len(computed) == 0 {
		return computed, summary
	}

	total := decimal.Zero
	payments := decimal.Zero
	for _, c := range computed {
		total = total.Add(decimal.NewFromFloat(c.LoanAmount))
		payments = payments.Add(decimal.NewFromFloat(c.MaxMonthlyPayment))
	}

	summary.TotalPrincipal = total.InexactFloat64()
	summary.AveragePayment = payments.Div(decimal.NewFromInt(int64(len(computed)))).Round(2).InexactFloat64()
	return computed, summary
}

// round rounds half away from zero at the given number of decimal places
func round(v float64, places int32) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
