package exporter

import (
	"fmt"
	"strconv"

	"loancalc/pkg/contracts/domain"
)

// Column labels of the rendered report, in order
var Headers = []string{
	"Taux d’intérêt (%)",
	"Durée (année)",
	"Durée en mois",
	"Différé",
	"Revenu mensuel (DZD)",
	"Taux d’endettement (%)",
	"Mensualité Maximale (DZD)",
	"Montant Crédit (DZD)",
}

// cellValues returns the typed spreadsheet values of a row, matching Headers.
// Rates are text so that the sheet shows them exactly as formatted.
func cellValues(row domain.ComputedRow) []any {
	return []any{
		formatRate(row.InterestRate),
		row.DurationYears,
		row.DurationMonths,
		row.Deferral,
		row.MonthlyIncome,
		formatPercent(row.DebtRatioPercent),
		row.MaxMonthlyPayment,
		row.LoanAmount,
	}
}

// displayValues returns the text shown in the PDF table, matching Headers
func displayValues(row domain.ComputedRow) []string {
	return []string{
		formatRate(row.InterestRate),
		formatDecimal(row.DurationYears),
		strconv.Itoa(row.DurationMonths),
		strconv.Itoa(row.Deferral),
		strconv.FormatInt(row.MonthlyIncome, 10),
		formatPercent(row.DebtRatioPercent),
		formatFloat(row.MaxMonthlyPayment),
		fmt.Sprintf("%.0f", row.LoanAmount),
	}
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}

func formatPercent(percent float64) string {
	return fmt.Sprintf("%.0f", percent)
}

// formatFloat formats a currency amount with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatDecimal drops trailing zeros, so 20.00 reads 20 and 8.30 reads 8.3
func formatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
