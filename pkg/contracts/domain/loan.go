package domain

import "strings"

// Internal field names for the four required input columns
const (
	FieldMonthlyIncome  = "monthly_income"
	FieldDebtRatio      = "debt_ratio"
	FieldDurationMonths = "loan_duration_months"
	FieldAnnualRate     = "annual_interest_rate_percent"
)

// RequiredFields lists the internal column names every upload must provide, in report order
var RequiredFields = []string{
	FieldMonthlyIncome,
	FieldDebtRatio,
	FieldDurationMonths,
	FieldAnnualRate,
}

// SourceColumns maps the headers found in client spreadsheets to internal field names
var SourceColumns = map[string]string{
	"Monthly Income (DZD)":     FieldMonthlyIncome,
	"Debt Ratio (%)":           FieldDebtRatio,
	"Loan Duration (months)":   FieldDurationMonths,
	"Annual Interest Rate (%)": FieldAnnualRate,
}

// InputRow is one validated line of an uploaded loan sheet
type InputRow struct {
	// Line is the 1-based line number in the source sheet, header included
	Line               int     `json:"line"`
	MonthlyIncome      float64 `json:"monthly_income"`
	DebtRatio          float64 `json:"debt_ratio"`
	DurationMonths     float64 `json:"loan_duration_months"`
	AnnualInterestRate float64 `json:"annual_interest_rate_percent"`
}

// DeferralMonths is the fixed deferral reported on every computed row
const DeferralMonths = 1

// ComputedRow holds the figures derived from one InputRow.
// Rows are created once by the calculator and never mutated.
type ComputedRow struct {
	InterestRate      float64 `json:"interest_rate"`
	DurationYears     float64 `json:"duration_years"`
	DurationMonths    int     `json:"duration_months"`
	Deferral          int     `json:"deferral"`
	MonthlyIncome     int64   `json:"monthly_income"`
	DebtRatioPercent  float64 `json:"debt_ratio_percent"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment"`
	LoanAmount        float64 `json:"loan_amount"`
}

// OutputType selects the rendered artifact
type OutputType string

const (
	OutputExcel OutputType = "excel"
	OutputPDF   OutputType = "pdf"
)

// Artifact is a rendered report ready to be sent as an attachment
type Artifact struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ParseOutputType normalizes a client supplied output selector.
// Empty and unknown values resolve to OutputExcel; ok reports whether the
// value was recognised.
func ParseOutputType(value string) (outputType OutputType, ok bool) {
	switch OutputType(strings.ToLower(strings.TrimSpace(value))) {
	case OutputPDF:
		return OutputPDF, true
	case OutputExcel:
		return OutputExcel, true
	case "":
		return OutputExcel, true
	default:
		return OutputExcel, false
	}
}
