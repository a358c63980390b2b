package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"loancalc/internal/services"
	"loancalc/internal/shared/testutil"
	"loancalc/pkg/contracts"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestProcessCommand_Excel(t *testing.T) {
	input := writeInput(t, "loans.xlsx", testutil.BuildXLSX(t, testutil.LoanHeaders, [][]any{
		{100000, 30, 240, 6},
		{"n/a", 30, 240, 6},
	}))
	output := filepath.Join(t.TempDir(), "out.xlsx")

	stdout, err := execute(t, "process", "--input", input, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 rows, 1 skipped, total loan amount 4,187,423")

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestProcessCommand_PDF(t *testing.T) {
	input := writeInput(t, "loans.csv", testutil.BuildCSV(t, testutil.LoanHeaders, [][]string{{"50000", "0.4", "120", "0"}}))
	output := filepath.Join(t.TempDir(), "report.pdf")

	_, err := execute(t, "process", "-i", input, "-o", output, "--format", "pdf")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestProcessCommand_Errors(t *testing.T) {
	missing := writeInput(t, "loans.csv", testutil.BuildCSV(t, []string{"Monthly Income (DZD)"}, [][]string{{"1"}}))

	_, err := execute(t, "process", "--input", missing, "--output", filepath.Join(t.TempDir(), "x.xlsx"))
	assert.ErrorIs(t, err, services.ErrMissingColumns)

	_, err = execute(t, "process", "--input", missing, "--format", "pdf", "--output", filepath.Join(t.TempDir(), "x.xlsx"))
	assert.ErrorContains(t, err, "does not match format")

	_, err = execute(t, "process", "--input", missing, "--format", "docx")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "process")
	assert.Error(t, err)

	_, err = execute(t, "process", "--input", filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, contracts.Version)
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "loan_report.pdf", defaultOutput("pdf"))
	assert.Equal(t, "loan_results.xlsx", defaultOutput("excel"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", formatAmount(0))
	assert.Equal(t, "999", formatAmount(999))
	assert.Equal(t, "4,187,423", formatAmount(4187423))
	assert.Equal(t, "-1,000", formatAmount(-1000))
}
