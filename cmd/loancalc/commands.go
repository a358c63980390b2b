package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"loancalc/internal/config"
	"loancalc/internal/dataprocessing"
	"loancalc/internal/exporter"
	"loancalc/internal/infrastructure"
	"loancalc/internal/services"
	"loancalc/internal/validation"
	"loancalc/pkg/contracts"
	"loancalc/pkg/contracts/domain"
)

type processOptions struct {
	input    string
	output   string
	format   string
	maxRows  int
	maxBytes int64
	logLevel string
	timeout  time.Duration
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "loancalc",
		Short:         "Compute maximum loan amounts from a spreadsheet",
		Version:       contracts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newProcessCommand(), newVersionCommand())
	return cmd
}

func newProcessCommand() *cobra.Command {
	opts := &processOptions{}

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process an xlsx or csv loan sheet into an excel or pdf report",
		Example: `  loancalc process --input loans.xlsx
  loancalc process --input loans.csv --format pdf --output report.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "input file (.xlsx, .xlsm or .csv)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: loan_results.xlsx or loan_report.pdf)")
	f.StringVarP(&opts.format, "format", "f", string(domain.OutputExcel), "output format: excel|pdf")
	f.IntVar(&opts.maxRows, "max-rows", 0, "reject sheets with more data rows (0 = no limit)")
	f.Int64Var(&opts.maxBytes, "max-bytes", config.DefaultMaxUploadBytes, "reject larger input files (0 = no limit)")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	f.DurationVar(&opts.timeout, "timeout", time.Minute, "processing timeout")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}

func runProcess(cmd *cobra.Command, opts *processOptions) error {
	outputType, ok := domain.ParseOutputType(opts.format)
	if !ok {
		return fmt.Errorf("unknown format %q: use excel or pdf", opts.format)
	}

	output := opts.output
	if output == "" {
		output = defaultOutput(outputType)
	}

	logger := infrastructure.NewLogger(config.LoggingConfig{Level: opts.logLevel}, cmd.ErrOrStderr())
	validator := validation.NewFileValidator(logger, opts.maxBytes)
	if err := validator.ValidateInputFile(opts.input); err != nil {
		return err
	}
	if err := validator.ValidateOutputPath(output, outputType); err != nil {
		return err
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	svc := services.NewLoanService(logger, dataprocessing.Options{MaxRows: opts.maxRows})

	ctx, cancel := context.WithTimeout(cmdContext(cmd), opts.timeout)
	defer cancel()
	ctx = infrastructure.EnsureTraceID(ctx)

	result, err := svc.Process(ctx, filepath.Base(opts.input), in, outputType)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, result.Artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d rows, %d skipped, total loan amount %s\n",
		output, result.Summary.Rows, result.RowsSkipped, formatAmount(result.Summary.TotalPrincipal))
	return nil
}

func defaultOutput(outputType domain.OutputType) string {
	if outputType == domain.OutputPDF {
		return exporter.PDFFilename
	}
	return exporter.ExcelFilename
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// amountPrinter formats amounts with English digit grouping
var amountPrinter = message.NewPrinter(language.English)

// formatAmount prints a whole currency amount with thousands separators
func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%d", int64(math.Round(v)))
}
