// Package services holds the application logic between the HTTP transport
// and the processing packages.
//
// LoanService runs one upload through the pipeline:
//
//	parse (dataprocessing) -> compute (loan) -> render (exporter)
//
// Each run gets a "loan.process" span with "loan.parse" and "loan.render"
// children, and its outcome is recorded in BusinessMetrics.
//
// Client mistakes come back as *PipelineError and match one of the
// sentinels with errors.Is:
//
//	result, err := svc.Process(ctx, name, file, domain.OutputPDF)
//	switch {
//	case errors.Is(err, services.ErrMissingColumns):
//	    // 400, detail lists the absent columns
//	case errors.Is(err, services.ErrNoValidRows):
//	    // 400
//	}
//
// Render failures surface as *errors.AppError of type RENDER.
//
// HealthService answers the health, readiness and version probes.
// Readiness runs every checker registered with Register.
package services
