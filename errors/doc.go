// Package errors provides structured error types for the rapier-go bindings.
//
// Errors are categorized by Phase (where in the handle lifecycle the error
// occurred) and Kind (error category). The Error type carries the native
// symbol involved, the ledger id of the handle, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAlloc, errors.KindAllocation).
//		Symbol("rawvector_new").
//		Detail("guest memory exhausted").
//		Cause(trap).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DoubleRelease(id)
//	err := errors.MissingExport(errors.PhaseBind, "rawvector_x")
//
// Contract violations (double release, use after free, unknown handle) are
// reported by checked native adapters and test doubles only; the conversion
// layer itself never produces them.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
