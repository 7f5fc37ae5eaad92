package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the handle lifecycle the error occurred
type Phase string

const (
	PhaseAlloc   Phase = "alloc"   // native constructor
	PhaseRead    Phase = "read"    // handle field access
	PhaseRelease Phase = "release" // handle free
	PhaseBind    Phase = "bind"    // export/symbol resolution
	PhaseLoad    Phase = "load"    // module or library loading
	PhaseConfig  Phase = "config"  // configuration parsing
	PhaseRuntime Phase = "runtime" // everything else
)

// Kind categorizes the error
type Kind string

const (
	KindAllocation     Kind = "allocation"
	KindRelease        Kind = "release"
	KindTrap           Kind = "trap"
	KindDoubleRelease  Kind = "double_release"
	KindUseAfterFree   Kind = "use_after_free"
	KindUnknownHandle  Kind = "unknown_handle"
	KindLeak           Kind = "leak"
	KindMissingExport  Kind = "missing_export"
	KindSignature      Kind = "signature_mismatch"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Symbol string
	Detail string
	Handle uint64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Symbol != "" {
		b.WriteString(" at ")
		b.WriteString(e.Symbol)
	}

	if e.Handle != 0 {
		fmt.Fprintf(&b, " (handle %d)", e.Handle)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Violation reports whether the error is a handle contract violation
// (double release, use after free, unknown handle).
func (e *Error) Violation() bool {
	switch e.Kind {
	case KindDoubleRelease, KindUseAfterFree, KindUnknownHandle:
		return true
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Symbol sets the native symbol name
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Handle sets the ledger id of the handle involved
func (b *Builder) Handle(id uint64) *Builder {
	b.err.Handle = id
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// AllocationFailed creates an error for a native constructor that failed
func AllocationFailed(symbol string, cause error) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindAllocation,
		Symbol: symbol,
		Detail: "native constructor failed",
		Cause:  cause,
	}
}

// NullAllocation creates an error for a constructor that returned the absent handle
func NullAllocation(symbol string) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindAllocation,
		Symbol: symbol,
		Detail: "constructor returned a null handle",
	}
}

// ReleaseFailed creates an error for a native free that failed
func ReleaseFailed(symbol string, handle uint64, cause error) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindRelease,
		Symbol: symbol,
		Handle: handle,
		Cause:  cause,
	}
}

// Trap creates an error for a native call that trapped
func Trap(phase Phase, symbol string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTrap,
		Symbol: symbol,
		Cause:  cause,
	}
}

// DoubleRelease creates an error for a handle released more than once
func DoubleRelease(handle uint64) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindDoubleRelease,
		Handle: handle,
		Detail: "handle already released",
	}
}

// UseAfterFree creates an error for a handle read after its release
func UseAfterFree(handle uint64) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindUseAfterFree,
		Handle: handle,
		Detail: "handle read after release",
	}
}

// UnknownHandle creates an error for a handle the ledger never issued
func UnknownHandle(phase Phase, handle uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownHandle,
		Handle: handle,
		Detail: "handle was never allocated",
	}
}

// Leaked creates an error for handles still live at shutdown
func Leaked(count int) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindLeak,
		Detail: fmt.Sprintf("%d handle(s) never released", count),
		Value:  count,
	}
}

// MissingExport creates an error for a native symbol that could not be resolved
func MissingExport(phase Phase, symbol string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingExport,
		Symbol: symbol,
		Detail: "symbol not exported by native engine",
	}
}

// SignatureMismatch creates an error for an export with an unexpected signature
func SignatureMismatch(symbol, want, got string) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindSignature,
		Symbol: symbol,
		Detail: fmt.Sprintf("want %s, got %s", want, got),
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a module or library loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Config creates a configuration error
func Config(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
