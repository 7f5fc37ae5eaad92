package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAlloc,
				Kind:   KindAllocation,
				Symbol: "rawvector_new",
				Handle: 7,
				Detail: "guest out of memory",
			},
			contains: []string{"[alloc]", "allocation", "rawvector_new", "handle 7", "guest out of memory"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRead,
				Kind:  KindUseAfterFree,
			},
			contains: []string{"[read]", "use_after_free"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRelease,
				Kind:   KindRelease,
				Detail: "free trapped",
				Cause:  errors.New("unreachable"),
			},
			contains: []string{"[release]", "release", "free trapped", "caused by", "unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseAlloc,
		Kind:  KindAllocation,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := DoubleRelease(3)

	if !err.Is(&Error{Phase: PhaseRelease, Kind: KindDoubleRelease}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseRead, Kind: KindDoubleRelease}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseRelease, Kind: KindRelease}) {
		t.Error("Is should not match different kind")
	}

	var target *Error
	if !errors.As(error(err), &target) || target.Handle != 3 {
		t.Errorf("errors.As = %v", target)
	}
}

func TestError_Violation(t *testing.T) {
	tests := []struct {
		err  *Error
		want bool
	}{
		{DoubleRelease(1), true},
		{UseAfterFree(1), true},
		{UnknownHandle(PhaseRead, 1), true},
		{AllocationFailed("rawvector_new", nil), false},
		{Leaked(2), false},
	}
	for _, tt := range tests {
		if got := tt.err.Violation(); got != tt.want {
			t.Errorf("%v.Violation() = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseBind, KindSignature).
		Symbol("rawrotation_new").
		Handle(9).
		Value(42).
		Cause(cause).
		Detail("expected %d params, got %d", 4, 3).
		Build()

	if err.Phase != PhaseBind {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseBind)
	}
	if err.Kind != KindSignature {
		t.Errorf("Kind = %v, want %v", err.Kind, KindSignature)
	}
	if err.Symbol != "rawrotation_new" {
		t.Errorf("Symbol = %v", err.Symbol)
	}
	if err.Handle != 9 {
		t.Errorf("Handle = %v, want 9", err.Handle)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected 4 params, got 3" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NullAllocation", func(t *testing.T) {
		err := NullAllocation("rawvector_zero")
		if err.Kind != KindAllocation || err.Phase != PhaseAlloc {
			t.Errorf("got %v", err)
		}
	})

	t.Run("ReleaseFailed", func(t *testing.T) {
		err := ReleaseFailed("__wbg_rawvector_free", 4, errors.New("trap"))
		if err.Kind != KindRelease || err.Handle != 4 {
			t.Errorf("got %v", err)
		}
	})

	t.Run("Trap", func(t *testing.T) {
		err := Trap(PhaseRead, "rawvector_x", errors.New("oob"))
		if err.Kind != KindTrap || err.Phase != PhaseRead {
			t.Errorf("got %v", err)
		}
	})

	t.Run("Leaked", func(t *testing.T) {
		err := Leaked(5)
		if err.Value != 5 || !strings.Contains(err.Detail, "5") {
			t.Errorf("got %v", err)
		}
	})

	t.Run("SignatureMismatch", func(t *testing.T) {
		err := SignatureMismatch("rawvector_x", "(i32) -> f32", "(i32) -> i32")
		if !strings.Contains(err.Error(), "(i32) -> f32") {
			t.Errorf("got %v", err)
		}
	})

	t.Run("Config", func(t *testing.T) {
		err := Config("unknown backend", nil)
		if err.Phase != PhaseConfig {
			t.Errorf("Phase = %v", err.Phase)
		}
	})
}
