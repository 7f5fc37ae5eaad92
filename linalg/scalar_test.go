package linalg_test

import (
	"math"
	"testing"

	"github.com/wippyai/rapier-go/linalg"
)

func TestScalarUnary(t *testing.T) {
	tests := []struct {
		name string
		f    func(float32) float32
		ref  func(float64) float64
		x    float32
	}{
		{"Acoshf", linalg.Acoshf, math.Acosh, 2},
		{"Asinf", linalg.Asinf, math.Asin, 0.5},
		{"Asinhf", linalg.Asinhf, math.Asinh, 1.5},
		{"Atanf", linalg.Atanf, math.Atan, 1},
		{"Atanhf", linalg.Atanhf, math.Atanh, 0.25},
		{"Cbrtf", linalg.Cbrtf, math.Cbrt, 27},
		{"Ceilf", linalg.Ceilf, math.Ceil, 1.2},
		{"Cosf", linalg.Cosf, math.Cos, 0.3},
		{"Coshf", linalg.Coshf, math.Cosh, 0.7},
		{"Exp2f", linalg.Exp2f, math.Exp2, 3.5},
		{"Exp10f", linalg.Exp10f, func(x float64) float64 { return math.Pow(10, x) }, 2},
		{"Expf", linalg.Expf, math.Exp, 1},
		{"Expm1f", linalg.Expm1f, math.Expm1, 0.01},
		{"Fabsf", linalg.Fabsf, math.Abs, -4.5},
		{"Floorf", linalg.Floorf, math.Floor, -1.5},
		{"Log2f", linalg.Log2f, math.Log2, 8},
		{"Log10f", linalg.Log10f, math.Log10, 1000},
		{"Logf", linalg.Logf, math.Log, 10},
		{"Sinf", linalg.Sinf, math.Sin, 1.2},
		{"Sinhf", linalg.Sinhf, math.Sinh, 0.4},
		{"Sqrtf", linalg.Sqrtf, math.Sqrt, 2},
		{"Tanf", linalg.Tanf, math.Tan, 0.6},
		{"Tanhf", linalg.Tanhf, math.Tanh, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.f(tt.x)
			want := tt.ref(float64(tt.x))
			if !closeEnough(got, want) {
				t.Errorf("%s(%v) = %v, want %v", tt.name, tt.x, got, want)
			}
		})
	}
}

func TestScalarBinary(t *testing.T) {
	tests := []struct {
		name string
		f    func(float32, float32) float32
		ref  func(float64, float64) float64
		x, y float32
	}{
		{"Atan2f", linalg.Atan2f, math.Atan2, 1, -1},
		{"Fmodf", linalg.Fmodf, math.Mod, 7.5, 2},
		{"Hypotf", linalg.Hypotf, math.Hypot, 3, 4},
		{"Powf", linalg.Powf, math.Pow, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.f(tt.x, tt.y)
			want := tt.ref(float64(tt.x), float64(tt.y))
			if !closeEnough(got, want) {
				t.Errorf("%s(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, want)
			}
		})
	}
}

func closeEnough(got float32, want float64) bool {
	diff := math.Abs(float64(got) - want)
	return diff <= 1e-5*math.Max(1, math.Abs(want))
}
