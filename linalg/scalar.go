package linalg

import "github.com/chewxy/math32"

// Single-precision math under the engine binding's names.

func Acoshf(x float32) float32    { return math32.Acosh(x) }
func Asinf(x float32) float32     { return math32.Asin(x) }
func Asinhf(x float32) float32    { return math32.Asinh(x) }
func Atan2f(y, x float32) float32 { return math32.Atan2(y, x) }
func Atanf(x float32) float32     { return math32.Atan(x) }
func Atanhf(x float32) float32    { return math32.Atanh(x) }
func Cbrtf(x float32) float32     { return math32.Cbrt(x) }
func Ceilf(x float32) float32     { return math32.Ceil(x) }
func Cosf(x float32) float32      { return math32.Cos(x) }
func Coshf(x float32) float32     { return math32.Cosh(x) }

func Exp2f(x float32) float32     { return math32.Exp2(x) }
func Expf(x float32) float32      { return math32.Exp(x) }
func Expm1f(x float32) float32    { return math32.Expm1(x) }
func Fabsf(x float32) float32     { return math32.Abs(x) }
func Floorf(x float32) float32    { return math32.Floor(x) }
func Fmodf(x, y float32) float32  { return math32.Mod(x, y) }
func Hypotf(p, q float32) float32 { return math32.Hypot(p, q) }
func Log10f(x float32) float32    { return math32.Log10(x) }
func Log2f(x float32) float32     { return math32.Log2(x) }
func Logf(x float32) float32      { return math32.Log(x) }
func Powf(x, y float32) float32   { return math32.Pow(x, y) }
func Sinf(x float32) float32      { return math32.Sin(x) }
func Sinhf(x float32) float32     { return math32.Sinh(x) }
func Sqrtf(x float32) float32     { return math32.Sqrt(x) }
func Tanf(x float32) float32      { return math32.Tan(x) }
func Tanhf(x float32) float32     { return math32.Tanh(x) }

// Exp10f returns 10**x. math32 has no exp10.
func Exp10f(x float32) float32 { return math32.Pow(10, x) }
