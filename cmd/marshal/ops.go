package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/rapier-go/abi"
	"github.com/wippyai/rapier-go/linalg"
)

type opKind int

const (
	kindVector opKind = iota
	kindRotation
	kindScalar
)

type paramInfo struct {
	name    string
	witType wit.Type
}

// operation is one conversion the tool can exercise.
type operation struct {
	run    func(ctx context.Context, args []float32) (string, error)
	name   string
	params []paramInfo
	kind   opKind
}

func f32Params(names ...string) []paramInfo {
	out := make([]paramInfo, len(names))
	for i, n := range names {
		out[i] = paramInfo{name: n, witType: wit.F32{}}
	}
	return out
}

func scalarOperations() []operation {
	return []operation{
		{
			name:   "scalar.atan2",
			kind:   kindScalar,
			params: f32Params("y", "x"),
			run: func(_ context.Context, a []float32) (string, error) {
				return fmt.Sprint(linalg.Atan2f(a[0], a[1])), nil
			},
		},
		{
			name:   "scalar.hypot",
			kind:   kindScalar,
			params: f32Params("x", "y"),
			run: func(_ context.Context, a []float32) (string, error) {
				return fmt.Sprint(linalg.Hypotf(a[0], a[1])), nil
			},
		},
		{
			name:   "scalar.exp10",
			kind:   kindScalar,
			params: f32Params("x"),
			run: func(_ context.Context, a []float32) (string, error) {
				return fmt.Sprint(linalg.Exp10f(a[0])), nil
			},
		},
	}
}

// operations returns every operation for the compiled dimensionality.
func operations(n linalg.Natives) []operation {
	return append(handleOperations(linalg.NewVectorOps(n), linalg.NewRotationOps(n)), scalarOperations()...)
}

func (o operation) signature() string {
	var params []string
	for _, p := range o.params {
		params = append(params, p.name+": "+abi.TypeName(p.witType))
	}
	return o.name + "(" + strings.Join(params, ", ") + ")"
}

// parseFloats parses a comma separated list of exactly n floats.
func parseFloats(s string, n int) ([]float32, error) {
	if n == 0 {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated values, got %q", n, s)
	}
	out := make([]float32, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func convertArg(value string, t wit.Type) (float32, error) {
	switch t.(type) {
	case wit.F32, wit.F64:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
		return float32(v), err
	case wit.S8, wit.S16, wit.S32, wit.S64:
		v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
		return float32(v), err
	case wit.U8, wit.U16, wit.U32, wit.U64:
		v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
		return float32(v), err
	default:
		return 0, fmt.Errorf("unsupported parameter type %s", abi.TypeName(t))
	}
}
