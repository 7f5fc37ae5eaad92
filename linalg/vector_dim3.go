//go:build !dim2

package linalg

import (
	"context"

	rapier "github.com/wippyai/rapier-go"
	"github.com/wippyai/rapier-go/errors"
)

// Vector is a 3D vector.
type Vector struct {
	X float32
	Y float32
	Z float32
}

// VectorOps converts vectors to and from raw engine handles.
type VectorOps struct {
	natives VectorNatives
}

// NewVectorOps returns VectorOps allocating through n.
func NewVectorOps(n VectorNatives) VectorOps {
	return VectorOps{natives: n}
}

// New returns the vector {x, y, z}.
func (VectorOps) New(x, y, z float32) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Zeros returns the zero vector.
func (o VectorOps) Zeros() Vector {
	return o.New(0, 0, 0)
}

// FromRaw copies raw into a new Vector and releases raw. A nil raw yields a
// nil Vector and no error.
func (VectorOps) FromRaw(ctx context.Context, raw RawVector) (*Vector, error) {
	if rapier.Absent(raw) {
		return nil, nil
	}
	return consume(ctx, raw, func(ctx context.Context) (v Vector, err error) {
		field(ctx, &v.X, &err, raw.X)
		field(ctx, &v.Y, &err, raw.Y)
		field(ctx, &v.Z, &err, raw.Z)
		return v, err
	})
}

// IntoRaw allocates a new raw vector holding v. The caller owns the result.
func (o VectorOps) IntoRaw(ctx context.Context, v Vector) (RawVector, error) {
	if o.natives == nil {
		return nil, errors.NotInitialized(errors.PhaseAlloc, "vector natives")
	}
	return o.natives.NewRawVector(ctx, v.X, v.Y, v.Z)
}

// Copy overwrites every component of out with in.
func (VectorOps) Copy(out *Vector, in Vector) {
	out.X = in.X
	out.Y = in.Y
	out.Z = in.Z
}
