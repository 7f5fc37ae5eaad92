//go:build !dim2

package linalg

import (
	"context"

	rapier "github.com/wippyai/rapier-go"
	"github.com/wippyai/rapier-go/errors"
)

// Rotation is a quaternion. It is expected to have unit norm; nothing here
// checks that.
type Rotation struct {
	X float32
	Y float32
	Z float32
	W float32
}

// RotationOps converts rotations to and from raw engine handles.
type RotationOps struct {
	natives RotationNatives
}

// NewRotationOps returns RotationOps allocating through n.
func NewRotationOps(n RotationNatives) RotationOps {
	return RotationOps{natives: n}
}

// Identity returns the quaternion {0, 0, 0, 1}.
func (RotationOps) Identity() Rotation {
	return Rotation{X: 0, Y: 0, Z: 0, W: 1}
}

// FromRaw copies raw into a new Rotation and releases raw. A nil raw yields
// a nil Rotation and no error.
func (RotationOps) FromRaw(ctx context.Context, raw RawRotation) (*Rotation, error) {
	if rapier.Absent(raw) {
		return nil, nil
	}
	return consume(ctx, raw, func(ctx context.Context) (r Rotation, err error) {
		field(ctx, &r.X, &err, raw.X)
		field(ctx, &r.Y, &err, raw.Y)
		field(ctx, &r.Z, &err, raw.Z)
		field(ctx, &r.W, &err, raw.W)
		return r, err
	})
}

// IntoRaw allocates a new raw rotation holding r. The caller owns the result.
func (o RotationOps) IntoRaw(ctx context.Context, r Rotation) (RawRotation, error) {
	if o.natives == nil {
		return nil, errors.NotInitialized(errors.PhaseAlloc, "rotation natives")
	}
	return o.natives.NewRawRotation(ctx, r.X, r.Y, r.Z, r.W)
}

// Copy overwrites every component of out with in.
func (RotationOps) Copy(out *Rotation, in Rotation) {
	out.X = in.X
	out.Y = in.Y
	out.Z = in.Z
	out.W = in.W
}
