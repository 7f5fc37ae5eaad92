//go:build dim2

package linalg

import (
	"context"

	rapier "github.com/wippyai/rapier-go"
	"github.com/wippyai/rapier-go/errors"
)

// Rotation is an angle in radians.
type Rotation = float32

// RotationOps converts rotations to and from raw engine handles.
type RotationOps struct {
	natives RotationNatives
}

// NewRotationOps returns RotationOps allocating through n.
func NewRotationOps(n RotationNatives) RotationOps {
	return RotationOps{natives: n}
}

// Identity returns the zero angle.
func (RotationOps) Identity() Rotation {
	return 0
}

// FromRaw reads the angle of raw and releases raw. A nil raw yields a nil
// Rotation and no error.
func (RotationOps) FromRaw(ctx context.Context, raw RawRotation) (*Rotation, error) {
	if rapier.Absent(raw) {
		return nil, nil
	}
	return consume(ctx, raw, raw.Angle)
}

// IntoRaw allocates a new raw rotation from angle through the engine's
// angle constructor. The caller owns the result.
func (o RotationOps) IntoRaw(ctx context.Context, angle Rotation) (RawRotation, error) {
	if o.natives == nil {
		return nil, errors.NotInitialized(errors.PhaseAlloc, "rotation natives")
	}
	return o.natives.RawRotationFromAngle(ctx, angle)
}
