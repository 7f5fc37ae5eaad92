//go:build dim2

package linalg

import (
	"context"

	rapier "github.com/wippyai/rapier-go"
)

// RawVector is a vector allocated by the native engine.
type RawVector interface {
	rapier.Releaser
	X(ctx context.Context) (float32, error)
	Y(ctx context.Context) (float32, error)
}

// RawRotation is a rotation allocated by the native engine. In 2D the
// engine stores it as a unit complex number; only the angle crosses the
// boundary.
type RawRotation interface {
	rapier.Releaser
	Angle(ctx context.Context) (float32, error)
}

// VectorNatives allocates raw vectors.
type VectorNatives interface {
	NewRawVector(ctx context.Context, x, y float32) (RawVector, error)
}

// RotationNatives allocates raw rotations from an angle in radians.
type RotationNatives interface {
	RawRotationFromAngle(ctx context.Context, angle float32) (RawRotation, error)
}

// Natives is the allocation surface of a native engine.
type Natives interface {
	VectorNatives
	RotationNatives
}
