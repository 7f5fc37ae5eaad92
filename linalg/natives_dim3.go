//go:build !dim2

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
	Z(ctx context.Context) (float32, error)
}

// RawRotation is a unit quaternion allocated by the native engine.
type RawRotation interface {
	rapier.Releaser
	X(ctx context.Context) (float32, error)
	Y(ctx context.Context) (float32, error)
	Z(ctx context.Context) (float32, error)
	W(ctx context.Context) (float32, error)
}

// VectorNatives allocates raw vectors.
type VectorNatives interface {
	NewRawVector(ctx context.Context, x, y, z float32) (RawVector, error)
}

// RotationNatives allocates raw rotations.
type RotationNatives interface {
	NewRawRotation(ctx context.Context, x, y, z, w float32) (RawRotation, error)
}

// Natives is the allocation surface of a native engine.
type Natives interface {
	VectorNatives
	RotationNatives
}
