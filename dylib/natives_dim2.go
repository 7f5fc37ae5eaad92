//go:build dim2

package dylib

import (
	"context"

	"github.com/wippyai/rapier-go/abi"
	"github.com/wippyai/rapier-go/linalg"
)

var _ linalg.Natives = (*Library)(nil)

type ctors struct {
	newVector   func(x, y float32) uintptr
	newRotation func(angle float32) uintptr
}

func (c *ctors) bind(b *binder, l abi.Layout) {
	b.fn(&c.newVector, l.Vector.New())
	b.fn(&c.newRotation, l.Rotation.New())
}

// NewRawVector allocates a native vector.
func (l *Library) NewRawVector(ctx context.Context, x, y float32) (linalg.RawVector, error) {
	h, err := l.alloc(l.vector, l.vector.rec.New().Name, func() uintptr {
		return l.ctors.newVector(x, y)
	})
	if err != nil {
		return nil, err
	}
	return &Vector{h}, nil
}

// RawRotationFromAngle allocates a native rotation from an angle in radians.
func (l *Library) RawRotationFromAngle(ctx context.Context, angle float32) (linalg.RawRotation, error) {
	h, err := l.alloc(l.rotation, l.rotation.rec.New().Name, func() uintptr {
		return l.ctors.newRotation(angle)
	})
	if err != nil {
		return nil, err
	}
	return &Rotation{h}, nil
}

func (v *Vector) X(ctx context.Context) (float32, error) { return v.get(0) }
func (v *Vector) Y(ctx context.Context) (float32, error) { return v.get(1) }

// Angle returns the rotation angle in radians.
func (r *Rotation) Angle(ctx context.Context) (float32, error) { return r.get(0) }
