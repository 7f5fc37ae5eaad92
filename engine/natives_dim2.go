//go:build dim2

package engine

import (
	"context"

	"github.com/wippyai/rapier-go/linalg"
)

var _ linalg.Natives = (*Engine)(nil)

// NewRawVector allocates a guest vector.
func (e *Engine) NewRawVector(ctx context.Context, x, y float32) (linalg.RawVector, error) {
	h, err := e.alloc(ctx, e.vector, e.vector.ctor, e.vector.rec.New().Name, encodeF32s(x, y)...)
	if err != nil {
		return nil, err
	}
	return &Vector{h}, nil
}

// RawRotationFromAngle allocates a guest rotation from an angle in radians.
func (e *Engine) RawRotationFromAngle(ctx context.Context, angle float32) (linalg.RawRotation, error) {
	h, err := e.alloc(ctx, e.rotation, e.rotation.ctor, e.rotation.rec.New().Name, encodeF32s(angle)...)
	if err != nil {
		return nil, err
	}
	return &Rotation{h}, nil
}

func (v *Vector) X(ctx context.Context) (float32, error) { return v.get(ctx, 0) }
func (v *Vector) Y(ctx context.Context) (float32, error) { return v.get(ctx, 1) }

// SetX and SetY write one component in place. They return an unsupported
// error when the engine exports no setters.
func (v *Vector) SetX(ctx context.Context, x float32) error { return v.set(ctx, 0, x) }
func (v *Vector) SetY(ctx context.Context, y float32) error { return v.set(ctx, 1, y) }

// Angle returns the rotation angle in radians.
func (r *Rotation) Angle(ctx context.Context) (float32, error) { return r.get(ctx, 0) }
