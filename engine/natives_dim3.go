//go:build !dim2

package engine

import (
	"context"

	"github.com/wippyai/rapier-go/linalg"
)

var _ linalg.Natives = (*Engine)(nil)

// NewRawVector allocates a guest vector.
func (e *Engine) NewRawVector(ctx context.Context, x, y, z float32) (linalg.RawVector, error) {
	h, err := e.alloc(ctx, e.vector, e.vector.ctor, e.vector.rec.New().Name, encodeF32s(x, y, z)...)
	if err != nil {
		return nil, err
	}
	return &Vector{h}, nil
}

// NewRawRotation allocates a guest quaternion.
func (e *Engine) NewRawRotation(ctx context.Context, x, y, z, w float32) (linalg.RawRotation, error) {
	h, err := e.alloc(ctx, e.rotation, e.rotation.ctor, e.rotation.rec.New().Name, encodeF32s(x, y, z, w)...)
	if err != nil {
		return nil, err
	}
	return &Rotation{h}, nil
}

func (v *Vector) X(ctx context.Context) (float32, error) { return v.get(ctx, 0) }
func (v *Vector) Y(ctx context.Context) (float32, error) { return v.get(ctx, 1) }
func (v *Vector) Z(ctx context.Context) (float32, error) { return v.get(ctx, 2) }

// SetX, SetY and SetZ write one component in place. They return an
// unsupported error when the engine exports no setters.
func (v *Vector) SetX(ctx context.Context, x float32) error { return v.set(ctx, 0, x) }
func (v *Vector) SetY(ctx context.Context, y float32) error { return v.set(ctx, 1, y) }
func (v *Vector) SetZ(ctx context.Context, z float32) error { return v.set(ctx, 2, z) }

func (r *Rotation) X(ctx context.Context) (float32, error) { return r.get(ctx, 0) }
func (r *Rotation) Y(ctx context.Context) (float32, error) { return r.get(ctx, 1) }
func (r *Rotation) Z(ctx context.Context) (float32, error) { return r.get(ctx, 2) }
func (r *Rotation) W(ctx context.Context) (float32, error) { return r.get(ctx, 3) }
