//go:build !dim2

package dylib

import (
	"context"

	"github.com/wippyai/rapier-go/abi"
	"github.com/wippyai/rapier-go/linalg"
)

var _ linalg.Natives = (*Library)(nil)

type ctors struct {
	newVector   func(x, y, z float32) uintptr
	newRotation func(x, y, z, w float32) uintptr
}

func (c *ctors) bind(b *binder, l abi.Layout) {
	b.fn(&c.newVector, l.Vector.New())
	b.fn(&c.newRotation, l.Rotation.New())
}

// NewRawVector allocates a native vector.
func (l *Library) NewRawVector(ctx context.Context, x, y, z float32) (linalg.RawVector, error) {
	h, err := l.alloc(l.vector, l.vector.rec.New().Name, func() uintptr {
		return l.ctors.newVector(x, y, z)
	})
	if err != nil {
		return nil, err
	}
	return &Vector{h}, nil
}

// NewRawRotation allocates a native quaternion.
func (l *Library) NewRawRotation(ctx context.Context, x, y, z, w float32) (linalg.RawRotation, error) {
	h, err := l.alloc(l.rotation, l.rotation.rec.New().Name, func() uintptr {
		return l.ctors.newRotation(x, y, z, w)
	})
	if err != nil {
		return nil, err
	}
	return &Rotation{h}, nil
}

func (v *Vector) X(ctx context.Context) (float32, error) { return v.get(0) }
func (v *Vector) Y(ctx context.Context) (float32, error) { return v.get(1) }
func (v *Vector) Z(ctx context.Context) (float32, error) { return v.get(2) }

func (r *Rotation) X(ctx context.Context) (float32, error) { return r.get(0) }
func (r *Rotation) Y(ctx context.Context) (float32, error) { return r.get(1) }
func (r *Rotation) Z(ctx context.Context) (float32, error) { return r.get(2) }
func (r *Rotation) W(ctx context.Context) (float32, error) { return r.get(3) }
