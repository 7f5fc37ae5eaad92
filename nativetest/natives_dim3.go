//go:build !dim2

package nativetest

import (
	"context"

	"github.com/wippyai/rapier-go/handle"
	"github.com/wippyai/rapier-go/linalg"
)

var _ linalg.Natives = (*Natives)(nil)

// NewRawVector records the call and allocates a fake vector.
func (n *Natives) NewRawVector(ctx context.Context, x, y, z float32) (linalg.RawVector, error) {
	if err := n.record("NewRawVector", x, y, z); err != nil {
		return nil, err
	}
	return n.MakeVector(x, y, z), nil
}

// NewRawRotation records the call and allocates a fake quaternion.
func (n *Natives) NewRawRotation(ctx context.Context, x, y, z, w float32) (linalg.RawRotation, error) {
	if err := n.record("NewRawRotation", x, y, z, w); err != nil {
		return nil, err
	}
	return n.MakeRotation(x, y, z, w), nil
}

// MakeVector allocates a fake vector without recording a constructor call,
// as if the engine had returned it from some other operation.
func (n *Natives) MakeVector(x, y, z float32) *Vector {
	return &Vector{n.alloc(handle.KindVector, []float32{x, y, z})}
}

// MakeRotation allocates a fake quaternion without recording a call.
func (n *Natives) MakeRotation(x, y, z, w float32) *Rotation {
	return &Rotation{n.alloc(handle.KindRotation, []float32{x, y, z, w})}
}

// Z returns the third component.
func (v *Vector) Z(ctx context.Context) (float32, error) { return v.get(2) }

// X returns the i component.
func (r *Rotation) X(ctx context.Context) (float32, error) { return r.get(0) }

// Y returns the j component.
func (r *Rotation) Y(ctx context.Context) (float32, error) { return r.get(1) }

// Z returns the k component.
func (r *Rotation) Z(ctx context.Context) (float32, error) { return r.get(2) }

// W returns the real component.
func (r *Rotation) W(ctx context.Context) (float32, error) { return r.get(3) }
