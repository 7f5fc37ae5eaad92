//go:build dim2

package nativetest

import (
	"context"

	"github.com/wippyai/rapier-go/handle"
	"github.com/wippyai/rapier-go/linalg"
)

var _ linalg.Natives = (*Natives)(nil)

// NewRawVector records the call and allocates a fake vector.
func (n *Natives) NewRawVector(ctx context.Context, x, y float32) (linalg.RawVector, error) {
	if err := n.record("NewRawVector", x, y); err != nil {
		return nil, err
	}
	return n.MakeVector(x, y), nil
}

// RawRotationFromAngle records the call and allocates a fake rotation.
func (n *Natives) RawRotationFromAngle(ctx context.Context, angle float32) (linalg.RawRotation, error) {
	if err := n.record("RawRotationFromAngle", angle); err != nil {
		return nil, err
	}
	return n.MakeRotation(angle), nil
}

// MakeVector allocates a fake vector without recording a constructor call,
// as if the engine had returned it from some other operation.
func (n *Natives) MakeVector(x, y float32) *Vector {
	return &Vector{n.alloc(handle.KindVector, []float32{x, y})}
}

// MakeRotation allocates a fake rotation without recording a call.
func (n *Natives) MakeRotation(angle float32) *Rotation {
	return &Rotation{n.alloc(handle.KindRotation, []float32{angle})}
}

// Angle returns the rotation angle in radians.
func (r *Rotation) Angle(ctx context.Context) (float32, error) { return r.get(0) }
