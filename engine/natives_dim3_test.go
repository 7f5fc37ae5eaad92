//go:build !dim2

package engine

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	rerrors "github.com/wippyai/rapier-go/errors"
	"github.com/wippyai/rapier-go/linalg"
)

func TestEngine_VectorRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, true)
	ops := linalg.NewVectorOps(e)

	for _, v := range []linalg.Vector{ops.Zeros(), ops.New(1, 2, 3), ops.New(-1e10, 0.5, 3.25)} {
		raw, err := ops.IntoRaw(ctx, v)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ops.FromRaw(ctx, raw)
		if err != nil {
			t.Fatal(err)
		}
		if *got != v {
			t.Fatalf("round trip %+v gave %+v", v, *got)
		}
	}

	if n := guestLive(t, e); n != 0 {
		t.Fatalf("guest live = %d", n)
	}
	if s := e.Ledger().Stats(); s.Allocated != 3 || s.Released != 3 || s.Violations != 0 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestEngine_RotationRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, true)
	ops := linalg.NewRotationOps(e)

	q := linalg.Rotation{X: 1, Y: 2, Z: 3, W: 4}
	raw, err := ops.IntoRaw(ctx, q)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ops.FromRaw(ctx, raw)
	if err != nil {
		t.Fatal(err)
	}
	if *got != q {
		t.Fatalf("got %+v", *got)
	}

	ident, err := e.IdentityRawRotation(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got, err = ops.FromRaw(ctx, ident)
	if err != nil {
		t.Fatal(err)
	}
	if *got != ops.Identity() {
		t.Fatalf("guest identity %+v differs from Identity()", *got)
	}
}

func TestEngine_FromRawSecondReleaseRejected(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, true)
	ops := linalg.NewVectorOps(e)

	raw, err := ops.IntoRaw(ctx, ops.New(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ops.FromRaw(ctx, raw); err != nil {
		t.Fatal(err)
	}
	if _, err := ops.FromRaw(ctx, raw); err == nil {
		t.Fatal("consuming a handle twice should fail in checked mode")
	}
	if n := guestLive(t, e); n != 0 {
		t.Fatalf("guest live = %d", n)
	}
}

func TestEngine_Concurrent(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, true)
	ops := linalg.NewVectorOps(e)

	var g errgroup.Group
	for n := 0; n < 8; n++ {
		g.Go(func() error {
			for i := 0; i < 50; i++ {
				v := ops.New(float32(n), float32(i), 1)
				raw, err := ops.IntoRaw(ctx, v)
				if err != nil {
					return err
				}
				got, err := ops.FromRaw(ctx, raw)
				if err != nil {
					return err
				}
				if *got != v {
					return fmt.Errorf("goroutine %d: %+v != %+v", n, *got, v)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if e.Ledger().Live() != 0 {
		t.Fatalf("live = %d", e.Ledger().Live())
	}
}

func TestEngine_SettersAndSwizzle(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, true)
	ops := linalg.NewVectorOps(e)

	raw, err := e.NewRawVector(ctx, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	v := raw.(*Vector)
	if err := v.SetX(ctx, 10); err != nil {
		t.Fatal(err)
	}
	if err := v.SetZ(ctx, 30); err != nil {
		t.Fatal(err)
	}

	sw, err := v.Swizzle(ctx, "zyx")
	if err != nil {
		t.Fatal(err)
	}
	if sw.ID() == v.ID() {
		t.Fatal("swizzle reused the source handle")
	}

	got, err := ops.FromRaw(ctx, sw)
	if err != nil {
		t.Fatal(err)
	}
	if want := (linalg.Vector{X: 30, Y: 2, Z: 10}); *got != want {
		t.Fatalf("zyx = %+v, want %+v", *got, want)
	}

	if _, err := v.Swizzle(ctx, "xxy"); kindOf(err) != rerrors.KindUnsupported {
		t.Fatalf("expected unsupported swizzle, got %v", err)
	}

	orig, err := ops.FromRaw(ctx, v)
	if err != nil {
		t.Fatal(err)
	}
	if want := (linalg.Vector{X: 10, Y: 2, Z: 30}); *orig != want {
		t.Fatalf("source = %+v, want %+v", *orig, want)
	}

	if err := v.SetY(ctx, 1); kindOf(err) != rerrors.KindUseAfterFree {
		t.Fatalf("expected use after free, got %v", err)
	}
	if _, err := v.Swizzle(ctx, "xyz"); kindOf(err) != rerrors.KindUseAfterFree {
		t.Fatalf("expected use after free, got %v", err)
	}
	if n := guestLive(t, e); n != 0 {
		t.Fatalf("guest live = %d", n)
	}
}
