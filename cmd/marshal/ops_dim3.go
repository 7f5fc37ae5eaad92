//go:build !dim2

package main

import (
	"context"
	"fmt"

	"github.com/wippyai/rapier-go/linalg"
)

const (
	defaultVector   = "1,2,3"
	defaultRotation = "0,0,0,1"
)

func handleOperations(vo linalg.VectorOps, ro linalg.RotationOps) []operation {
	vector := func(ctx context.Context, v linalg.Vector) (string, error) {
		raw, err := vo.IntoRaw(ctx, v)
		if err != nil {
			return "", err
		}
		out, err := vo.FromRaw(ctx, raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%+v", *out), nil
	}
	rotation := func(ctx context.Context, r linalg.Rotation) (string, error) {
		raw, err := ro.IntoRaw(ctx, r)
		if err != nil {
			return "", err
		}
		out, err := ro.FromRaw(ctx, raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%+v", *out), nil
	}

	return []operation{
		{
			name: "vector.zeros",
			kind: kindVector,
			run: func(ctx context.Context, _ []float32) (string, error) {
				return vector(ctx, vo.Zeros())
			},
		},
		{
			name:   "vector.new",
			kind:   kindVector,
			params: f32Params("x", "y", "z"),
			run: func(ctx context.Context, a []float32) (string, error) {
				return vector(ctx, vo.New(a[0], a[1], a[2]))
			},
		},
		{
			name: "rotation.identity",
			kind: kindRotation,
			run: func(ctx context.Context, _ []float32) (string, error) {
				return rotation(ctx, ro.Identity())
			},
		},
		{
			name:   "rotation.new",
			kind:   kindRotation,
			params: f32Params("x", "y", "z", "w"),
			run: func(ctx context.Context, a []float32) (string, error) {
				return rotation(ctx, linalg.Rotation{X: a[0], Y: a[1], Z: a[2], W: a[3]})
			},
		},
	}
}
