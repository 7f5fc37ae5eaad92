//go:build dim2

package main

import (
	"context"
	"fmt"

	"github.com/wippyai/rapier-go/linalg"
)

const (
	defaultVector   = "1,2"
	defaultRotation = "0"
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
		return fmt.Sprint(*out), nil
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
			params: f32Params("x", "y"),
			run: func(ctx context.Context, a []float32) (string, error) {
				return vector(ctx, vo.New(a[0], a[1]))
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
			name:   "rotation.fromAngle",
			kind:   kindRotation,
			params: f32Params("angle"),
			run: func(ctx context.Context, a []float32) (string, error) {
				return rotation(ctx, a[0])
			},
		},
	}
}
