package linalg

import (
	"context"

	"go.uber.org/multierr"

	rapier "github.com/wippyai/rapier-go"
)

// consume reads a value out of raw and releases raw exactly once, whatever
// read does. A release failure discards the value.
func consume[T any](ctx context.Context, raw rapier.Releaser, read func(context.Context) (T, error)) (out *T, err error) {
	defer func() {
		if ferr := raw.Free(ctx); ferr != nil {
			out, err = nil, multierr.Append(err, ferr)
		}
	}()

	v, err := read(ctx)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// field reads one component into dst, keeping the first error seen.
func field(ctx context.Context, dst *float32, err *error, get func(context.Context) (float32, error)) {
	if *err != nil {
		return
	}
	*dst, *err = get(ctx)
}
