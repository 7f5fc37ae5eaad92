package rapier

import (
	"context"
	"reflect"
)

// Releaser is implemented by every raw handle handed out by a native engine.
// Free must be called exactly once per handle; the handle must not be used
// afterwards.
type Releaser interface {
	Free(ctx context.Context) error
}

// Absent reports whether h is the absent handle: a nil interface or a nil
// pointer stored in one.
func Absent(h any) bool {
	if h == nil {
		return true
	}
	rv := reflect.ValueOf(h)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Release frees h unless it is absent. Use it to abandon a handle produced by
// an IntoRaw conversion that will not be passed to the engine.
func Release(ctx context.Context, h Releaser) error {
	if Absent(h) {
		return nil
	}
	return h.Free(ctx)
}
