// Package nativetest provides a release-counting stand-in for a native
// engine, for use in tests of code that converts raw handles.
//
// Natives implements linalg.Natives. Every constructor call is recorded,
// every handle counts its Free calls, and the two illegal transitions of a
// handle (read after release, release after release) are recorded as
// violations and returned as errors:
//
//	n := nativetest.New()
//	ops := linalg.NewVectorOps(n)
//
//	raw := n.MakeVector(1, 2, 3) // as if returned by the engine
//	v, err := ops.FromRaw(ctx, raw)
//
//	if raw.Frees() != 1 || len(n.Violations()) != 0 {
//	    t.Fatal("handle not released exactly once")
//	}
//
// Failures of the native layer are injected with FailAlloc, FailFree and
// FailRead.
package nativetest
