// Package dylib loads a natively compiled build of the physics engine as a
// shared library and exposes its raw handles as linalg natives.
//
// Symbols are resolved with purego, so no cgo toolchain is needed. The
// library must export the abi symbols with the C calling convention:
// constructors take float arguments and return a pointer, getters take a
// pointer and return a float, destructors take a pointer.
//
//	lib, err := dylib.Open("librapier3d.so", &dylib.Config{Checked: true})
//	if err != nil {
//		return err
//	}
//	defer lib.Close()
//
// Loading is supported on the platforms purego can dlopen on (Linux,
// macOS, FreeBSD, NetBSD). Elsewhere Open returns an unsupported error.
package dylib
