//go:build !((darwin || freebsd || linux || netbsd) && !android)

package dylib

import "github.com/wippyai/rapier-go/errors"

func openLibrary(string) (uintptr, error) {
	return 0, errors.Unsupported(errors.PhaseLoad, "shared library loading on this platform")
}

func lookupSymbol(uintptr, string) (uintptr, error) {
	return 0, errors.Unsupported(errors.PhaseBind, "symbol lookup on this platform")
}

func registerFunc(any, uintptr) {}

func closeLibrary(uintptr) error {
	return nil
}
