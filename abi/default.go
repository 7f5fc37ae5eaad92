package abi

import rapier "github.com/wippyai/rapier-go"

// Default returns the layout matching the compiled dimensionality.
func Default() Layout {
	l, _ := ForDim(rapier.Dim)
	return l
}
