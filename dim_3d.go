//go:build !dim2

package rapier

// Dim is the dimensionality this binary was compiled for.
const Dim = 3
