// Package linalg converts between Go vector/rotation values and the raw
// handles of a native physics engine.
//
// Values are plain structs owned by the Go heap. Raw handles are owned by the
// engine and must be released exactly once. The conversion rules are:
//
//   - FromRaw consumes its argument. The handle is read once and released
//     before FromRaw returns, on every path including failures. An absent
//     handle yields a nil value and no release.
//   - IntoRaw allocates a new handle through the engine. The caller owns it
//     and must hand it to the engine or release it.
//
// The package performs no geometric computation: no arithmetic, no
// normalization, no validation of quaternion norms.
//
// # Dimensionality
//
// Vector and Rotation have different shapes in the two build variants:
//
//	build          Vector        Rotation
//	─────────────────────────────────────────────
//	default (3D)   {X, Y, Z}     {X, Y, Z, W} quaternion
//	-tags dim2     {X, Y}        float32 angle in radians
//
// In 2D there is no RotationOps.Copy: a rotation is a bare number and is
// copied by assignment.
//
// # Scalar Math
//
// The single-precision math functions the engine binding re-exports
// (Sinf, Atan2f, Hypotf, ...) are provided as pass-throughs.
package linalg
