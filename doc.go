// Package rapier is the marshalling boundary between Go and a natively
// compiled physics engine that manages its own memory.
//
// The engine hands out vectors and rotations as raw handles: allocations
// that live outside the Go heap and must be released explicitly, exactly
// once. This module converts those handles to plain Go values and back,
// transferring ownership on each conversion.
//
// # Architecture Overview
//
//	rapier/           Root package: Releaser contract, Dim, Release helper
//	├── linalg/       Vector and Rotation values, VectorOps, RotationOps, f32 math
//	├── abi/          Native symbol names and signatures of the raw-handle contract
//	├── handle/       Live-handle ledger (leak, double release, use after free)
//	├── engine/       wazero-backed native layer (engine compiled to wasm)
//	│   └── guest/    Reference guest module implementing the contract
//	├── dylib/        purego-backed native layer (engine as a shared library)
//	├── nativetest/   Release-counting test double
//	├── config/       YAML configuration and logger setup
//	└── errors/       Structured error types
//
// # Dimensionality
//
// The 2D and 3D variants are selected at build time. Builds are 3D by
// default; pass -tags dim2 for the 2D variant. The two never coexist in one
// binary.
//
// # Ownership
//
// Every conversion from a raw handle consumes it:
//
//	v, err := vectors.FromRaw(ctx, raw) // raw is released, do not touch it again
//
// Every conversion into a raw handle produces a new allocation owned by the
// caller, who either passes it to the engine or releases it:
//
//	raw, err := vectors.IntoRaw(ctx, v)
//	if err != nil {
//	    return err
//	}
//	defer rapier.Release(ctx, raw)
//
// # Thread Safety
//
// Conversions are synchronous and hold no state. Raw handles belong to the
// goroutine that received them and must not be shared.
package rapier
