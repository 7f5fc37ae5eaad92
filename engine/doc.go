// Package engine runs a WebAssembly build of the physics engine with wazero
// and exposes its raw vector and rotation handles as linalg natives.
//
// Handles are guest pointers. Every allocation is recorded in a
// handle.Ledger; Close reports handles that were never released.
//
//	e, err := engine.NewReference(ctx, &engine.Config{Checked: true})
//	if err != nil {
//		return err
//	}
//	defer e.Close(ctx)
//
//	ops := linalg.NewVectorOps(e)
//	raw, err := ops.IntoRaw(ctx, ops.New(1, 2, 3))
//
// With Config.Checked set, a handle that was already released is rejected
// before the guest is entered, so a double release cannot corrupt the
// guest allocator. Without it the violation is logged and recorded in the
// ledger, and the call proceeds.
//
// Guest calls are serialized; an Engine may be shared between goroutines.
package engine
