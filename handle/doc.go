// Package handle tracks the lifecycle of raw handles allocated by a native
// engine.
//
// Raw handles are not collected by the Go garbage collector. Each one must
// be released exactly once, and must not be read after that. A Ledger
// records every allocation under a fresh ID and flags the three ways the
// contract can be broken:
//
//	double release    Release on an ID already released
//	use after free    Check on an ID already released
//	leak              IDs still live when the ledger is closed
//
// Native adapters call Track when the engine returns a new handle, Check
// before reading it and Release before freeing it:
//
//	ledger := handle.NewLedger()
//	id := ledger.Track(handle.KindVector, ptr)
//	if err := ledger.Check(id); err != nil {
//	    return err // read after release
//	}
//	if err := ledger.Release(id); err != nil {
//	    return err // double release, do not call the native free
//	}
//
// IDs are never reused, even when the engine reuses the underlying memory,
// so a stale handle is detected after its address has been reallocated.
//
// # Observers
//
// Observers receive an Event for every allocation, release and violation:
//
//	unsubscribe := ledger.Subscribe(obs)
//	defer unsubscribe()
//
// Observers run synchronously on the goroutine that triggered the event.
package handle
