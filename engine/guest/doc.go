// Package guest builds a reference engine module: a small core wasm
// binary exporting the raw vector and rotation symbols of an abi.Layout.
//
// Handles are 16-byte blocks of linear memory handed out by a free-list
// allocator; pointer 0 is never allocated. The module exports live_count so
// tests can check that every handle was released. It does not guard
// against double release: freeing a block twice corrupts its free list,
// which is the failure the engine's checked mode exists to prevent.
package guest
