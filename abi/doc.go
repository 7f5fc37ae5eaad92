// Package abi describes the raw handle exports a native engine provides.
//
// Symbols follow the wasm-bindgen naming of the engine's JavaScript
// binding: a record "rawvector" exports a constructor rawvector_new, one
// getter per field (rawvector_x, rawvector_y, ...), an identity
// constructor (rawvector_zero) and a destructor __wbg_rawvector_free.
// Handles are 32-bit guest pointers; pointer 0 is the absent handle.
//
// The same symbol set is bound by the wazero engine and the dylib loader,
// and emitted by the reference guest module.
//
//	l := abi.Default()
//	for _, s := range l.Symbols() {
//		fmt.Println(s)
//	}
package abi
