package guest

import (
	"fmt"
	"sync"

	"github.com/wippyai/rapier-go/abi"
	"github.com/wippyai/rapier-go/errors"
)

const (
	// PageSize is the size of one linear memory page.
	PageSize = 65536
	// BlockSize is the size of every allocation; it fits the largest record.
	BlockSize = 16
	// HeapBase is the first pointer handed out, keeping 0 free as the
	// absent handle.
	HeapBase = 16
	// MaxPages bounds Options.Pages.
	MaxPages = 1024

	// LiveCount is the export reporting the number of allocated blocks.
	LiveCount = "live_count"
)

// global indices
const (
	globalTop uint32 = iota
	globalFree
	globalLive
)

// Options configures a reference module.
type Options struct {
	// Pages of linear memory; 0 means 1. Memory never grows, so allocation
	// beyond Capacity(Pages) traps.
	Pages uint32
}

func (o Options) pages() uint32 {
	if o.Pages == 0 {
		return 1
	}
	return o.Pages
}

// Capacity returns how many handles a module with the given number of
// pages can hold at once.
func Capacity(pages uint32) int {
	if pages == 0 {
		pages = 1
	}
	return int((pages*PageSize - HeapBase) / BlockSize)
}

// Build generates a core module exporting every symbol of l, backed by a
// free-list allocator of BlockSize blocks.
func Build(l abi.Layout, opts Options) ([]byte, error) {
	pages := opts.pages()
	if pages > MaxPages {
		return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("guest memory of %d pages exceeds %d", pages, MaxPages))
	}
	for _, r := range l.Records() {
		if r.Size() > BlockSize {
			return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("record %s needs %d bytes, blocks hold %d", r.Name, r.Size(), BlockSize))
		}
		if len(r.Identity) != len(r.Fields) {
			return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("record %s identity has %d values for %d fields", r.Name, len(r.Identity), len(r.Fields)))
		}
	}

	m := &module{
		globals: []int32{HeapBase, 0, 0},
		pages:   pages,
	}

	alloc := m.add(allocFunc(pages))
	release := m.add(releaseFunc())
	m.add(&function{
		export: LiveCount,
		typ:    funcType{results: []valType{valI32}},
		body:   new(code).globalGet(globalLive),
	})

	for _, r := range l.Records() {
		for _, s := range r.Symbols() {
			m.add(recordFunc(r, s, alloc, release))
		}
		for _, s := range r.Optional() {
			m.add(recordFunc(r, s, alloc, release))
		}
	}

	return m.encode(), nil
}

var (
	defaultOnce sync.Once
	defaultMod  []byte
)

// Module returns the reference module for the compiled dimensionality with
// one page of memory.
func Module() []byte {
	defaultOnce.Do(func() {
		// the default layout always fits
		defaultMod, _ = Build(abi.Default(), Options{})
	})
	return defaultMod
}

// allocFunc pops the free list, or bumps the heap top when the list is
// empty. Running past the end of memory hits unreachable.
func allocFunc(pages uint32) *function {
	limit := int32(pages*PageSize - BlockSize)

	c := new(code).
		globalGet(globalFree).op(opI32Eqz).
		op(opIf, blockI32).
		globalGet(globalTop).i32Const(limit).op(opI32GtU).
		op(opIf, blockVoid).op(opUnreachable).op(opEnd).
		globalGet(globalTop).
		globalGet(globalTop).i32Const(BlockSize).op(opI32Add).globalSet(globalTop).
		op(opElse).
		globalGet(globalFree).
		globalGet(globalFree).mem(opI32Load, 0).globalSet(globalFree).
		op(opEnd).
		globalGet(globalLive).i32Const(1).op(opI32Add).globalSet(globalLive)

	return &function{
		typ:  funcType{results: []valType{valI32}},
		body: c,
	}
}

// releaseFunc pushes a block onto the free list. Pointer 0 is ignored.
func releaseFunc() *function {
	c := new(code).
		localGet(0).op(opI32Eqz).
		op(opIf, blockVoid).op(opReturn).op(opEnd).
		localGet(0).globalGet(globalFree).mem(opI32Store, 0).
		localGet(0).globalSet(globalFree).
		globalGet(globalLive).i32Const(1).op(opI32Sub).globalSet(globalLive)

	return &function{
		typ:  funcType{params: []valType{valI32}},
		body: c,
	}
}

func recordFunc(r abi.Record, s abi.Symbol, alloc, release uint32) *function {
	f := &function{export: s.Name, body: new(code)}

	switch s.Op {
	case abi.OpNew:
		n := uint32(len(r.Fields))
		f.typ = funcType{params: scalars(len(r.Fields)), results: []valType{valI32}}
		f.locals = []valType{valI32}
		f.body.call(alloc).localSet(n)
		for i := uint32(0); i < n; i++ {
			f.body.localGet(n).localGet(i).mem(opF32Store, i*4)
		}
		f.body.localGet(n)

	case abi.OpIdentity:
		f.typ = funcType{results: []valType{valI32}}
		f.locals = []valType{valI32}
		f.body.call(alloc).localSet(0)
		for i, v := range r.Identity {
			f.body.localGet(0).f32Const(v).mem(opF32Store, uint32(i)*4)
		}
		f.body.localGet(0)

	case abi.OpGet:
		f.typ = funcType{params: []valType{valI32}, results: []valType{valF32}}
		f.body.localGet(0).mem(opF32Load, uint32(s.Index)*4)

	case abi.OpFree:
		f.typ = funcType{params: []valType{valI32}}
		f.body.localGet(0).call(release)

	case abi.OpSet:
		f.typ = funcType{params: []valType{valI32, valF32}}
		f.body.localGet(0).localGet(1).mem(opF32Store, uint32(s.Index)*4)

	case abi.OpSwizzle:
		f.typ = funcType{params: []valType{valI32}, results: []valType{valI32}}
		f.locals = []valType{valI32}
		f.body.call(alloc).localSet(1)
		for i, src := range s.Perm {
			f.body.localGet(1).localGet(0).mem(opF32Load, uint32(src)*4).mem(opF32Store, uint32(i)*4)
		}
		f.body.localGet(1)
	}

	return f
}

func scalars(n int) []valType {
	out := make([]valType, n)
	for i := range out {
		out[i] = valF32
	}
	return out
}
