package dylib

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/rapier-go/abi"
	"github.com/wippyai/rapier-go/errors"
	"github.com/wippyai/rapier-go/handle"
)

// Config holds configuration for loading a library
type Config struct {
	// Checked rejects reads and releases of released handles without
	// calling into the library. Native code cannot trap, so an unchecked
	// double release usually crashes the process.
	Checked bool
}

// record holds the bound symbols of one abi.Record, apart from its value
// constructor whose arity depends on the dimensionality.
type record struct {
	identity func() uintptr
	free     func(uintptr)
	getters  []func(uintptr) float32
	rec      abi.Record
	kind     handle.Kind
}

// Library is a loaded engine shared library.
type Library struct {
	ledger   *handle.Ledger
	logger   *zap.Logger
	vector   *record
	rotation *record
	ctors    ctors
	path     string
	layout   abi.Layout
	lib      uintptr
	checked  bool
	mu       sync.Mutex
	closed   bool
}

// Open loads the library at path and binds every abi symbol of the
// compiled dimensionality.
func Open(path string, cfg *Config) (*Library, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	lib, err := openLibrary(path)
	if err != nil {
		return nil, errors.Load("open "+path, err)
	}

	l := &Library{
		ledger:  handle.NewLedger(),
		logger:  Logger().With(zap.String("library", path)),
		path:    path,
		layout:  abi.Default(),
		lib:     lib,
		checked: cfg.Checked,
	}

	b := &binder{lib: lib}
	l.vector = b.record(l.layout.Vector, handle.KindVector)
	l.rotation = b.record(l.layout.Rotation, handle.KindRotation)
	l.ctors.bind(b, l.layout)
	if b.errs != nil {
		return nil, multierr.Append(b.errs, closeLibrary(lib))
	}

	l.logger.Debug("library loaded", zap.Int("dim", l.layout.Dim))
	return l, nil
}

// Path returns the path the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

// Layout returns the bound export layout.
func (l *Library) Layout() abi.Layout {
	return l.layout
}

// Ledger returns the ledger tracking this library's handles.
func (l *Library) Ledger() *handle.Ledger {
	return l.ledger
}

// Close unloads the library. Handles still live are reported as a leak.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	err := l.ledger.Close()
	if l.lib != 0 {
		err = multierr.Append(err, closeLibrary(l.lib))
	}
	return err
}

// ZeroRawVector allocates the zero vector through the library.
func (l *Library) ZeroRawVector(ctx context.Context) (*Vector, error) {
	h, err := l.alloc(l.vector, l.vector.rec.IdentityNew().Name, l.vector.identity)
	if err != nil {
		return nil, err
	}
	return &Vector{h}, nil
}

// IdentityRawRotation allocates the identity rotation through the library.
func (l *Library) IdentityRawRotation(ctx context.Context) (*Rotation, error) {
	h, err := l.alloc(l.rotation, l.rotation.rec.IdentityNew().Name, l.rotation.identity)
	if err != nil {
		return nil, err
	}
	return &Rotation{h}, nil
}

// AdoptVector takes ownership of a vector pointer returned by the library.
// Pointer 0 yields nil.
func (l *Library) AdoptVector(ptr uintptr) *Vector {
	if ptr == 0 {
		return nil
	}
	return &Vector{l.track(l.vector, ptr)}
}

// AdoptRotation takes ownership of a rotation pointer returned by the
// library. Pointer 0 yields nil.
func (l *Library) AdoptRotation(ptr uintptr) *Rotation {
	if ptr == 0 {
		return nil
	}
	return &Rotation{l.track(l.rotation, ptr)}
}

func (l *Library) alloc(r *record, symbol string, call func() uintptr) (*rawHandle, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, errors.AllocationFailed(symbol, errors.NotInitialized(errors.PhaseAlloc, "library"))
	}
	ptr := call()
	l.mu.Unlock()

	if ptr == 0 {
		return nil, errors.NullAllocation(symbol)
	}
	return l.track(r, ptr), nil
}

func (l *Library) track(r *record, ptr uintptr) *rawHandle {
	h := &rawHandle{l: l, r: r, ptr: ptr}
	h.id = l.ledger.Track(r.kind, uint64(ptr))
	l.logger.Debug("handle allocated",
		zap.String("kind", r.kind.String()),
		zap.Uintptr("ptr", ptr),
		zap.Uint64("id", uint64(h.id)))
	return h
}

// guard logs a ledger violation. In checked mode the violation is returned
// and the native call must not happen.
func (l *Library) guard(symbol string, h *rawHandle, err error) error {
	if err == nil {
		return nil
	}
	l.logger.Warn("handle contract violation",
		zap.String("symbol", symbol),
		zap.Uintptr("ptr", h.ptr),
		zap.Uint64("id", uint64(h.id)),
		zap.Error(err))
	if l.checked {
		return err
	}
	return nil
}

// binder resolves symbols, collecting every failure.
type binder struct {
	errs error
	lib  uintptr
}

func (b *binder) fn(fptr any, s abi.Symbol) {
	addr, err := lookupSymbol(b.lib, s.Name)
	if err != nil || addr == 0 {
		b.errs = multierr.Append(b.errs, errors.New(errors.PhaseBind, errors.KindMissingExport).
			Symbol(s.Name).
			Detail("symbol not exported by native engine").
			Cause(err).
			Build())
		return
	}
	registerFunc(fptr, addr)
}

func (b *binder) record(rec abi.Record, kind handle.Kind) *record {
	r := &record{rec: rec, kind: kind}
	b.fn(&r.identity, rec.IdentityNew())
	for _, g := range rec.Getters() {
		var get func(uintptr) float32
		b.fn(&get, g)
		r.getters = append(r.getters, get)
	}
	b.fn(&r.free, rec.Free())
	return r
}

// rawHandle is a native pointer owned by the host.
type rawHandle struct {
	l   *Library
	r   *record
	id  handle.ID
	ptr uintptr
}

// Ptr returns the native pointer.
func (h *rawHandle) Ptr() uintptr {
	return h.ptr
}

// ID returns the ledger id.
func (h *rawHandle) ID() handle.ID {
	return h.id
}

// Free releases the native memory behind h. Call it exactly once.
func (h *rawHandle) Free(ctx context.Context) error {
	symbol := h.r.rec.Free().Name
	if err := h.l.guard(symbol, h, h.l.ledger.Release(h.id)); err != nil {
		return err
	}

	h.l.mu.Lock()
	defer h.l.mu.Unlock()
	if h.l.closed {
		return errors.ReleaseFailed(symbol, uint64(h.id), errors.NotInitialized(errors.PhaseRelease, "library"))
	}
	h.r.free(h.ptr)

	h.l.logger.Debug("handle released", zap.Uintptr("ptr", h.ptr), zap.Uint64("id", uint64(h.id)))
	return nil
}

func (h *rawHandle) get(i int) (float32, error) {
	symbol := h.r.rec.Getters()[i].Name
	if err := h.l.guard(symbol, h, h.l.ledger.Check(h.id)); err != nil {
		return 0, err
	}

	h.l.mu.Lock()
	defer h.l.mu.Unlock()
	if h.l.closed {
		return 0, errors.NotInitialized(errors.PhaseRead, "library")
	}
	return h.r.getters[i](h.ptr), nil
}

// Vector is a raw native vector.
type Vector struct {
	*rawHandle
}

// Rotation is a raw native rotation.
type Rotation struct {
	*rawHandle
}
