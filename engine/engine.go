package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/rapier-go/abi"
	"github.com/wippyai/rapier-go/engine/guest"
	"github.com/wippyai/rapier-go/errors"
	"github.com/wippyai/rapier-go/handle"
)

// Config holds configuration for engine creation
type Config struct {
	// Name is the guest module name. Defaults to "rapier".
	Name string

	// MemoryLimitPages sets the maximum guest memory in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32

	// Checked rejects reads and releases of released handles without
	// entering the guest.
	Checked bool
}

// record holds the bound exports of one abi.Record.
type record struct {
	ctor     api.Function
	identity api.Function
	free     api.Function
	getters  []api.Function
	setters  []api.Function          // optional, nil entries when not exported
	swizzles map[string]api.Function // optional
	rec      abi.Record
	kind     handle.Kind
}

func (r *record) getter(i int) string {
	return r.rec.Getters()[i].Name
}

// Engine is an instantiated guest exposing raw handles.
type Engine struct {
	runtime  wazero.Runtime
	module   api.Module
	ledger   *handle.Ledger
	vector   *record
	rotation *record
	layout   abi.Layout
	checked  bool
	mu       sync.Mutex
	closed   bool
}

// NewReference instantiates the reference guest module.
func NewReference(ctx context.Context, cfg *Config) (*Engine, error) {
	return New(ctx, guest.Module(), cfg)
}

// New compiles and instantiates wasmBytes and binds the raw handle exports
// of the compiled dimensionality.
func New(ctx context.Context, wasmBytes []byte, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	name := cfg.Name
	if name == "" {
		name = "rapier"
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	e := &Engine{
		runtime: rt,
		ledger:  handle.NewLedger(),
		layout:  abi.Default(),
		checked: cfg.Checked,
	}

	if err := e.load(ctx, wasmBytes, name); err != nil {
		rt.Close(ctx)
		return nil, err
	}

	Logger().Debug("engine ready",
		zap.String("module", name),
		zap.Int("dim", e.layout.Dim),
		zap.Bool("checked", e.checked))
	return e, nil
}

func (e *Engine) load(ctx context.Context, wasmBytes []byte, name string) error {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return errors.Load("compile failed", err)
	}

	if err := e.provideImports(ctx, compiled); err != nil {
		return err
	}

	mod, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return errors.Load("instantiate failed", err)
	}
	e.module = mod

	var vErr, rErr error
	e.vector, vErr = bind(mod, e.layout.Vector, handle.KindVector)
	e.rotation, rErr = bind(mod, e.layout.Rotation, handle.KindRotation)
	return multierr.Combine(vErr, rErr)
}

// bind resolves every export of rec and checks its signature. All problems
// are reported together.
func bind(mod api.Module, rec abi.Record, kind handle.Kind) (*record, error) {
	var errs error
	lookup := func(s abi.Symbol) api.Function {
		fn := mod.ExportedFunction(s.Name)
		if fn == nil {
			errs = multierr.Append(errs, errors.MissingExport(errors.PhaseBind, s.Name))
			return nil
		}
		def := fn.Definition()
		if !s.Matches(def.ParamTypes(), def.ResultTypes()) {
			errs = multierr.Append(errs, errors.SignatureMismatch(s.Name, s.Signature(),
				abi.FormatSignature(def.ParamTypes(), def.ResultTypes())))
			return nil
		}
		return fn
	}

	r := &record{rec: rec, kind: kind}
	r.ctor = lookup(rec.New())
	r.identity = lookup(rec.IdentityNew())
	for _, g := range rec.Getters() {
		r.getters = append(r.getters, lookup(g))
	}
	r.free = lookup(rec.Free())

	// Optional exports may be missing but must have the right signature.
	optional := func(s abi.Symbol) api.Function {
		if mod.ExportedFunction(s.Name) == nil {
			return nil
		}
		return lookup(s)
	}
	for _, s := range rec.Setters() {
		r.setters = append(r.setters, optional(s))
	}
	for _, s := range rec.SwizzleSymbols() {
		if fn := optional(s); fn != nil {
			if r.swizzles == nil {
				r.swizzles = make(map[string]api.Function)
			}
			r.swizzles[s.Name] = fn
		}
	}

	if errs != nil {
		return nil, errs
	}
	return r, nil
}

// Layout returns the bound export layout.
func (e *Engine) Layout() abi.Layout {
	return e.layout
}

// Ledger returns the ledger tracking this engine's handles.
func (e *Engine) Ledger() *handle.Ledger {
	return e.ledger
}

// Memory returns the guest's exported memory, or nil.
func (e *Engine) Memory() api.Memory {
	return e.module.Memory()
}

// Call invokes any guest export by name. Pointers it returns can be taken
// over with AdoptVector and AdoptRotation.
func (e *Engine) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	fn := e.module.ExportedFunction(name)
	if fn == nil {
		return nil, errors.MissingExport(errors.PhaseRuntime, name)
	}
	res, err := e.invoke(ctx, fn, params...)
	if err != nil {
		return nil, errors.Trap(errors.PhaseRuntime, name, err)
	}
	return res, nil
}

// Close releases the wazero runtime. Handles still live are reported as a
// leak; they are not freed.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	stats := e.ledger.Stats()
	err := e.ledger.Close()
	if err != nil {
		Logger().Warn("engine closed with live handles",
			zap.Uint64("live", stats.Live()),
			zap.Uint64("allocated", stats.Allocated))
	}
	return multierr.Append(err, e.runtime.Close(ctx))
}

func (e *Engine) invoke(ctx context.Context, fn api.Function, params ...uint64) ([]uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "engine")
	}
	return fn.Call(ctx, params...)
}

// alloc calls a constructor and tracks the returned pointer.
func (e *Engine) alloc(ctx context.Context, r *record, fn api.Function, symbol string, params ...uint64) (*rawHandle, error) {
	res, err := e.invoke(ctx, fn, params...)
	if err != nil {
		return nil, errors.AllocationFailed(symbol, err)
	}
	ptr := api.DecodeU32(res[0])
	if ptr == 0 {
		return nil, errors.NullAllocation(symbol)
	}
	return e.adopt(r, ptr), nil
}

func (e *Engine) adopt(r *record, ptr uint32) *rawHandle {
	h := &rawHandle{e: e, r: r, ptr: ptr}
	h.id = e.ledger.Track(r.kind, uint64(ptr))
	Logger().Debug("handle allocated",
		zap.String("kind", r.kind.String()),
		zap.Uint32("ptr", ptr),
		zap.Uint64("id", uint64(h.id)))
	return h
}

func encodeF32s(vs ...float32) []uint64 {
	out := make([]uint64, len(vs))
	for i, v := range vs {
		out[i] = api.EncodeF32(v)
	}
	return out
}

// rawHandle is a guest pointer owned by the host.
type rawHandle struct {
	e   *Engine
	r   *record
	id  handle.ID
	ptr uint32
}

// Ptr returns the guest pointer.
func (h *rawHandle) Ptr() uint32 {
	return h.ptr
}

// ID returns the ledger id.
func (h *rawHandle) ID() handle.ID {
	return h.id
}

// Free releases the guest memory behind h. Call it exactly once.
func (h *rawHandle) Free(ctx context.Context) error {
	symbol := h.r.rec.Free().Name
	if err := h.e.ledger.Release(h.id); err != nil {
		h.e.violation(symbol, h, err)
		if h.e.checked {
			return err
		}
	}

	if _, err := h.e.invoke(ctx, h.r.free, uint64(h.ptr)); err != nil {
		return errors.ReleaseFailed(symbol, uint64(h.id), err)
	}

	Logger().Debug("handle released",
		zap.String("kind", h.r.kind.String()),
		zap.Uint32("ptr", h.ptr),
		zap.Uint64("id", uint64(h.id)))
	return nil
}

func (h *rawHandle) get(ctx context.Context, i int) (float32, error) {
	if err := h.e.ledger.Check(h.id); err != nil {
		h.e.violation(h.r.getter(i), h, err)
		if h.e.checked {
			return 0, err
		}
	}

	res, err := h.e.invoke(ctx, h.r.getters[i], uint64(h.ptr))
	if err != nil {
		return 0, errors.Trap(errors.PhaseRead, h.r.getter(i), err)
	}
	return api.DecodeF32(res[0]), nil
}

func (h *rawHandle) set(ctx context.Context, i int, v float32) error {
	var fn api.Function
	if i < len(h.r.setters) {
		fn = h.r.setters[i]
	}
	symbol := h.r.rec.Name + "_set_" + h.r.rec.Fields[i]
	if fn == nil {
		return errors.New(errors.PhaseRuntime, errors.KindUnsupported).
			Symbol(symbol).
			Detail("engine does not export setters").
			Build()
	}

	if err := h.e.ledger.Check(h.id); err != nil {
		h.e.violation(symbol, h, err)
		if h.e.checked {
			return err
		}
	}

	if _, err := h.e.invoke(ctx, fn, uint64(h.ptr), api.EncodeF32(v)); err != nil {
		return errors.Trap(errors.PhaseRuntime, symbol, err)
	}
	return nil
}

func (e *Engine) violation(symbol string, h *rawHandle, err error) {
	Logger().Warn("handle contract violation",
		zap.String("symbol", symbol),
		zap.Uint32("ptr", h.ptr),
		zap.Uint64("id", uint64(h.id)),
		zap.Bool("checked", e.checked),
		zap.Error(err))
}

// Vector is a raw guest vector.
type Vector struct {
	*rawHandle
}

// Rotation is a raw guest rotation.
type Rotation struct {
	*rawHandle
}

// Swizzle returns a new guest vector with the components of v reordered,
// e.g. "zyx". The caller owns the result.
func (v *Vector) Swizzle(ctx context.Context, order string) (*Vector, error) {
	symbol := v.r.rec.Name + "_" + order
	fn := v.r.swizzles[symbol]
	if fn == nil {
		return nil, errors.New(errors.PhaseRuntime, errors.KindUnsupported).
			Symbol(symbol).
			Value(order).
			Detail("swizzle not exported").
			Build()
	}

	if err := v.e.ledger.Check(v.id); err != nil {
		v.e.violation(symbol, v.rawHandle, err)
		if v.e.checked {
			return nil, err
		}
	}

	h, err := v.e.alloc(ctx, v.r, fn, symbol, uint64(v.ptr))
	if err != nil {
		return nil, err
	}
	return &Vector{h}, nil
}

// ZeroRawVector allocates the zero vector through the guest.
func (e *Engine) ZeroRawVector(ctx context.Context) (*Vector, error) {
	h, err := e.alloc(ctx, e.vector, e.vector.identity, e.vector.rec.IdentityNew().Name)
	if err != nil {
		return nil, err
	}
	return &Vector{h}, nil
}

// IdentityRawRotation allocates the identity rotation through the guest.
func (e *Engine) IdentityRawRotation(ctx context.Context) (*Rotation, error) {
	h, err := e.alloc(ctx, e.rotation, e.rotation.identity, e.rotation.rec.IdentityNew().Name)
	if err != nil {
		return nil, err
	}
	return &Rotation{h}, nil
}

// AdoptVector takes ownership of a vector pointer returned by another guest
// call. Pointer 0 yields nil.
func (e *Engine) AdoptVector(ptr uint32) *Vector {
	if ptr == 0 {
		return nil
	}
	return &Vector{e.adopt(e.vector, ptr)}
}

// AdoptRotation takes ownership of a rotation pointer returned by another
// guest call. Pointer 0 yields nil.
func (e *Engine) AdoptRotation(ptr uint32) *Rotation {
	if ptr == 0 {
		return nil
	}
	return &Rotation{e.adopt(e.rotation, ptr)}
}

func (e *Engine) String() string {
	return fmt.Sprintf("engine(dim=%d, checked=%v, live=%d)", e.layout.Dim, e.checked, e.ledger.Live())
}
