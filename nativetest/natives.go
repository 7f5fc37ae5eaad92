package nativetest

import (
	"context"
	"sync"

	"github.com/wippyai/rapier-go/handle"
)

// Call is one recorded constructor call.
type Call struct {
	Name string
	Args []float32
}

// Natives is a fake native engine.
type Natives struct {
	// FailAlloc, when set, is returned by every constructor.
	FailAlloc error
	// FailFree, when set, is returned by Free after the handle is marked
	// released.
	FailFree error
	// FailRead, when set, is returned by every field getter.
	FailRead error

	ledger     *handle.Ledger
	calls      []Call
	handles    []*Handle
	violations []error
	mu         sync.Mutex
}

// New returns an empty fake engine.
func New() *Natives {
	n := &Natives{ledger: handle.NewLedger()}
	n.ledger.Subscribe(n)
	return n
}

// OnHandleEvent records ledger violations.
func (n *Natives) OnHandleEvent(e handle.Event) {
	if e.Type != handle.EventViolation {
		return
	}
	n.mu.Lock()
	n.violations = append(n.violations, e.Err)
	n.mu.Unlock()
}

// Calls returns the constructor calls made so far, in order.
func (n *Natives) Calls() []Call {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Call, len(n.calls))
	copy(out, n.calls)
	return out
}

// Violations returns every contract violation observed so far.
func (n *Natives) Violations() []error {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]error, len(n.violations))
	copy(out, n.violations)
	return out
}

// Handles returns every handle created so far, in order.
func (n *Natives) Handles() []*Handle {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Handle, len(n.handles))
	copy(out, n.handles)
	return out
}

// Live returns the number of handles not yet released.
func (n *Natives) Live() int {
	return n.ledger.Live()
}

// Ledger returns the ledger tracking this engine's handles.
func (n *Natives) Ledger() *handle.Ledger {
	return n.ledger
}

func (n *Natives) record(name string, args ...float32) error {
	n.mu.Lock()
	n.calls = append(n.calls, Call{Name: name, Args: args})
	n.mu.Unlock()
	return n.FailAlloc
}

func (n *Natives) alloc(kind handle.Kind, fields []float32) *Handle {
	h := &Handle{
		n:      n,
		kind:   kind,
		fields: append([]float32(nil), fields...),
	}

	n.mu.Lock()
	n.handles = append(n.handles, h)
	rep := uint64(len(n.handles))
	n.mu.Unlock()

	h.id = n.ledger.Track(kind, rep)
	return h
}

// Handle is the state shared by fake vectors and rotations.
type Handle struct {
	n      *Natives
	fields []float32
	id     handle.ID
	frees  int
	reads  int
	kind   handle.Kind
	mu     sync.Mutex
}

// ID returns the ledger id of h.
func (h *Handle) ID() handle.ID {
	return h.id
}

// Kind reports whether h is a vector or a rotation.
func (h *Handle) Kind() handle.Kind {
	return h.kind
}

// Frees returns how many times Free was called on h.
func (h *Handle) Frees() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frees
}

// Reads returns how many field reads reached h.
func (h *Handle) Reads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reads
}

// Free releases h. A second call is a violation.
func (h *Handle) Free(ctx context.Context) error {
	h.mu.Lock()
	h.frees++
	h.mu.Unlock()

	if err := h.n.ledger.Release(h.id); err != nil {
		return err
	}
	return h.n.FailFree
}

func (h *Handle) get(i int) (float32, error) {
	if err := h.n.ledger.Check(h.id); err != nil {
		return 0, err
	}
	if h.n.FailRead != nil {
		return 0, h.n.FailRead
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads++
	return h.fields[i], nil
}

// Vector is a fake raw vector.
type Vector struct {
	*Handle
}

// X returns the first component.
func (v *Vector) X(ctx context.Context) (float32, error) { return v.get(0) }

// Y returns the second component.
func (v *Vector) Y(ctx context.Context) (float32, error) { return v.get(1) }

// Rotation is a fake raw rotation.
type Rotation struct {
	*Handle
}
