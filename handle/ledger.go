package handle

import (
	"sort"
	"sync"

	"github.com/wippyai/rapier-go/errors"
)

// Ledger records every raw handle a native adapter hands out and whether it
// has been released. It detects double release, reads after release and
// handles leaked at shutdown.
type Ledger struct {
	live      map[ID]Entry
	observers []subscription
	stats     Stats
	seq       ID
	subSeq    uint64
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		live: make(map[ID]Entry, 64),
	}
}

// Track records a new allocation and returns its id. It returns 0 once the
// ledger is closed.
func (l *Ledger) Track(kind Kind, rep uint64) ID {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0
	}
	l.seq++
	id := l.seq
	l.live[id] = Entry{Rep: rep, Kind: kind}
	l.stats.Allocated++
	l.mu.Unlock()

	l.notify(Event{
		Type: EventAllocated,
		ID:   id,
		Kind: kind,
		Rep:  rep,
	})

	return id
}

// Check returns nil while id is live, and a use-after-free error once it has
// been released.
func (l *Ledger) Check(id ID) error {
	l.mu.Lock()
	_, ok := l.live[id]
	var err *errors.Error
	if !ok {
		err = l.violation(errors.PhaseRead, id)
	}
	l.mu.Unlock()

	if err != nil {
		l.notify(Event{Type: EventViolation, ID: id, Err: err})
		return err
	}
	return nil
}

// Release marks id as released. Releasing an id twice, or one the ledger
// never issued, is reported as a violation and leaves the ledger unchanged.
func (l *Ledger) Release(id ID) error {
	l.mu.Lock()
	e, ok := l.live[id]
	var err *errors.Error
	if ok {
		delete(l.live, id)
		l.stats.Released++
	} else {
		err = l.violation(errors.PhaseRelease, id)
	}
	l.mu.Unlock()

	if err != nil {
		l.notify(Event{Type: EventViolation, ID: id, Err: err})
		return err
	}

	l.notify(Event{
		Type: EventReleased,
		ID:   id,
		Kind: e.Kind,
		Rep:  e.Rep,
	})
	return nil
}

// violation builds the error for an id that is not live. Callers hold mu.
func (l *Ledger) violation(phase errors.Phase, id ID) *errors.Error {
	l.stats.Violations++
	if id == 0 || id > l.seq {
		return errors.UnknownHandle(phase, uint64(id))
	}
	if phase == errors.PhaseRelease {
		return errors.DoubleRelease(uint64(id))
	}
	return errors.UseAfterFree(uint64(id))
}

// Lookup returns the entry for a live id.
func (l *Ledger) Lookup(id ID) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.live[id]
	return e, ok
}

// Live returns the number of handles not yet released.
func (l *Ledger) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// Stats returns the running totals.
func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Each iterates over live handles in allocation order.
func (l *Ledger) Each(fn func(ID, Entry) bool) {
	type item struct {
		id ID
		e  Entry
	}

	l.mu.Lock()
	items := make([]item, 0, len(l.live))
	for id, e := range l.live {
		items = append(items, item{id: id, e: e})
	}
	l.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].id < items[j].id })
	for _, it := range items {
		if !fn(it.id, it.e) {
			return
		}
	}
}

type subscription struct {
	o  Observer
	id uint64
}

// Subscribe adds an observer for lifecycle events and returns a func that
// removes it. Observers need not be comparable; the same observer may be
// subscribed more than once.
func (l *Ledger) Subscribe(o Observer) (unsubscribe func()) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.subSeq++
	id := l.subSeq
	l.observers = append(l.observers, subscription{o: o, id: id})

	var once sync.Once
	return func() {
		once.Do(func() { l.unsubscribe(id) })
	}
}

func (l *Ledger) unsubscribe(id uint64) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	for i, sub := range l.observers {
		if sub.id == id {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

// Close stops tracking and reports handles that were never released.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if n := len(l.live); n > 0 {
		return errors.Leaked(n)
	}
	return nil
}

func (l *Ledger) notify(e Event) {
	l.obsMu.RLock()
	defer l.obsMu.RUnlock()
	for _, sub := range l.observers {
		sub.o.OnHandleEvent(e)
	}
}
