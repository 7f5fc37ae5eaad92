package handle

// ID identifies one native allocation. IDs are issued in increasing order
// and never reused, so a stale ID can always be told apart from a live one.
// ID 0 is reserved and always invalid.
type ID uint64

// Kind is the native type behind a handle.
type Kind uint8

const (
	KindVector Kind = iota + 1
	KindRotation
)

func (k Kind) String() string {
	switch k {
	case KindVector:
		return "vector"
	case KindRotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// EventType is a handle lifecycle notification.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventReleased
	EventViolation
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventReleased:
		return "released"
	case EventViolation:
		return "violation"
	default:
		return "unknown"
	}
}

// Event represents a handle lifecycle event.
type Event struct {
	Err  error
	ID   ID
	Rep  uint64
	Kind Kind
	Type EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Entry describes a live handle.
type Entry struct {
	Rep  uint64 // native representation: guest pointer or C address
	Kind Kind
}

// Stats are running totals for a ledger.
type Stats struct {
	Allocated  uint64
	Released   uint64
	Violations uint64
}

// Live returns the number of handles allocated but not yet released.
func (s Stats) Live() uint64 {
	return s.Allocated - s.Released
}
