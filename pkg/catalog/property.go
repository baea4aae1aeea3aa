package catalog

// Access describes the capabilities of a property.
type Access int

const (
	// Read marks a property whose value may be read.
	Read Access = 1 << iota
	// Write marks a property whose value may be written.
	Write
	// ReadWrite marks a property that supports both.
	ReadWrite = Read | Write
)

// CanRead reports whether the access set includes Read.
func (a Access) CanRead() bool { return a&Read != 0 }

// CanWrite reports whether the access set includes Write.
func (a Access) CanWrite() bool { return a&Write != 0 }

func (a Access) String() string {
	switch a {
	case Read:
		return "R"
	case Write:
		return "W"
	case ReadWrite:
		return "RW"
	default:
		return "-"
	}
}

// Store is the named-property surface of an external flight-dynamics engine.
// Raw store access carries no bounds or access checks; those belong to the
// catalog layer.
type Store interface {
	GetPropertyValue(name string) float64
	SetPropertyValue(name string, value float64)
}

// UpdateFunc recomputes derived state against the backing store. A Read
// property's hook runs before its value is returned; a Write property's hook
// runs after the value has been stored.
type UpdateFunc func(store Store)

// Property is a bounded, access-moded handle into an engine's property store.
// Key is the symbolic catalog identifier; Name is the identifier the backing
// store understands.
type Property struct {
	Key    string
	Name   string
	Min    float64
	Max    float64
	Access Access
	Update UpdateFunc
}
