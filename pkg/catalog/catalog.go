// Package catalog maps symbolic property keys to bounded, typed accessors
// backed by an external flight-dynamics engine's named-property store.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrUnknownProperty is returned when a key has no catalog entry.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrReadOnly is returned when a write is attempted on a property
	// without Write access.
	ErrReadOnly = errors.New("property is read-only")
)

// Catalog is a registry of properties. It is passed explicitly to entity
// constructors so tests can build isolated instances; it only ever grows as
// engine instances report the properties they support.
type Catalog struct {
	props map[string]Property
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{props: make(map[string]Property)}
}

// Register adds or overwrites an entry. Registering an identical definition
// is a no-op, so repeated engine loads are idempotent.
func (c *Catalog) Register(p Property) {
	if p.Name == "" {
		p.Name = p.Key
	}
	c.props[p.Key] = p
}

// Lookup returns the property registered under key.
func (c *Catalog) Lookup(key string) (Property, bool) {
	p, ok := c.props[key]
	return p, ok
}

// Len returns the number of registered properties.
func (c *Catalog) Len() int { return len(c.props) }

// Keys returns all registered keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.props))
	for k := range c.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get reads the value of key from store. If the property is Read-capable and
// carries an update hook, the hook runs first so derived properties report a
// live value rather than a stale stored field.
func (c *Catalog) Get(store Store, key string) (float64, error) {
	p, ok := c.props[key]
	if !ok {
		return 0, fmt.Errorf("get %q: %w", key, ErrUnknownProperty)
	}
	if p.Access.CanRead() && p.Update != nil {
		p.Update(store)
	}
	return store.GetPropertyValue(p.Name), nil
}

// Set writes value to key in store, silently clamping to [Min, Max].
// Out-of-range requests are a normal occurrence (control commands near ±1),
// so clamping is not an error and is not logged. If the property is
// Write-capable and carries an update hook, the hook runs after the write.
func (c *Catalog) Set(store Store, key string, value float64) error {
	p, ok := c.props[key]
	if !ok {
		return fmt.Errorf("set %q: %w", key, ErrUnknownProperty)
	}
	if !p.Access.CanWrite() {
		return fmt.Errorf("set %q: %w", key, ErrReadOnly)
	}
	if value < p.Min {
		value = p.Min
	} else if value > p.Max {
		value = p.Max
	}
	store.SetPropertyValue(p.Name, value)
	if p.Update != nil {
		p.Update(store)
	}
	return nil
}

// MergeEngineProperties additively merges the property names a freshly
// loaded engine reports supporting. Names already registered keep their
// definitions; new names are registered as unbounded read-write entries
// keyed by their normalized form. The catalog never shrinks.
func (c *Catalog) MergeEngineProperties(names []string) {
	for _, name := range names {
		key := NormalizeKey(name)
		if _, ok := c.props[key]; ok {
			continue
		}
		c.props[key] = Property{
			Key:    key,
			Name:   name,
			Min:    math.Inf(-1),
			Max:    math.Inf(1),
			Access: ReadWrite,
		}
	}
}

// NormalizeKey converts an engine property name (e.g. "ic/h-sl-ft") to its
// symbolic catalog key ("ic_h_sl_ft").
func NormalizeKey(name string) string {
	key := strings.TrimSpace(name)
	key = strings.ReplaceAll(key, "/", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}
