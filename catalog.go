package ecpay

import (
	"sort"
	"strings"
	"sync"
)

// Constructor builds an operation from the merchant credentials.
type Constructor func(merchantID, hashKey, hashIV string) Operation

type catalogEntry struct {
	name string
	ctor Constructor
}

// Catalog maps fully-qualified operation type names to constructors.
// Lookups ignore case.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]catalogEntry
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]catalogEntry)}
}

var defaultCatalog = NewCatalog()

// DefaultCatalog returns the process-wide catalog that Register writes to.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Register adds a constructor to the default catalog.
// Operation packages call it from init.
func Register(name string, ctor Constructor) {
	defaultCatalog.Register(name, ctor)
}

// Register adds or replaces the constructor for name.
func (c *Catalog) Register(name string, ctor Constructor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[strings.ToLower(name)] = catalogEntry{name: name, ctor: ctor}
}

// Lookup returns the constructor and the registered spelling of name.
func (c *Catalog) Lookup(name string) (Constructor, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[strings.ToLower(name)]
	if !ok {
		return nil, "", false
	}
	return e.ctor, e.name, true
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	_, _, ok := c.Lookup(name)
	return ok
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the catalog.
// This is primarily useful for test isolation.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]catalogEntry)
}
