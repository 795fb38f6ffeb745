package schema

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"gorm.io/gorm"
)

var ErrUnknownTable = errors.New("unknown table")

// Entity is a blank record that can populate itself from raw form input.
// Implementations perform minimal type coercion and no further validation.
type Entity interface {
	SetValues(form url.Values) error
}

// Descriptor bundles everything the admin controller needs to operate on
// a table without reflection: its field metadata, a constructor and a
// query-all. Metadata is static for the process lifetime.
type Descriptor struct {
	Table  string
	Fields []Field
	New    func() Entity
	All    func(ctx context.Context, db *gorm.DB) ([]Entity, error)
}

// ForeignKeys returns the fields that reference other tables.
func (d *Descriptor) ForeignKeys() []Field {
	var fks []Field
	for _, f := range d.Fields {
		if f.IsForeignKey() {
			fks = append(fks, f)
		}
	}
	return fks
}

// Registry maps table names to descriptors. Registration happens once at
// startup; lookups are read-only afterwards.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Descriptor)}
}

// Register adds a descriptor. Registering the same table twice panics:
// that is a programming error, not runtime input.
func (r *Registry) Register(d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.tables[d.Table]; dup {
		panic(fmt.Sprintf("schema: table %q registered twice", d.Table))
	}
	r.tables[d.Table] = d
}

// Lookup resolves a table name to its descriptor.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return d, nil
}

// Tables returns all registered table names, sorted.
func (r *Registry) Tables() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
