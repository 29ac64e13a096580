package stream

import (
	"slices"

	"github.com/jacentio/bunch/record"
)

// Binding routes the change events of one table into a view.
type Binding struct {
	// Table is the DynamoDB table name (e.g., "studios").
	Table string

	// KeyAttributes lists the primary key attributes in the order they are
	// joined into the view key (e.g., "pk", "sk"). When empty, the key
	// attributes of each event are used in sorted order.
	KeyAttributes []string

	// View receives one Frozen image per item. Inserts, replacements and
	// removals go through its hooks.
	View *record.Hooked
}

// Registry holds the bindings known to a Handler.
type Registry struct {
	bindings []Binding
	byTable  map[string]Binding
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: []Binding{},
		byTable:  make(map[string]Binding),
	}
}

// Register adds a binding. A later binding for the same table replaces the
// earlier one and keeps its position in AllBindings.
func (r *Registry) Register(b Binding) {
	if _, ok := r.byTable[b.Table]; ok {
		i := slices.IndexFunc(r.bindings, func(x Binding) bool { return x.Table == b.Table })
		r.bindings[i] = b
	} else {
		r.bindings = append(r.bindings, b)
	}
	r.byTable[b.Table] = b
}

// Lookup returns the binding for table.
func (r *Registry) Lookup(table string) (Binding, bool) {
	b, ok := r.byTable[table]
	return b, ok
}

// AllBindings returns one binding per table, in the order the tables were
// first registered.
func (r *Registry) AllBindings() []Binding {
	return slices.Clone(r.bindings)
}

// Has returns true if table has a binding.
func (r *Registry) Has(table string) bool {
	_, ok := r.byTable[table]
	return ok
}
