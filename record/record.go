package record

import (
	"fmt"
	"iter"
	"slices"
)

// Record exposes the entries of a Map as named fields.
//
// Writes go straight to the backing Map with no policy. A Record built from a
// single Map shares it with the caller: changes made through either are seen
// by both. The zero Record is empty and ready to use.
type Record struct {
	m *Map
}

// New creates a Record.
//
// With no source and no named items the Record starts empty. With named items
// the Record gets a new Map holding the source entries followed by the named
// items, which override source entries with the same key. With only a source,
// the source Map is adopted by reference.
func New(source *Map, named ...Item) *Record {
	return &Record{m: build(source, named)}
}

// FromGoMap creates a Record over a copy of src.
func FromGoMap(src map[string]any) *Record {
	return &Record{m: MapFrom(src)}
}

// AsRecord returns data unchanged when it already is a *Record, adopts a *Map
// by reference, and copies any other supported source.
func AsRecord(data any) (*Record, error) {
	switch d := data.(type) {
	case *Record:
		return d, nil
	case *Map:
		return New(d), nil
	}
	items, err := sourceItems(data)
	if err != nil {
		return nil, err
	}
	return New(NewMap(items...)), nil
}

func build(source *Map, named []Item) *Map {
	switch {
	case len(named) > 0:
		var m *Map
		if source != nil {
			m = source.Clone()
		} else {
			m = NewMap()
		}
		for _, it := range named {
			m.Set(it.Key, it.Value)
		}
		return m
	case source == nil:
		return NewMap()
	default:
		return source
	}
}

func (r *Record) backing() *Map {
	if r.m == nil {
		r.m = NewMap()
	}
	return r.m
}

// Map returns the backing Map.
func (r *Record) Map() *Map { return r.backing() }

func (r *Record) Len() int { return r.backing().Len() }

func (r *Record) Has(key string) bool {
	_, ok := r.backing().Get(key)
	return ok
}

// Get returns the stored value as is. Nested maps are not wrapped.
func (r *Record) Get(key string) (any, error) {
	v, ok := r.backing().Get(key)
	if !ok {
		return nil, missing(key)
	}
	return v, nil
}

func (r *Record) GetOr(key string, def any) any {
	if v, ok := r.backing().Get(key); ok {
		return v
	}
	return def
}

func (r *Record) Lookup(key string) (any, bool) { return r.backing().Get(key) }

func (r *Record) Keys() []string { return r.backing().Keys() }

func (r *Record) Values() []any { return r.backing().Values() }

func (r *Record) Items() []Item { return r.backing().Items() }

func (r *Record) All() iter.Seq2[string, any] { return r.backing().All() }

// Field returns the value named name. A *Map value comes back wrapped in a
// new *Record over it; each call builds a fresh wrapper.
func (r *Record) Field(name string) (any, error) {
	v, err := r.Get(name)
	if err != nil {
		return nil, noField(name, err)
	}
	if nested, ok := v.(*Map); ok {
		return New(nested), nil
	}
	return v, nil
}

// SetField stores value under name.
func (r *Record) SetField(name string, value any) error {
	return r.Set(name, value)
}

// DelField removes name.
func (r *Record) DelField(name string) error {
	return r.Delete(name)
}

// FieldNames returns the keys sorted.
func (r *Record) FieldNames() []string {
	return slices.Sorted(slices.Values(r.backing().keys))
}

func (r *Record) Set(key string, value any) error {
	r.backing().Set(key, value)
	return nil
}

func (r *Record) Delete(key string) error {
	if _, ok := r.backing().Delete(key); !ok {
		return missing(key)
	}
	return nil
}

func (r *Record) Pop(key string) (any, error) {
	v, ok := r.backing().Delete(key)
	if !ok {
		return nil, missing(key)
	}
	return v, nil
}

// PopItem removes and returns the most recently inserted pair.
func (r *Record) PopItem() (Item, error) {
	it, ok := r.backing().PopItem()
	if !ok {
		return Item{}, ErrEmpty
	}
	return it, nil
}

func (r *Record) SetDefault(key string, value any) (any, error) {
	v, _ := r.backing().SetDefault(key, value)
	return v, nil
}

func (r *Record) Update(other any, named ...Item) error {
	items, err := sourceItems(other)
	if err != nil {
		return err
	}
	for _, it := range slices.Concat(items, named) {
		r.backing().Set(it.Key, it.Value)
	}
	return nil
}

func (r *Record) Clear() error {
	r.backing().Clear()
	return nil
}

// Index applies sel to every Array value and returns a new Record holding
// only the results. Non-array entries are dropped. It fails with
// ErrNothingIndexable when no entry is an Array.
func (r *Record) Index(sel Selector) (*Record, error) {
	m, err := selectArrays(r.backing(), sel)
	if err != nil {
		return nil, err
	}
	return New(m), nil
}

// DomainSort reorders every Array value by the ascending permutation of the
// Array stored at key.
func (r *Record) DomainSort(key string) (*Record, error) {
	perm, err := argSort(r.backing(), key)
	if err != nil {
		return nil, err
	}
	return r.Index(perm)
}

// Copy returns a Record over a shallow copy of the backing Map.
func (r *Record) Copy() *Record {
	return New(r.backing().Clone())
}

// DeepCopy returns a Record over a recursive copy of the backing Map.
func (r *Record) DeepCopy() (*Record, error) {
	m, err := deepCopyMap(r.backing())
	if err != nil {
		return nil, err
	}
	return New(m), nil
}

// Freeze returns a Frozen snapshot of the current entries.
func (r *Record) Freeze() *Frozen {
	return Freeze(r.backing())
}

func (r *Record) String() string {
	return format("Record", r.backing())
}

// Pretty renders the record over several lines with keys sorted.
func (r *Record) Pretty() string {
	return pretty("Record", r.backing())
}

func selectArrays(m *Map, sel Selector) (*Map, error) {
	out := NewMap()
	for k, v := range m.All() {
		a, ok := v.(Array)
		if !ok {
			continue
		}
		picked, err := a.Select(sel)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", k, err)
		}
		out.Set(k, picked)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%w by %v", ErrNothingIndexable, sel)
	}
	return out, nil
}

func argSort(m *Map, key string) (Indices, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, missing(key)
	}
	a, ok := v.(Array)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrNotArray, key, v)
	}
	return Indices(a.ArgSort()), nil
}
