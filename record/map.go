package record

import (
	"iter"
	"maps"
	"slices"
)

// Item is a single key/value pair.
type Item struct {
	Key   string
	Value any
}

// Pair returns an Item for key and value.
func Pair(key string, value any) Item {
	return Item{Key: key, Value: value}
}

// Map is the ordered key/value store every container wraps.
//
// Keys iterate in insertion order. Overwriting an existing key keeps its
// position. A *Map stored as a value is treated as a plain nested mapping and
// is re-wrapped when read through the field accessors.
//
// Map is not safe for concurrent use.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap creates a Map holding items in the given order. Later duplicates
// overwrite earlier ones.
func NewMap(items ...Item) *Map {
	m := &Map{values: make(map[string]any, len(items))}
	for _, it := range items {
		m.Set(it.Key, it.Value)
	}
	return m
}

// MapFrom copies a Go map into a new Map. Keys are inserted in sorted order
// since Go maps carry no order of their own.
func MapFrom(src map[string]any) *Map {
	m := &Map{values: make(map[string]any, len(src))}
	for _, k := range slices.Sorted(maps.Keys(src)) {
		m.Set(k, src[k])
	}
	return m
}

func (m *Map) init() {
	if m.values == nil {
		m.values = make(map[string]any)
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Get returns the value stored at key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores value at key.
func (m *Map) Set(key string, value any) {
	m.init()
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetDefault stores value at key only if key is absent. It returns the value
// now stored and whether it was already present.
func (m *Map) SetDefault(key string, value any) (actual any, loaded bool) {
	if v, ok := m.values[key]; ok {
		return v, true
	}
	m.Set(key, value)
	return value, false
}

// Delete removes key and returns its value.
func (m *Map) Delete(key string) (any, bool) {
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	delete(m.values, key)
	i := slices.Index(m.keys, key)
	m.keys = slices.Delete(m.keys, i, i+1)
	return v, true
}

// Last returns the most recently inserted pair without removing it.
func (m *Map) Last() (Item, bool) {
	if len(m.keys) == 0 {
		return Item{}, false
	}
	k := m.keys[len(m.keys)-1]
	return Item{Key: k, Value: m.values[k]}, true
}

// PopItem removes and returns the most recently inserted pair.
func (m *Map) PopItem() (Item, bool) {
	it, ok := m.Last()
	if !ok {
		return Item{}, false
	}
	m.keys = m.keys[:len(m.keys)-1]
	delete(m.values, it.Key)
	return it, true
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.keys = nil
	clear(m.values)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

// Values returns the values in key order.
func (m *Map) Values() []any {
	out := make([]any, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.values[k]
	}
	return out
}

// Items returns the pairs in key order.
func (m *Map) Items() []Item {
	out := make([]Item, len(m.keys))
	for i, k := range m.keys {
		out[i] = Item{Key: k, Value: m.values[k]}
	}
	return out
}

// All iterates over the pairs in key order. The map must not be modified
// during iteration.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (m *Map) Clone() *Map {
	return &Map{
		keys:   slices.Clone(m.keys),
		values: maps.Clone(m.values),
	}
}
