package record

import (
	"fmt"
	"iter"
)

// Mapping is the read surface shared by every container.
type Mapping interface {
	// Len returns the number of entries.
	Len() int

	// Has reports whether key is present.
	Has(key string) bool

	// Get returns the value at key, or ErrKeyNotFound.
	Get(key string) (any, error)

	// GetOr returns the value at key, or def when absent.
	GetOr(key string, def any) any

	// Lookup returns the value at key and whether it was present.
	Lookup(key string) (any, bool)

	// Keys returns the keys in iteration order.
	Keys() []string

	// Values returns the values in iteration order.
	Values() []any

	// Items returns the pairs in iteration order.
	Items() []Item

	// All iterates over the pairs in iteration order.
	All() iter.Seq2[string, any]
}

// MutableMapping adds the write surface. Each container applies its own
// policy; a Frozen record rejects every call with ErrFrozen.
type MutableMapping interface {
	Mapping

	Set(key string, value any) error
	Delete(key string) error
	Pop(key string) (any, error)
	PopItem() (Item, error)
	SetDefault(key string, value any) (any, error)

	// Update merges other and then named, one key at a time. other may be a
	// Mapping, a *Map, a map[string]any, or a []Item.
	Update(other any, named ...Item) error

	Clear() error
}

var (
	_ MutableMapping = (*Record)(nil)
	_ MutableMapping = (*Frozen)(nil)
	_ MutableMapping = (*Hooked)(nil)
	_ MutableMapping = (*Consistent)(nil)
)

// store exposes the backing Map of a container. Every container type in this
// package implements it.
type store interface {
	backing() *Map
}

// sourceItems enumerates the pairs of an Update or AsRecord source.
func sourceItems(src any) ([]Item, error) {
	switch s := src.(type) {
	case nil:
		return nil, nil
	case store:
		return s.backing().Items(), nil
	case *Map:
		return s.Items(), nil
	case Mapping:
		return s.Items(), nil
	case map[string]any:
		return MapFrom(s).Items(), nil
	case []Item:
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}
