package record

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jacentio/bunch/internal/digest"
)

// Frozen is an immutable, hashable record.
//
// The entries are copied at construction so later changes to the source are
// not seen. Values themselves are not copied. Every mutating method returns
// ErrFrozen. The zero Frozen is empty.
type Frozen struct {
	m      *Map
	hash   uint64
	hashed bool
}

// Freeze creates a Frozen record over a shallow copy of source merged with
// named, using the same merge rules as New.
func Freeze(source *Map, named ...Item) *Frozen {
	m := build(source, named)
	if m == source {
		m = source.Clone()
	}
	return &Frozen{m: m}
}

// AsFrozen returns data unchanged when it already is a *Frozen and freezes
// any other supported source.
func AsFrozen(data any) (*Frozen, error) {
	if f, ok := data.(*Frozen); ok {
		return f, nil
	}
	items, err := sourceItems(data)
	if err != nil {
		return nil, err
	}
	return &Frozen{m: NewMap(items...)}, nil
}

func (f *Frozen) backing() *Map {
	if f.m == nil {
		f.m = NewMap()
	}
	return f.m
}

func (f *Frozen) Len() int { return f.backing().Len() }

func (f *Frozen) Has(key string) bool {
	_, ok := f.backing().Get(key)
	return ok
}

func (f *Frozen) Get(key string) (any, error) {
	v, ok := f.backing().Get(key)
	if !ok {
		return nil, missing(key)
	}
	return v, nil
}

func (f *Frozen) GetOr(key string, def any) any {
	if v, ok := f.backing().Get(key); ok {
		return v
	}
	return def
}

func (f *Frozen) Lookup(key string) (any, bool) { return f.backing().Get(key) }

func (f *Frozen) Keys() []string { return f.backing().Keys() }

func (f *Frozen) Values() []any { return f.backing().Values() }

func (f *Frozen) Items() []Item { return f.backing().Items() }

func (f *Frozen) All() iter.Seq2[string, any] { return f.backing().All() }

// Field returns the value named name. A *Map value comes back as a new
// Frozen snapshot of it.
func (f *Frozen) Field(name string) (any, error) {
	v, err := f.Get(name)
	if err != nil {
		return nil, noField(name, err)
	}
	if nested, ok := v.(*Map); ok {
		return Freeze(nested), nil
	}
	return v, nil
}

func (f *Frozen) FieldNames() []string {
	return slices.Sorted(slices.Values(f.backing().keys))
}

func (f *Frozen) SetField(string, any) error { return ErrFrozen }

func (f *Frozen) DelField(string) error { return ErrFrozen }

func (f *Frozen) Set(string, any) error { return ErrFrozen }

func (f *Frozen) Delete(string) error { return ErrFrozen }

func (f *Frozen) Pop(string) (any, error) { return nil, ErrFrozen }

func (f *Frozen) PopItem() (Item, error) { return Item{}, ErrFrozen }

func (f *Frozen) SetDefault(string, any) (any, error) { return nil, ErrFrozen }

func (f *Frozen) Update(any, ...Item) error { return ErrFrozen }

func (f *Frozen) Clear() error { return ErrFrozen }

// Hash returns a hash of the entries that does not depend on their order.
// Two Frozen records with equal entries hash the same. Every value must be
// hashable: nested *Map values and mutable records fail with ErrUnhashable,
// nested Frozen records hash by content. The result is computed once and
// cached.
func (f *Frozen) Hash() (uint64, error) {
	if f.hashed {
		return f.hash, nil
	}
	for k, v := range f.backing().All() {
		if mutable(v) {
			return 0, fmt.Errorf("%w: %q holds %T", ErrUnhashable, k, v)
		}
	}
	h, err := digest.Pairs(f.backing().keys, func(k string) any {
		v, _ := f.backing().Get(k)
		return v
	})
	if err != nil {
		return 0, err
	}
	f.hash, f.hashed = h, true
	return h, nil
}

// mutable reports whether v is a container that can change after hashing.
func mutable(v any) bool {
	switch v.(type) {
	case *Frozen:
		return false
	case *Map, store:
		return true
	}
	return false
}

// Index applies sel to every Array value and returns the results frozen.
func (f *Frozen) Index(sel Selector) (*Frozen, error) {
	m, err := selectArrays(f.backing(), sel)
	if err != nil {
		return nil, err
	}
	return &Frozen{m: m}, nil
}

// DomainSort reorders every Array value by the ascending permutation of the
// Array stored at key.
func (f *Frozen) DomainSort(key string) (*Frozen, error) {
	perm, err := argSort(f.backing(), key)
	if err != nil {
		return nil, err
	}
	return f.Index(perm)
}

// Copy returns a Frozen record over a shallow copy of the entries.
func (f *Frozen) Copy() *Frozen {
	return Freeze(f.backing())
}

// DeepCopy returns a Frozen record over a recursive copy of the entries.
func (f *Frozen) DeepCopy() (*Frozen, error) {
	m, err := deepCopyMap(f.backing())
	if err != nil {
		return nil, err
	}
	return &Frozen{m: m}, nil
}

// Thaw returns a mutable Record over a shallow copy of the entries.
func (f *Frozen) Thaw() *Record {
	return New(f.backing().Clone())
}

func (f *Frozen) String() string {
	return format("Frozen", f.backing())
}

func (f *Frozen) Pretty() string {
	return pretty("Frozen", f.backing())
}
