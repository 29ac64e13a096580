package record

import (
	"fmt"
	"iter"
	"slices"
)

// Hooks gate the structural changes of a Hooked record. A hook runs before
// the change is committed; a non-nil error aborts the change and leaves the
// record untouched. A nil hook forbids the corresponding change.
type Hooks struct {
	// Insert is called when key is about to be added.
	Insert func(key string, value any) error

	// Replace is called when the value at key is about to be swapped for a
	// different one.
	Replace func(key string, old, new any) error

	// Delete is called when key is about to be removed.
	Delete func(key string, value any) error
}

// Then returns hooks that run h and then next. A transition is allowed only
// if both hook sets define it.
func (h Hooks) Then(next Hooks) Hooks {
	var out Hooks
	if h.Insert != nil && next.Insert != nil {
		out.Insert = func(key string, value any) error {
			if err := h.Insert(key, value); err != nil {
				return err
			}
			return next.Insert(key, value)
		}
	}
	if h.Replace != nil && next.Replace != nil {
		out.Replace = func(key string, old, new any) error {
			if err := h.Replace(key, old, new); err != nil {
				return err
			}
			return next.Replace(key, old, new)
		}
	}
	if h.Delete != nil && next.Delete != nil {
		out.Delete = func(key string, value any) error {
			if err := h.Delete(key, value); err != nil {
				return err
			}
			return next.Delete(key, value)
		}
	}
	return out
}

// Hooked is a record whose structural changes go through Hooks.
//
// Inserting a new key needs Hooks.Insert, replacing a value with a different
// one needs Hooks.Replace and removing a key needs Hooks.Delete. Storing the
// value already held at a key is a no-op and calls no hook. The zero Hooked
// is empty and has no hooks.
type Hooked struct {
	m     *Map
	hooks Hooks
}

// NewHooked creates a Hooked record. source and named follow the rules of
// New; entries supplied at construction do not pass through the hooks.
func NewHooked(source *Map, hooks Hooks, named ...Item) *Hooked {
	return &Hooked{m: build(source, named), hooks: hooks}
}

func (h *Hooked) backing() *Map {
	if h.m == nil {
		h.m = NewMap()
	}
	return h.m
}

// Hooks returns the configured hooks.
func (h *Hooked) Hooks() Hooks { return h.hooks }

func (h *Hooked) Len() int { return h.backing().Len() }

func (h *Hooked) Has(key string) bool {
	_, ok := h.backing().Get(key)
	return ok
}

func (h *Hooked) Get(key string) (any, error) {
	v, ok := h.backing().Get(key)
	if !ok {
		return nil, missing(key)
	}
	return v, nil
}

func (h *Hooked) GetOr(key string, def any) any {
	if v, ok := h.backing().Get(key); ok {
		return v
	}
	return def
}

func (h *Hooked) Lookup(key string) (any, bool) { return h.backing().Get(key) }

func (h *Hooked) Keys() []string { return h.backing().Keys() }

func (h *Hooked) Values() []any { return h.backing().Values() }

func (h *Hooked) Items() []Item { return h.backing().Items() }

func (h *Hooked) All() iter.Seq2[string, any] { return h.backing().All() }

// Field returns the value named name. A *Map value comes back wrapped in a
// new Hooked record with no hooks, so the nested view cannot be changed.
func (h *Hooked) Field(name string) (any, error) {
	v, err := h.Get(name)
	if err != nil {
		return nil, noField(name, err)
	}
	if nested, ok := v.(*Map); ok {
		return NewHooked(nested, Hooks{}), nil
	}
	return v, nil
}

func (h *Hooked) FieldNames() []string {
	return slices.Sorted(slices.Values(h.backing().keys))
}

func (h *Hooked) SetField(name string, value any) error {
	return h.Set(name, value)
}

func (h *Hooked) DelField(name string) error {
	return h.Delete(name)
}

// Set inserts or replaces the value at key through the matching hook.
func (h *Hooked) Set(key string, value any) error {
	prev, ok := h.backing().Get(key)
	if !ok {
		return h.insert(key, value)
	}
	if same(prev, value) {
		return nil
	}
	if h.hooks.Replace == nil {
		return fmt.Errorf("%w: %q", ErrReplaceNotAllowed, key)
	}
	if err := h.hooks.Replace(key, prev, value); err != nil {
		return err
	}
	h.backing().Set(key, value)
	return nil
}

func (h *Hooked) insert(key string, value any) error {
	if h.hooks.Insert == nil {
		return fmt.Errorf("%w: %q", ErrInsertNotAllowed, key)
	}
	if err := h.hooks.Insert(key, value); err != nil {
		return err
	}
	h.backing().Set(key, value)
	return nil
}

func (h *Hooked) Delete(key string) error {
	_, err := h.Pop(key)
	return err
}

// Pop removes key through Hooks.Delete and returns its value.
func (h *Hooked) Pop(key string) (any, error) {
	if h.hooks.Delete == nil {
		return nil, fmt.Errorf("%w: %q", ErrDeleteNotAllowed, key)
	}
	v, ok := h.backing().Get(key)
	if !ok {
		return nil, missing(key)
	}
	if err := h.hooks.Delete(key, v); err != nil {
		return nil, err
	}
	h.backing().Delete(key)
	return v, nil
}

// PopItem removes the most recently inserted pair through Hooks.Delete.
func (h *Hooked) PopItem() (Item, error) {
	if h.hooks.Delete == nil {
		return Item{}, ErrDeleteNotAllowed
	}
	it, ok := h.backing().Last()
	if !ok {
		return Item{}, ErrEmpty
	}
	if err := h.hooks.Delete(it.Key, it.Value); err != nil {
		return Item{}, err
	}
	h.backing().PopItem()
	return it, nil
}

// SetDefault returns the value at key, inserting value first when key is
// absent.
func (h *Hooked) SetDefault(key string, value any) (any, error) {
	if v, ok := h.backing().Get(key); ok {
		return v, nil
	}
	if err := h.insert(key, value); err != nil {
		return nil, err
	}
	return value, nil
}

// Update sets each pair of other and then of named through Set. It stops at
// the first rejected pair; pairs already applied stay applied.
func (h *Hooked) Update(other any, named ...Item) error {
	items, err := sourceItems(other)
	if err != nil {
		return err
	}
	for _, it := range slices.Concat(items, named) {
		if err := h.Set(it.Key, it.Value); err != nil {
			return err
		}
	}
	return nil
}

// Clear calls Hooks.Delete for every entry in order and then empties the
// record. Nothing is removed if any call fails.
func (h *Hooked) Clear() error {
	if h.hooks.Delete == nil {
		return ErrDeleteNotAllowed
	}
	for k, v := range h.backing().All() {
		if err := h.hooks.Delete(k, v); err != nil {
			return err
		}
	}
	h.backing().Clear()
	return nil
}

// Index returns a plain Record holding sel applied to every Array value.
func (h *Hooked) Index(sel Selector) (*Record, error) {
	m, err := selectArrays(h.backing(), sel)
	if err != nil {
		return nil, err
	}
	return New(m), nil
}

func (h *Hooked) DomainSort(key string) (*Record, error) {
	perm, err := argSort(h.backing(), key)
	if err != nil {
		return nil, err
	}
	return h.Index(perm)
}

// Copy returns a Hooked record over a shallow copy of the entries, sharing
// the hooks.
func (h *Hooked) Copy() *Hooked {
	return &Hooked{m: h.backing().Clone(), hooks: h.hooks}
}

func (h *Hooked) DeepCopy() (*Hooked, error) {
	m, err := deepCopyMap(h.backing())
	if err != nil {
		return nil, err
	}
	return &Hooked{m: m, hooks: h.hooks}, nil
}

func (h *Hooked) String() string {
	return format("Hooked", h.backing())
}

func (h *Hooked) Pretty() string {
	return pretty("Hooked", h.backing())
}
