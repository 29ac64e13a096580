package record

import "fmt"

// Consistent is a Record whose field and key assignments accept a value only
// if the key is absent or already holds an equal value. Every other method
// behaves as on Record. Create one with NewConsistent; the zero Consistent
// has no Record to write to.
type Consistent struct {
	*Record
}

// NewConsistent creates a Consistent record with the construction rules of
// New.
func NewConsistent(source *Map, named ...Item) *Consistent {
	return &Consistent{Record: New(source, named...)}
}

// Set stores value at key if absent. Writing a value equal to the stored one
// is a no-op; writing a different one fails with ErrInconsistent.
func (c *Consistent) Set(key string, value any) error {
	prev, loaded := c.backing().SetDefault(key, value)
	if loaded && !equalValues(prev, value) {
		return fmt.Errorf("%w: %q holds %v, got %v", ErrInconsistent, key, prev, value)
	}
	return nil
}

func (c *Consistent) SetField(name string, value any) error {
	return c.Set(name, value)
}

// Field returns the value named name. A *Map value comes back wrapped in a
// new *Consistent over it.
func (c *Consistent) Field(name string) (any, error) {
	v, err := c.Get(name)
	if err != nil {
		return nil, noField(name, err)
	}
	if nested, ok := v.(*Map); ok {
		return NewConsistent(nested), nil
	}
	return v, nil
}

func (c *Consistent) Copy() *Consistent {
	return &Consistent{Record: c.Record.Copy()}
}

func (c *Consistent) DeepCopy() (*Consistent, error) {
	r, err := c.Record.DeepCopy()
	if err != nil {
		return nil, err
	}
	return &Consistent{Record: r}, nil
}

func (c *Consistent) String() string {
	return format("Consistent", c.backing())
}

func (c *Consistent) Pretty() string {
	return pretty("Consistent", c.backing())
}
