package record

import (
	"maps"
	"reflect"

	"github.com/mitchellh/copystructure"
)

var copier copystructure.Config

func init() {
	copier.Copiers = containerCopiers()
}

// containerCopiers extends the default copiers with the container types, whose
// state lives in unexported fields copystructure cannot reach.
func containerCopiers() map[reflect.Type]copystructure.CopierFunc {
	out := maps.Clone(copystructure.Copiers)
	if out == nil {
		out = make(map[reflect.Type]copystructure.CopierFunc)
	}
	out[reflect.TypeOf(Map{})] = func(v any) (any, error) {
		m := v.(Map)
		c, err := deepCopyMap(&m)
		if err != nil {
			return nil, err
		}
		return *c, nil
	}
	out[reflect.TypeOf(Record{})] = func(v any) (any, error) {
		r := v.(Record)
		c, err := r.DeepCopy()
		if err != nil {
			return nil, err
		}
		return *c, nil
	}
	out[reflect.TypeOf(Frozen{})] = func(v any) (any, error) {
		f := v.(Frozen)
		c, err := f.DeepCopy()
		if err != nil {
			return nil, err
		}
		return *c, nil
	}
	out[reflect.TypeOf(Hooked{})] = func(v any) (any, error) {
		h := v.(Hooked)
		c, err := h.DeepCopy()
		if err != nil {
			return nil, err
		}
		return *c, nil
	}
	return out
}

// deepCopyMap copies m and, recursively, every value it holds.
func deepCopyMap(m *Map) (*Map, error) {
	out := &Map{values: make(map[string]any, m.Len())}
	for k, v := range m.All() {
		c, err := deepCopyValue(v)
		if err != nil {
			return nil, err
		}
		out.Set(k, c)
	}
	return out, nil
}

func deepCopyValue(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *Map:
		return deepCopyMap(x)
	case *Record:
		return x.DeepCopy()
	case *Frozen:
		return x.DeepCopy()
	case *Hooked:
		return x.DeepCopy()
	case *Consistent:
		return x.DeepCopy()
	}
	return copier.Copy(v)
}
