package record

import "reflect"

// Equal reports whether a and b hold the same keys with equal values,
// regardless of order. Nested mappings compare the same way; other values
// compare with reflect.DeepEqual. A nil Mapping is equal only to another nil
// Mapping.
func Equal(a, b Mapping) bool {
	ma, okA := asMap(a)
	mb, okB := asMap(b)
	if !okA || !okB {
		return okA == okB
	}
	return equalMaps(ma, mb)
}

func equalMaps(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, va := range a.All() {
		vb, ok := b.Get(k)
		if !ok || !equalValues(va, vb) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	ma, okA := asMap(a)
	mb, okB := asMap(b)
	if okA && okB {
		return equalMaps(ma, mb)
	}
	return reflect.DeepEqual(a, b)
}

func asMap(v any) (*Map, bool) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	switch m := v.(type) {
	case *Map:
		return m, true
	case store:
		return m.backing(), true
	case Mapping:
		return NewMap(m.Items()...), true
	default:
		return nil, false
	}
}

// same reports whether a and b are the same object: the same pointer, map,
// func or channel, the same slice header, or equal comparable values.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return false
}
