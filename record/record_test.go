package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Empty(t *testing.T) {
	r := New(nil)
	assert.Equal(t, 0, r.Len())
	require.NoError(t, r.SetField("a", 1))
	assert.Equal(t, 1, r.Len())
}

func TestNew_AdoptsSourceByReference(t *testing.T) {
	src := NewMap(Pair("a", 1))
	r := New(src)

	src.Set("b", 2)
	assert.True(t, r.Has("b"), "record sees changes to its source")

	require.NoError(t, r.Set("c", 3))
	_, ok := src.Get("c")
	assert.True(t, ok, "source sees changes made through the record")
	assert.Same(t, src, r.Map())
}

func TestNew_NamedItemsMergeIntoCopy(t *testing.T) {
	src := NewMap(Pair("a", 1), Pair("b", 2))
	r := New(src, Pair("b", 20), Pair("c", 3))

	assert.Equal(t, []string{"a", "b", "c"}, r.Keys())
	assert.Equal(t, []any{1, 20, 3}, r.Values())

	require.NoError(t, r.Set("d", 4))
	_, ok := src.Get("d")
	assert.False(t, ok, "merged record does not share the source")
	v, _ := src.Get("b")
	assert.Equal(t, 2, v)
}

func TestNew_NamedOnly(t *testing.T) {
	r := New(nil, Pair("datum", 2), Pair("squared", 4))
	v, err := r.Field("datum")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestAsRecord(t *testing.T) {
	r := New(nil, Pair("a", 1))
	got, err := AsRecord(r)
	require.NoError(t, err)
	assert.Same(t, r, got)

	m := NewMap(Pair("a", 1))
	got, err = AsRecord(m)
	require.NoError(t, err)
	assert.Same(t, m, got.Map())

	got, err = AsRecord(map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Keys())

	got, err = AsRecord([]Item{Pair("x", 1)})
	require.NoError(t, err)
	assert.True(t, got.Has("x"))

	_, err = AsRecord(42)
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestRecord_FieldRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"int", 1},
		{"string", "hello"},
		{"nil", nil},
		{"slice", []int{1, 2}},
		{"vector", Vec(1.5, 2.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(nil)
			require.NoError(t, r.SetField("k", tt.value))
			v, err := r.Field("k")
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestRecord_FieldMissing(t *testing.T) {
	r := New(nil, Pair("a", 1))
	_, err := r.Field("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoField)
	assert.ErrorIs(t, err, ErrKeyNotFound, "field error carries the key error")

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.NotErrorIs(t, err, ErrNoField)
}

// A nested *Map is wrapped on every read, never cached: two reads yield two
// distinct wrappers over the same inner map.
func TestRecord_FieldRewrapsNestedMapEveryRead(t *testing.T) {
	inner := NewMap(Pair("x", 1))
	r := New(nil, Pair("inner", inner))

	a, err := r.Field("inner")
	require.NoError(t, err)
	b, err := r.Field("inner")
	require.NoError(t, err)

	ra, ok := a.(*Record)
	require.True(t, ok)
	rb, ok := b.(*Record)
	require.True(t, ok)

	assert.NotSame(t, ra, rb)
	assert.Same(t, inner, ra.Map())
	assert.Same(t, inner, rb.Map())

	require.NoError(t, ra.SetField("y", 2))
	assert.True(t, rb.Has("y"), "wrappers view the same inner map")
}

func TestRecord_GetDoesNotRewrap(t *testing.T) {
	inner := NewMap(Pair("x", 1))
	r := New(nil, Pair("inner", inner))

	v, err := r.Get("inner")
	require.NoError(t, err)
	assert.Same(t, inner, v)
}

func TestRecord_NestedRecordIsNotRewrapped(t *testing.T) {
	inner := New(nil, Pair("x", 1))
	r := New(nil, Pair("inner", inner))

	v, err := r.Field("inner")
	require.NoError(t, err)
	assert.Same(t, inner, v)
}

func TestRecord_DelField(t *testing.T) {
	r := New(nil, Pair("a", 1))
	require.NoError(t, r.DelField("a"))
	assert.False(t, r.Has("a"))

	err := r.DelField("a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRecord_MappingSurface(t *testing.T) {
	r := New(nil, Pair("a", 1), Pair("b", 2))

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Has("a"))
	assert.Equal(t, 1, r.GetOr("a", 0))
	assert.Equal(t, 0, r.GetOr("z", 0))

	v, ok := r.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	assert.Equal(t, []Item{Pair("a", 1), Pair("b", 2)}, r.Items())

	var keys []string
	for k := range r.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestRecord_Pop(t *testing.T) {
	r := New(nil, Pair("a", 1), Pair("b", 2))

	v, err := r.Pop("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = r.Pop("a")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	it, err := r.PopItem()
	require.NoError(t, err)
	assert.Equal(t, Pair("b", 2), it)

	_, err = r.PopItem()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRecord_SetDefault(t *testing.T) {
	r := New(nil, Pair("a", 1))

	v, err := r.SetDefault("a", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = r.SetDefault("b", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, 5, r.GetOr("b", nil))
}

func TestRecord_Update(t *testing.T) {
	r := New(nil, Pair("a", 1))

	require.NoError(t, r.Update(map[string]any{"b": 2}, Pair("a", 10)))
	assert.Equal(t, 10, r.GetOr("a", nil), "named items apply after other")
	assert.Equal(t, 2, r.GetOr("b", nil))

	require.NoError(t, r.Update([]Item{Pair("c", 3)}))
	require.NoError(t, r.Update(New(nil, Pair("d", 4))))
	require.NoError(t, r.Update(NewMap(Pair("e", 5))))
	require.NoError(t, r.Update(nil, Pair("f", 6)))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, r.Keys())

	err := r.Update("nope")
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestRecord_Clear(t *testing.T) {
	src := NewMap(Pair("a", 1))
	r := New(src)
	require.NoError(t, r.Clear())
	assert.Equal(t, 0, src.Len())
}

func TestRecord_FieldNamesSorted(t *testing.T) {
	r := New(nil, Pair("b", 1), Pair("a", 2))
	assert.Equal(t, []string{"a", "b"}, r.FieldNames())
	assert.Equal(t, []string{"b", "a"}, r.Keys())
}

func TestRecord_Copy(t *testing.T) {
	inner := NewMap(Pair("x", 1))
	r := New(nil, Pair("a", 1), Pair("inner", inner))

	c := r.Copy()
	require.NoError(t, c.Set("a", 2))
	assert.Equal(t, 1, r.GetOr("a", nil))

	v, _ := c.Get("inner")
	assert.Same(t, inner, v, "copy is shallow")
}

func TestRecord_DeepCopy(t *testing.T) {
	inner := NewMap(Pair("x", []int{1, 2}))
	r := New(nil, Pair("a", 1), Pair("inner", inner), Pair("xs", Vec(1, 2, 3)))

	c, err := r.DeepCopy()
	require.NoError(t, err)
	assert.True(t, Equal(r, c))

	nested, err := c.Field("inner")
	require.NoError(t, err)
	require.NoError(t, nested.(*Record).Set("x", "changed"))
	require.NoError(t, c.Set("a", 2))

	xs, _ := c.Get("xs")
	xs.(Vector[int])[0] = 100

	assert.Equal(t, 1, r.GetOr("a", nil))
	innerX, _ := inner.Get("x")
	assert.Equal(t, []int{1, 2}, innerX)
	assert.Equal(t, Vec(1, 2, 3), r.GetOr("xs", nil))
}

func TestRecord_Freeze(t *testing.T) {
	r := New(nil, Pair("a", 1))
	f := r.Freeze()
	require.NoError(t, r.Set("a", 2))
	assert.Equal(t, 1, f.GetOr("a", nil))
}

func TestRecord_String(t *testing.T) {
	r := New(nil, Pair("b", 1), Pair("a", "x"), Pair("n", NewMap(Pair("k", 2))))
	assert.Equal(t, `Record(b=1, a="x", n={k=2})`, r.String())
	assert.Equal(t, "Record()", New(nil).String())
}

func TestRecord_Pretty(t *testing.T) {
	r := New(nil, Pair("b", 1), Pair("a", NewMap(Pair("k", "v"))))
	want := "Record(\n" +
		"    a = {\n" +
		"        k = \"v\",\n" +
		"    },\n" +
		"    b = 1,\n" +
		")"
	assert.Equal(t, want, r.Pretty())
	assert.Equal(t, "Record()", New(nil).Pretty())
}

func TestRecord_PrettyCycle(t *testing.T) {
	m := NewMap()
	m.Set("self", m)
	out := New(m).Pretty()
	assert.Contains(t, out, "<recurse>")
}

func TestEqual(t *testing.T) {
	a := New(nil, Pair("a", 1), Pair("n", NewMap(Pair("x", 1), Pair("y", 2))))
	b := New(nil, Pair("n", NewMap(Pair("y", 2), Pair("x", 1))), Pair("a", 1))
	assert.True(t, Equal(a, b), "order does not matter")
	assert.True(t, Equal(a, Freeze(a.Map())))

	c := New(nil, Pair("a", 1), Pair("n", NewMap(Pair("x", 1))))
	assert.False(t, Equal(a, c))

	d := New(nil, Pair("a", 2), Pair("n", NewMap(Pair("x", 1), Pair("y", 2))))
	assert.False(t, Equal(a, d))
}

func TestZeroValues(t *testing.T) {
	var r Record
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Has("a"))
	require.NoError(t, r.SetField("a", 1))
	assert.Equal(t, 1, r.GetOr("a", nil))
	assert.Equal(t, "Record(a=1)", r.String())

	var f Frozen
	assert.Equal(t, 0, f.Len())
	assert.Empty(t, f.FieldNames())
	_, err := f.Hash()
	require.NoError(t, err)
	assert.ErrorIs(t, f.Set("a", 1), ErrFrozen)

	var h Hooked
	assert.Equal(t, 0, h.Len())
	assert.ErrorIs(t, h.Set("a", 1), ErrInsertNotAllowed)
	assert.ErrorIs(t, h.Clear(), ErrDeleteNotAllowed)
}

func TestEqual_Nil(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, New(nil)))
	assert.False(t, Equal(New(nil), nil))

	var nilRecord *Record
	assert.False(t, Equal(nilRecord, New(nil)))
	assert.True(t, Equal(nilRecord, (*Frozen)(nil)))
}

func TestErrorsArePolicyViolations(t *testing.T) {
	for _, err := range []error{ErrFrozen, ErrInconsistent, ErrInsertNotAllowed, ErrReplaceNotAllowed, ErrDeleteNotAllowed} {
		assert.True(t, errors.Is(err, ErrPolicyViolation), err.Error())
	}
	assert.False(t, errors.Is(ErrNothingIndexable, ErrPolicyViolation))
}
