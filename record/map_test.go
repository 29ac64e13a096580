package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := NewMap(Pair("b", 1), Pair("a", 2), Pair("c", 3))
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	assert.Equal(t, []any{1, 2, 3}, m.Values())

	m.Set("a", 20)
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys(), "overwrite keeps position")

	m.Set("d", 4)
	assert.Equal(t, []string{"b", "a", "c", "d"}, m.Keys())
}

func TestMap_DuplicateItemsOverwrite(t *testing.T) {
	m := NewMap(Pair("a", 1), Pair("a", 2))
	assert.Equal(t, 1, m.Len())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestMap_MapFromSortsKeys(t *testing.T) {
	m := MapFrom(map[string]any{"z": 1, "a": 2, "m": 3})
	assert.Equal(t, []string{"a", "m", "z"}, m.Keys())
}

func TestMap_Delete(t *testing.T) {
	m := NewMap(Pair("a", 1), Pair("b", 2), Pair("c", 3))

	v, ok := m.Delete("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, []string{"a", "c"}, m.Keys())

	_, ok = m.Delete("b")
	assert.False(t, ok)
}

func TestMap_SetDefault(t *testing.T) {
	m := NewMap(Pair("a", 1))

	v, loaded := m.SetDefault("a", 99)
	assert.True(t, loaded)
	assert.Equal(t, 1, v)

	v, loaded = m.SetDefault("b", 2)
	assert.False(t, loaded)
	assert.Equal(t, 2, v)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestMap_PopItemIsLIFO(t *testing.T) {
	m := NewMap(Pair("a", 1), Pair("b", 2))

	it, ok := m.PopItem()
	require.True(t, ok)
	assert.Equal(t, Pair("b", 2), it)

	it, ok = m.PopItem()
	require.True(t, ok)
	assert.Equal(t, Pair("a", 1), it)

	_, ok = m.PopItem()
	assert.False(t, ok)
}

func TestMap_ZeroValueUsable(t *testing.T) {
	var m Map
	m.Set("a", 1)
	assert.Equal(t, 1, m.Len())
}

func TestMap_CloneIsShallow(t *testing.T) {
	inner := NewMap(Pair("x", 1))
	m := NewMap(Pair("a", 1), Pair("inner", inner))

	c := m.Clone()
	c.Set("a", 2)
	c.Set("b", 3)

	v, _ := m.Get("a")
	assert.Equal(t, 1, v)
	_, ok := m.Get("b")
	assert.False(t, ok)

	cv, _ := c.Get("inner")
	assert.Same(t, inner, cv)
}

func TestMap_AllStopsEarly(t *testing.T) {
	m := NewMap(Pair("a", 1), Pair("b", 2), Pair("c", 3))
	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestMap_Clear(t *testing.T) {
	m := NewMap(Pair("a", 1))
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
	m.Set("b", 2)
	assert.Equal(t, []string{"b"}, m.Keys())
}
