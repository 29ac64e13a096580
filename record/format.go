package record

import (
	"fmt"
	"slices"
	"strings"
)

// format renders name(k=v, ...) in iteration order.
func format(name string, m *Map) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	writePairs(&b, m)
	b.WriteByte(')')
	return b.String()
}

func writePairs(b *strings.Builder, m *Map) {
	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k)
		b.WriteByte('=')
		writeValue(b, v)
	}
}

func writeValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case string:
		fmt.Fprintf(b, "%q", x)
	case *Map:
		b.WriteByte('{')
		writePairs(b, x)
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%v", x)
	}
}

// pretty renders name( ... ) one pair per line with keys sorted. Nested maps
// are indented by four spaces per level.
func pretty(name string, m *Map) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	writePretty(&b, m, 1, map[*Map]bool{})
	b.WriteByte(')')
	return b.String()
}

func writePretty(b *strings.Builder, m *Map, depth int, seen map[*Map]bool) {
	if m.Len() == 0 {
		return
	}
	seen[m] = true
	defer delete(seen, m)

	indent := strings.Repeat("    ", depth)
	b.WriteByte('\n')
	for _, k := range slices.Sorted(slices.Values(m.keys)) {
		v, _ := m.Get(k)
		b.WriteString(indent)
		b.WriteString(k)
		b.WriteString(" = ")
		switch x := v.(type) {
		case *Map:
			if seen[x] {
				b.WriteString("{<recurse>}")
			} else {
				b.WriteByte('{')
				writePretty(b, x, depth+1, seen)
				b.WriteByte('}')
			}
		case string:
			fmt.Fprintf(b, "%q", x)
		default:
			fmt.Fprintf(b, "%v", x)
		}
		b.WriteString(",\n")
	}
	b.WriteString(strings.Repeat("    ", depth-1))
}
