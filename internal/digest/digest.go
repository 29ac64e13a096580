// Package digest computes order-independent hashes of key/value pairs.
package digest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// ErrUnhashable is returned when a value has no stable hash.
var ErrUnhashable = errors.New("bunch: unhashable value")

// Hasher is implemented by values that hash themselves.
type Hasher interface {
	Hash() (uint64, error)
}

// Pairs hashes the pairs (k, value(k)) for every key, visiting keys in sorted
// order so the result does not depend on insertion order.
func Pairs(keys []string, value func(string) any) (uint64, error) {
	d := xxhash.New()
	var buf [8]byte
	for _, k := range slices.Sorted(slices.Values(keys)) {
		writeString(d, buf[:], k)
		if err := writeValue(d, buf[:], value(k)); err != nil {
			return 0, fmt.Errorf("%q: %w", k, err)
		}
	}
	return d.Sum64(), nil
}

func writeString(d *xxhash.Digest, buf []byte, s string) {
	binary.LittleEndian.PutUint64(buf, uint64(len(s)))
	d.Write(buf)
	d.WriteString(s)
}

func writeUint(d *xxhash.Digest, buf []byte, tag byte, u uint64) {
	d.Write([]byte{tag})
	binary.LittleEndian.PutUint64(buf, u)
	d.Write(buf)
}

func writeFloat(d *xxhash.Digest, buf []byte, f float64) {
	if f == 0 {
		f = 0 // -0 == 0
	}
	writeUint(d, buf, 'f', math.Float64bits(f))
}

// writeValue feeds a type tag and a canonical encoding of v into d.
func writeValue(d *xxhash.Digest, buf []byte, v any) error {
	switch x := v.(type) {
	case nil:
		d.Write([]byte{'z'})
	case bool:
		var u uint64
		if x {
			u = 1
		}
		writeUint(d, buf, 'b', u)
	case string:
		d.Write([]byte{'s'})
		writeString(d, buf, x)
	case int:
		writeUint(d, buf, 'i', uint64(x))
	case int8:
		writeUint(d, buf, 'i', uint64(x))
	case int16:
		writeUint(d, buf, 'i', uint64(x))
	case int32:
		writeUint(d, buf, 'i', uint64(x))
	case int64:
		writeUint(d, buf, 'i', uint64(x))
	case uint:
		writeUint(d, buf, 'u', uint64(x))
	case uint8:
		writeUint(d, buf, 'u', uint64(x))
	case uint16:
		writeUint(d, buf, 'u', uint64(x))
	case uint32:
		writeUint(d, buf, 'u', uint64(x))
	case uint64:
		writeUint(d, buf, 'u', x)
	case float32:
		writeFloat(d, buf, float64(x))
	case float64:
		writeFloat(d, buf, x)
	case Hasher:
		h, err := x.Hash()
		if err != nil {
			return err
		}
		writeUint(d, buf, 'h', h)
	default:
		rv := reflect.ValueOf(v)
		if !rv.Comparable() {
			return fmt.Errorf("%w: %T", ErrUnhashable, v)
		}
		d.Write([]byte{'r'})
		writeString(d, buf, fmt.Sprintf("%T:%v", v, v))
	}
	return nil
}
