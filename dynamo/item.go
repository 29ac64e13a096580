// Package dynamo converts between DynamoDB items and records.
package dynamo

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/bunch/record"
)

var (
	// ErrUnsupportedAttribute is returned for attribute values that cannot be
	// decoded.
	ErrUnsupportedAttribute = errors.New("dynamo: unsupported attribute value")

	// ErrUnsupportedValue is returned for record values that cannot be encoded.
	ErrUnsupportedValue = errors.New("dynamo: unsupported record value")
)

// FromItem decodes a DynamoDB item into a Record. Attributes are inserted in
// sorted order. Nested maps become *record.Map values.
func FromItem(item map[string]types.AttributeValue, optFns ...func(*Options)) (*record.Record, error) {
	m, err := decodeMap(item, resolve(optFns))
	if err != nil {
		return nil, err
	}
	return record.New(m), nil
}

// FreezeItem decodes a DynamoDB item into a Frozen record.
func FreezeItem(item map[string]types.AttributeValue, optFns ...func(*Options)) (*record.Frozen, error) {
	m, err := decodeMap(item, resolve(optFns))
	if err != nil {
		return nil, err
	}
	return record.Freeze(m), nil
}

func decodeMap(item map[string]types.AttributeValue, o Options) (*record.Map, error) {
	m := record.NewMap()
	for _, k := range slices.Sorted(maps.Keys(item)) {
		v, err := decode(item[k], o)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		m.Set(k, v)
	}
	return m, nil
}

func decode(av types.AttributeValue, o Options) (any, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, nil
	case *types.AttributeValueMemberN:
		return ParseNumber(v.Value)
	case *types.AttributeValueMemberBOOL:
		return v.Value, nil
	case *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberB:
		return v.Value, nil
	case *types.AttributeValueMemberM:
		return decodeMap(v.Value, o)
	case *types.AttributeValueMemberL:
		elems := make([]any, len(v.Value))
		for i, e := range v.Value {
			d, err := decode(e, o)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = d
		}
		return Column(elems, o.Vectorize), nil
	case *types.AttributeValueMemberSS:
		if o.Vectorize {
			return record.Vector[string](slices.Clone(v.Value)), nil
		}
		return slices.Clone(v.Value), nil
	case *types.AttributeValueMemberNS:
		elems := make([]any, len(v.Value))
		for i, s := range v.Value {
			n, err := ParseNumber(s)
			if err != nil {
				return nil, err
			}
			elems[i] = n
		}
		return Column(elems, o.Vectorize), nil
	case *types.AttributeValueMemberBS:
		return v.Value, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedAttribute, av)
	}
}

// ParseNumber decodes a DynamoDB number as int64 when it is integral and
// fits, float64 otherwise.
func ParseNumber(s string) (any, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: number %q", ErrUnsupportedAttribute, s)
	}
	return f, nil
}

// Column returns elems as a record.Vector when vectorize is set and every
// element is a string, or every element is a number. Mixed int64 and float64
// elements widen to float64. Anything else is returned unchanged.
func Column(elems []any, vectorize bool) any {
	if !vectorize || len(elems) == 0 {
		return elems
	}
	var strs, ints, floats int
	for _, e := range elems {
		switch e.(type) {
		case string:
			strs++
		case int64:
			ints++
		case float64:
			floats++
		}
	}
	switch n := len(elems); {
	case strs == n:
		out := make(record.Vector[string], n)
		for i, e := range elems {
			out[i] = e.(string)
		}
		return out
	case ints == n:
		out := make(record.Vector[int64], n)
		for i, e := range elems {
			out[i] = e.(int64)
		}
		return out
	case ints+floats == n:
		out := make(record.Vector[float64], n)
		for i, e := range elems {
			switch x := e.(type) {
			case int64:
				out[i] = float64(x)
			case float64:
				out[i] = x
			}
		}
		return out
	}
	return elems
}

// ToItem encodes a record as a DynamoDB item. Nested mappings become M
// attributes; everything else goes through attributevalue.Marshal.
func ToItem(m record.Mapping) (map[string]types.AttributeValue, error) {
	item := make(map[string]types.AttributeValue, m.Len())
	for k, v := range m.All() {
		av, err := encode(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		item[k] = av
	}
	return item, nil
}

func encode(v any) (types.AttributeValue, error) {
	switch x := v.(type) {
	case *record.Map:
		return encodeMapping(record.New(x))
	case record.Mapping:
		return encodeMapping(x)
	case []any:
		list := make([]types.AttributeValue, len(x))
		for i, e := range x {
			av, err := encode(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list[i] = av
		}
		return &types.AttributeValueMemberL{Value: list}, nil
	}
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
	}
	if av == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
	return av, nil
}

func encodeMapping(m record.Mapping) (types.AttributeValue, error) {
	item, err := ToItem(m)
	if err != nil {
		return nil, err
	}
	return &types.AttributeValueMemberM{Value: item}, nil
}

// Unmarshal decodes a record into out, which follows the rules of
// attributevalue.UnmarshalMap.
func Unmarshal(m record.Mapping, out any) error {
	item, err := ToItem(m)
	if err != nil {
		return err
	}
	return attributevalue.UnmarshalMap(item, out)
}

// IsExpired reports whether the attribute attr holds a Unix time at or before
// now. A missing or non-numeric attribute means the record has not expired.
func IsExpired(m record.Mapping, attr string, now time.Time) bool {
	v, ok := m.Lookup(attr)
	if !ok {
		return false
	}
	var ttl int64
	switch x := v.(type) {
	case int64:
		ttl = x
	case int:
		ttl = int64(x)
	case float64:
		ttl = int64(x)
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return false
		}
		ttl = n
	default:
		return false
	}
	return ttl <= now.Unix()
}
