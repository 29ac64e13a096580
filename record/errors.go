package record

import (
	"errors"
	"fmt"

	"github.com/jacentio/bunch/internal/digest"
)

var (
	// ErrKeyNotFound is returned when a key is absent on read or delete.
	ErrKeyNotFound = errors.New("bunch: key not found")

	// ErrNoField is returned by the field accessors for a missing key.
	// It is always joined with ErrKeyNotFound.
	ErrNoField = errors.New("bunch: no such field")

	// ErrPolicyViolation is the parent of every write-policy error.
	ErrPolicyViolation = errors.New("bunch: policy violation")

	// ErrFrozen is returned for any mutation of a Frozen record.
	ErrFrozen = fmt.Errorf("%w: record is frozen", ErrPolicyViolation)

	// ErrInconsistent is returned when a Consistent record is written with a
	// value that differs from the one already stored.
	ErrInconsistent = fmt.Errorf("%w: inconsistent data", ErrPolicyViolation)

	// ErrInsertNotAllowed is returned when a Hooked record has no insert hook.
	ErrInsertNotAllowed = fmt.Errorf("%w: insertion not allowed (hook not defined)", ErrPolicyViolation)

	// ErrReplaceNotAllowed is returned when a Hooked record has no replace hook.
	ErrReplaceNotAllowed = fmt.Errorf("%w: replacement not allowed (hook not defined)", ErrPolicyViolation)

	// ErrDeleteNotAllowed is returned when a Hooked record has no delete hook.
	ErrDeleteNotAllowed = fmt.Errorf("%w: deletion not allowed (hook not defined)", ErrPolicyViolation)

	// ErrNothingIndexable is returned when a selector is applied to a record
	// holding no Array values.
	ErrNothingIndexable = errors.New("bunch: not holding arrays to index")

	// ErrNotArray is returned by DomainSort when the sort key is not an Array.
	ErrNotArray = errors.New("bunch: value is not an array")

	// ErrIndexOutOfRange is returned when a selector addresses a position
	// outside an array.
	ErrIndexOutOfRange = errors.New("bunch: index out of range")

	// ErrInvalidSelector is returned for malformed selectors.
	ErrInvalidSelector = errors.New("bunch: invalid selector")

	// ErrEmpty is returned by PopItem on an empty record.
	ErrEmpty = errors.New("bunch: record is empty")

	// ErrUnsupportedSource is returned by Update and AsRecord for inputs that
	// are neither mappings nor pair sequences.
	ErrUnsupportedSource = errors.New("bunch: unsupported source")

	// ErrUnhashable is returned by Frozen.Hash when a value cannot be hashed.
	ErrUnhashable = digest.ErrUnhashable
)

func missing(key string) error {
	return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
}

func noField(name string, cause error) error {
	return fmt.Errorf("%w %q: %w", ErrNoField, name, cause)
}
