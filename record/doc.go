// Package record provides containers that expose the entries of an ordered
// key/value store as named fields.
//
// A record is handy for a structured bag of named values, such as the fields
// of a decoded item or a set of parallel columns, that should still support
// mapping-style access: iteration, lookup, bulk update.
//
// # Containers
//
// All containers wrap a [Map] and differ only in their write policy:
//
//   - [Record] writes straight through. Built from a single Map, it shares
//     that Map with the caller.
//   - [Frozen] copies its entries at construction and rejects every
//     mutation with [ErrFrozen]. It can be hashed with [Frozen.Hash].
//   - [Hooked] routes inserts, replacements and deletions through
//     caller-supplied [Hooks]. A change with no hook configured is rejected.
//   - [Consistent] accepts a write only if the key is absent or already holds
//     an equal value.
//
// Each container implements [MutableMapping].
//
// # Fields
//
// [Record.Field], [Record.SetField] and [Record.DelField] are the attribute
// accessors:
//
//	point := record.New(nil, record.Pair("datum", 2), record.Pair("squared", 4))
//	v, err := point.Field("datum")
//
// A field holding a *Map is returned wrapped in a new container of the same
// kind. The wrapper is built on every call, so two reads return two distinct
// containers over the same Map. [Record.Get] returns the stored value as is.
//
// # Columns
//
// Values implementing [Array], such as [Vector], can be indexed together.
// [Record.Index] applies one [Selector] ([Range], [Indices] or [Mask]) to
// every Array value and drops the rest:
//
//	ds := record.New(nil,
//	    record.Pair("xs", record.Vec(3, 1, 2)),
//	    record.Pair("ys", record.Vec("c", "a", "b")),
//	)
//	sorted, err := ds.DomainSort("xs") // xs=[1 2 3] ys=[a b c]
//
// # Errors
//
//   - [ErrKeyNotFound] - key absent on read or delete
//   - [ErrNoField] - field absent, always joined with ErrKeyNotFound
//   - [ErrPolicyViolation] - parent of [ErrFrozen], [ErrInconsistent],
//     [ErrInsertNotAllowed], [ErrReplaceNotAllowed], [ErrDeleteNotAllowed]
//   - [ErrNothingIndexable] - selector applied to a record with no arrays
//   - [ErrUnhashable] - Frozen value that cannot be hashed
//
// Containers are not safe for concurrent use. Records sharing a Map need
// external locking.
package record
