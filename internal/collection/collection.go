// Package collection provides pure operations over the ordered
// sub-entry sequences nested inside posts and profiles (likes,
// comments, experience). The functions never mutate their input;
// callers persist the returned sequence.
package collection

import "errors"

// ErrNotFound indicates no entry with the requested key exists.
var ErrNotFound = errors.New("entry not found")

// InsertFront returns a new sequence with entry prepended.
// New entries are always most-recent-first by insertion order,
// regardless of any date field inside the entry.
func InsertFront[E any](seq []E, entry E) []E {
	out := make([]E, 0, len(seq)+1)
	out = append(out, entry)
	return append(out, seq...)
}

// AddUnique prepends entry unless an entry with the same key already
// exists. When a duplicate is found it returns the input sequence
// unchanged and alreadyPresent=true; callers treat that as a conflict,
// not a silent success.
func AddUnique[E any, K comparable](seq []E, keyOf func(E) K, entry E) (out []E, alreadyPresent bool) {
	k := keyOf(entry)
	for _, e := range seq {
		if keyOf(e) == k {
			return seq, true
		}
	}
	return InsertFront(seq, entry), false
}

// RemoveByKey removes the first entry whose key equals k, preserving
// the relative order of the rest. Removal is positional: duplicate
// keys lose only the first match. Returns ErrNotFound, with the input
// sequence unchanged, when no entry matches.
func RemoveByKey[E any, K comparable](seq []E, keyOf func(E) K, k K) ([]E, error) {
	for i, e := range seq {
		if keyOf(e) == k {
			out := make([]E, 0, len(seq)-1)
			out = append(out, seq[:i]...)
			return append(out, seq[i+1:]...), nil
		}
	}
	return seq, ErrNotFound
}
