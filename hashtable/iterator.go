package hashtable

import (
	"github.com/chessturo/super-glue/linkedlist"
)

// Iterator provides a single logical traversal over every entry in a Table,
// visiting buckets in index order and skipping empty ones. Like a list
// iterator it is a weak view: mutating the table through any route other
// than the iterator's own Remove invalidates it.
type Iterator[V any] struct {
	table      *Table[V]
	bucketIdx  int
	bucketIter *linkedlist.Iterator[*entry[V]]
}

// Iterate returns an iterator positioned at the table's first entry, or an
// immediately-invalid iterator if the table is empty. Returns nil if the
// table is nil.
func (t *Table[V]) Iterate() *Iterator[V] {
	if t == nil {
		return nil
	}

	it := &Iterator[V]{table: t}
	if t.count == 0 {
		return it
	}

	// count > 0 guarantees a non-empty bucket ahead of us.
	it.bucketIter = t.buckets[0].Iterate()
	for !it.bucketIter.Valid() {
		it.bucketIdx++
		it.bucketIter = t.buckets[it.bucketIdx].Iterate()
	}
	return it
}

// Valid reports whether the iterator is positioned at a real entry.
func (it *Iterator[V]) Valid() bool {
	if it == nil || it.table.count == 0 {
		return false
	}
	return it.bucketIter.Valid()
}

// Next advances to the next entry, moving on to the next non-empty bucket
// when the current chain is exhausted. Returns whether the iterator is
// valid afterwards.
func (it *Iterator[V]) Next() bool {
	if !it.Valid() {
		return false
	}

	if !it.bucketIter.Next() {
		for {
			if it.bucketIdx == len(it.table.buckets)-1 {
				it.bucketIter = nil
				return false
			}
			it.bucketIdx++
			it.bucketIter = it.table.buckets[it.bucketIdx].Iterate()
			if it.bucketIter.Valid() {
				break
			}
		}
	}
	return true
}

// Get returns the current entry's key and value without mutating the table.
// The key slice aliases the table's private copy; do not modify it. Fails
// if the iterator is invalid.
func (it *Iterator[V]) Get() (key []byte, value V, ok bool) {
	if !it.Valid() {
		return
	}
	e := *it.bucketIter.Get()
	return e.key, e.value, true
}

// Remove captures the current entry's key and value, advances the iterator
// past it, then removes the entry from the table, so the iterator is never
// left on a removed entry. The returned key slice is the copy the table
// owned and now belongs to the caller. Fails without mutation if the
// iterator is invalid.
func (it *Iterator[V]) Remove() (key []byte, value V, ok bool) {
	if !it.Valid() {
		return
	}

	e := *it.bucketIter.Get()
	key = e.key

	it.Next()

	value, _ = it.table.Delete(key, len(key))
	return key, value, true
}
