// Package hashtable provides a hash table keyed by byte strings, built from
// a fixed array of linked-list buckets. The bucket count is fixed for the
// table's lifetime; there is no growth or rehashing.
package hashtable

import (
	"bytes"

	"github.com/chessturo/super-glue/linkedlist"
)

// Equality selects how two keys are compared once their hashes match.
type Equality int

const (
	// CollisionResistant considers two keys equal only if their hashes
	// match and their raw bytes match exactly.
	CollisionResistant Equality = iota

	// HashOnly treats hash equality as key equality. Faster, but wrong in
	// the presence of a genuine 64-bit hash collision.
	HashOnly
)

const defaultBuckets = 8

type config struct {
	buckets  int
	equality Equality
}

// Option configures a Table at construction time.
type Option func(*config)

// WithBuckets sets the number of buckets, fixed for the table's lifetime.
// Values below 1 are ignored.
func WithBuckets(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.buckets = n
		}
	}
}

// WithEquality selects the key equality policy.
func WithEquality(eq Equality) Option {
	return func(c *config) {
		c.equality = eq
	}
}

// Table maps byte-string keys to values of type V. A nil *Table is accepted
// by every method and reported as an error result.
type Table[V any] struct {
	buckets  []*linkedlist.List[*entry[V]]
	equality Equality
	count    int
}

// New returns an empty table with 8 buckets and the CollisionResistant
// equality policy unless overridden by options.
func New[V any](opts ...Option) *Table[V] {
	cfg := config{buckets: defaultBuckets, equality: CollisionResistant}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Table[V]{
		buckets:  make([]*linkedlist.List[*entry[V]], cfg.buckets),
		equality: cfg.equality,
	}
	for i := range t.buckets {
		t.buckets[i] = linkedlist.New[*entry[V]]()
	}
	return t
}

// Destroy empties the table, passing every stored value to valueFree exactly
// once. Pass nil if the values need no teardown. Values previously handed
// back by Set, Delete or Iterator.Remove are not seen by valueFree; the
// caller owns those. No-op on a nil table. A destroyed table behaves like a
// nil table for every later operation.
func (t *Table[V]) Destroy(valueFree func(V)) {
	if t == nil {
		return
	}

	for _, bucket := range t.buckets {
		bucket.Destroy(func(e *entry[V]) {
			if valueFree != nil {
				valueFree(e.value)
			}
			e.key = nil
		})
	}

	t.buckets = nil
	t.count = 0
}

// Len returns the number of entries in the table, or -1 if the table is nil.
func (t *Table[V]) Len() int {
	if t == nil {
		return -1
	}
	return t.count
}

// normalizeKey applies the key length convention: a keyLen of exactly zero
// means the key runs up to (and excludes) the first 0x00 byte, or the whole
// slice if there is none. Otherwise the key is key[:keyLen].
func normalizeKey(key []byte, keyLen int) []byte {
	if keyLen == 0 {
		if i := bytes.IndexByte(key, 0); i >= 0 {
			return key[:i]
		}
		return key
	}
	return key[:keyLen]
}

func (t *Table[V]) bucketFor(hash uint64) *linkedlist.List[*entry[V]] {
	return t.buckets[hash%uint64(len(t.buckets))]
}

// advanceToMatch moves iter to the first entry in its chain that matches
// hash under the table's equality policy. Returns whether a match was found.
func (t *Table[V]) advanceToMatch(iter *linkedlist.Iterator[*entry[V]], hash uint64, key []byte) bool {
	for iter.Valid() {
		e := *iter.Get()
		if e.hash == hash {
			if t.equality == HashOnly || bytes.Equal(e.key, key) {
				return true
			}
		}
		iter.Next()
	}
	return false
}

// Set maps key to value, copying the key bytes into the table. If the key
// was already present the previous value is returned with replaced true and
// the entry count is unchanged; otherwise the count grows by one. The new
// entry always lands at the head of its bucket chain. Returns ok false, with
// no mutation, if the table is nil or destroyed or the key is nil. keyLen
// follows the normalizeKey
// convention and must not exceed len(key).
func (t *Table[V]) Set(key []byte, keyLen int, value V) (old V, replaced bool, ok bool) {
	if t == nil || len(t.buckets) == 0 || key == nil {
		return
	}

	k := normalizeKey(key, keyLen)
	hash := fnv1a64(k)

	// Build the replacement entry up front so the table never holds a
	// half-initialized record.
	keyCopy := make([]byte, len(k))
	copy(keyCopy, k)
	e := &entry[V]{hash: hash, key: keyCopy, value: value}

	bucket := t.bucketFor(hash)
	iter := bucket.Iterate()
	if t.advanceToMatch(iter, hash, k) {
		prev, _ := iter.Remove()
		old = prev.value
		prev.key = nil
		replaced = true
	}

	bucket.Prepend(e)
	if !replaced {
		t.count++
	}
	return old, replaced, true
}

// Get returns a pointer to the value slot stored for key, through which the
// stored value may be mutated in place. Returns nil if the table is nil or
// destroyed, the key is nil, or the key is not present.
func (t *Table[V]) Get(key []byte, keyLen int) *V {
	if t == nil || len(t.buckets) == 0 || key == nil {
		return nil
	}

	k := normalizeKey(key, keyLen)
	hash := fnv1a64(k)

	iter := t.bucketFor(hash).Iterate()
	if !t.advanceToMatch(iter, hash, k) {
		return nil
	}
	return &(*iter.Get()).value
}

// Delete removes key's entry and returns its value. Returns the zero value
// and false, with no mutation, if the table is nil or destroyed, the key is
// nil, or the key is not
// present.
func (t *Table[V]) Delete(key []byte, keyLen int) (old V, ok bool) {
	if t == nil || len(t.buckets) == 0 || key == nil {
		return
	}

	k := normalizeKey(key, keyLen)
	hash := fnv1a64(k)

	iter := t.bucketFor(hash).Iterate()
	if !t.advanceToMatch(iter, hash, k) {
		return
	}

	e, _ := iter.Remove()
	old = e.value
	e.key = nil
	t.count--
	return old, true
}
