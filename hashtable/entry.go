package hashtable

// entry is one key/value record stored in a bucket chain. The key slice is
// a private copy owned by the table; the value belongs to the caller and is
// only handed to the destructor at Destroy time.
type entry[V any] struct {
	hash  uint64
	key   []byte
	value V
}
