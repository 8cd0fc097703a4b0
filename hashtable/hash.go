package hashtable

const (
	fnvOffsetBasis uint64 = 0xcbf29ce484222325
	fnvPrime       uint64 = 0x100000001b3
)

// fnv1a64 computes the 64-bit Fowler-Noll-Vo 1a hash of data. A public
// domain reference implementation can be found on Landon Curt Noll's
// webpage: <http://www.isthe.com/chongo/src/fnv/hash_64.c>
func fnv1a64(data []byte) uint64 {
	hash := fnvOffsetBasis
	for _, b := range data {
		hash ^= uint64(b)
		hash *= fnvPrime
	}
	return hash
}
