package hashtable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilTable(t *testing.T) {
	var tbl *Table[string]

	require.Equal(t, -1, tbl.Len())

	_, _, ok := tbl.Set([]byte("k"), 1, "v")
	require.False(t, ok)

	require.Nil(t, tbl.Get([]byte("k"), 1))

	_, ok = tbl.Delete([]byte("k"), 1)
	require.False(t, ok)

	require.Nil(t, tbl.Iterate())
	tbl.Destroy(nil) // must not panic
}

func TestNilKey(t *testing.T) {
	tbl := New[string]()

	_, _, ok := tbl.Set(nil, 0, "v")
	require.False(t, ok)
	require.Equal(t, 0, tbl.Len())

	require.Nil(t, tbl.Get(nil, 0))

	_, ok = tbl.Delete(nil, 0)
	require.False(t, ok)
}

func TestSetGetDelete(t *testing.T) {
	tbl := New[string]()

	for _, kv := range [][2]string{{"one", "un"}, {"two", "deux"}, {"three", "trois"}} {
		_, replaced, ok := tbl.Set([]byte(kv[0]), len(kv[0]), kv[1])
		require.True(t, ok)
		require.False(t, replaced)
	}
	require.Equal(t, 3, tbl.Len())

	v := tbl.Get([]byte("one"), 3)
	require.NotNil(t, v)
	require.Equal(t, "un", *v)

	old, ok := tbl.Delete([]byte("two"), 3)
	require.True(t, ok)
	require.Equal(t, "deux", old)
	require.Equal(t, 2, tbl.Len())

	require.Nil(t, tbl.Get([]byte("two"), 3))
}

func TestOverwrite(t *testing.T) {
	tbl := New[string]()

	_, replaced, ok := tbl.Set([]byte("key"), 3, "first")
	require.True(t, ok)
	require.False(t, replaced)
	require.Equal(t, 1, tbl.Len())

	old, replaced, ok := tbl.Set([]byte("key"), 3, "second")
	require.True(t, ok)
	require.True(t, replaced)
	require.Equal(t, "first", old)
	require.Equal(t, 1, tbl.Len())

	require.Equal(t, "second", *tbl.Get([]byte("key"), 3))
}

func TestDeleteMiss(t *testing.T) {
	tbl := New[string]()
	tbl.Set([]byte("present"), 7, "here")

	_, ok := tbl.Delete([]byte("absent"), 6)
	require.False(t, ok)
	require.Equal(t, 1, tbl.Len())
}

func TestKeyLenZeroConvention(t *testing.T) {
	tbl := New[string]()

	_, _, ok := tbl.Set([]byte("alpha"), 5, "v")
	require.True(t, ok)

	// A zero keyLen means "scan to the terminator"; trailing bytes after
	// the 0x00 are not part of the key.
	v := tbl.Get([]byte("alpha\x00junk"), 0)
	require.NotNil(t, v)
	require.Equal(t, "v", *v)

	// The convention also applies on insert.
	old, replaced, ok := tbl.Set([]byte("alpha\x00other-junk"), 0, "w")
	require.True(t, ok)
	require.True(t, replaced)
	require.Equal(t, "v", old)
	require.Equal(t, 1, tbl.Len())

	// Without a terminator, the whole slice is the key.
	_, replaced, _ = tbl.Set([]byte("alpha"), 0, "x")
	require.True(t, replaced)
}

func TestGetReturnsAliasingReference(t *testing.T) {
	tbl := New[int]()
	tbl.Set([]byte("n"), 1, 1)

	p := tbl.Get([]byte("n"), 1)
	require.NotNil(t, p)
	*p = 99

	require.Equal(t, 99, *tbl.Get([]byte("n"), 1))
}

func TestKeyIsCopiedOnInsert(t *testing.T) {
	tbl := New[string]()

	key := []byte("stable")
	tbl.Set(key, len(key), "v")
	key[0] = 'X' // caller scribbles on its own buffer

	require.NotNil(t, tbl.Get([]byte("stable"), 6))
	require.Nil(t, tbl.Get([]byte("Xtable"), 6))
}

func TestSingleBucketChains(t *testing.T) {
	// One bucket forces every entry onto the same chain.
	tbl := New[int](WithBuckets(1))

	for i := 0; i < 50; i++ {
		key := []byte(fmt.Sprintf("key-%d", i))
		_, replaced, ok := tbl.Set(key, len(key), i)
		require.True(t, ok)
		require.False(t, replaced)
	}
	require.Equal(t, 50, tbl.Len())

	for i := 0; i < 50; i++ {
		key := []byte(fmt.Sprintf("key-%d", i))
		v := tbl.Get(key, len(key))
		require.NotNil(t, v)
		require.Equal(t, i, *v)
	}

	for i := 0; i < 50; i += 2 {
		key := []byte(fmt.Sprintf("key-%d", i))
		v, ok := tbl.Delete(key, len(key))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Equal(t, 25, tbl.Len())
}

func TestHashOnlyPolicy(t *testing.T) {
	tbl := New[string](WithEquality(HashOnly))

	tbl.Set([]byte("a"), 1, "1")
	tbl.Set([]byte("b"), 1, "2")
	require.Equal(t, 2, tbl.Len())

	require.Equal(t, "1", *tbl.Get([]byte("a"), 1))
	require.Equal(t, "2", *tbl.Get([]byte("b"), 1))

	old, ok := tbl.Delete([]byte("a"), 1)
	require.True(t, ok)
	require.Equal(t, "1", old)
}

func TestDestroyInvokesValueFreeOncePerEntry(t *testing.T) {
	tbl := New[string]()
	tbl.Set([]byte("a"), 1, "va")
	tbl.Set([]byte("b"), 1, "vb")
	tbl.Set([]byte("c"), 1, "vc")

	// Handed-back values must not reach the destructor.
	_, ok := tbl.Delete([]byte("b"), 1)
	require.True(t, ok)

	freed := map[string]int{}
	tbl.Destroy(func(v string) { freed[v]++ })

	require.Equal(t, map[string]int{"va": 1, "vc": 1}, freed)
	require.Equal(t, 0, tbl.Len())
}

func TestDestroyedTableRejectsOperations(t *testing.T) {
	tbl := New[string]()
	tbl.Set([]byte("k"), 1, "v")
	tbl.Destroy(nil)

	// A destroyed table must fail like a nil one, not panic on its empty
	// bucket array.
	_, _, ok := tbl.Set([]byte("k"), 1, "v")
	require.False(t, ok)

	require.Nil(t, tbl.Get([]byte("k"), 1))

	_, ok = tbl.Delete([]byte("k"), 1)
	require.False(t, ok)

	require.Equal(t, 0, tbl.Len())
	require.False(t, tbl.Iterate().Valid())
}

func TestManyDistinctKeys(t *testing.T) {
	tbl := New[int]()

	const n = 1000
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("key-%04d", i))
		tbl.Set(key, len(key), i)
	}
	require.Equal(t, n, tbl.Len())

	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("key-%04d", i))
		v := tbl.Get(key, len(key))
		require.NotNil(t, v)
		require.Equal(t, i, *v)
	}
}

func BenchmarkTableSet(b *testing.B) {
	tbl := New[int](WithBuckets(1024))
	keys := make([][]byte, 1024)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("bench-key-%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[i%len(keys)]
		tbl.Set(key, len(key), i)
	}
}

func BenchmarkTableGet(b *testing.B) {
	tbl := New[int](WithBuckets(1024))
	keys := make([][]byte, 1024)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("bench-key-%d", i))
		tbl.Set(keys[i], len(keys[i]), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[i%len(keys)]
		if tbl.Get(key, len(key)) == nil {
			b.Fatal("missing key")
		}
	}
}
