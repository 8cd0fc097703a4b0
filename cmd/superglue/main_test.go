package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chessturo/super-glue/hashtable"
	"github.com/chessturo/super-glue/internal/args"
)

func openTestFiles(t *testing.T, contents string) *args.Files {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.cfg")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	files, err := args.OpenFiles([]string{path})
	require.NoError(t, err)
	t.Cleanup(files.Close)
	return files
}

func TestLoadInput(t *testing.T) {
	table := hashtable.New[[]byte]()
	defer table.Destroy(nil)

	n := loadInput(table, []byte("a=1\n\nno-separator\nb=2\na=3\n"))

	require.Equal(t, 3, n)
	require.Equal(t, 2, table.Len())
	require.Equal(t, []byte("3"), *table.Get([]byte("a"), 1))
	require.Equal(t, []byte("2"), *table.Get([]byte("b"), 1))
}

func TestLoadLive(t *testing.T) {
	files := openTestFiles(t, "one=un\ntwo=deux\n")

	table := hashtable.New[[]byte]()
	defer table.Destroy(nil)

	loadLive(context.Background(), table, files)

	require.Equal(t, 2, table.Len())
	require.Equal(t, []byte("un"), *table.Get([]byte("one"), 3))
}

func TestLoadLiveCancelledContext(t *testing.T) {
	files := openTestFiles(t, "one=un\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table := hashtable.New[[]byte]()
	loadLive(ctx, table, files)

	// loadLive must not return while the loader can still touch the
	// table; destroying and reusing it now has to be safe.
	require.Equal(t, 0, table.Len())
	table.Destroy(nil)

	_, _, ok := table.Set([]byte("k"), 1, nil)
	require.False(t, ok)
}
