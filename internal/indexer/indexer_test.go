package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mibcontext-mcp/internal/storage"
	"github.com/dshills/mibcontext-mcp/pkg/types"
)

const testMIB = `TEST-MIB DEFINITIONS ::= BEGIN
IMPORTS
    OBJECT-TYPE, enterprises FROM SNMPv2-SMI;

testRoot OBJECT IDENTIFIER ::= { enterprises 9999 }

testStatus OBJECT-TYPE
    SYNTAX INTEGER { up(1), down(2) }
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION "Operational state of the test device."
    ::= { testRoot 1 }

END
`

func newTestIndexer(t *testing.T) (*Indexer, *storage.SQLiteStorage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store, zerolog.Nop()), store
}

func writeMIB(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndexSet(t *testing.T) {
	idx, store := newTestIndexer(t)
	ctx := context.Background()

	root := t.TempDir()
	writeMIB(t, root, "TEST-MIB.mib", testMIB)

	stats, err := idx.IndexSet(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)
	assert.Equal(t, 2, stats.ObjectsResolved)
	assert.Zero(t, stats.FilesFailed)

	set, err := store.GetSet(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, set.TotalFiles)
	assert.Equal(t, 2, set.TotalObjects)

	obj, err := store.GetObjectByName(ctx, set.ID, "testStatus")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.4.1.9999.1", obj.OID)

	values, err := store.ListEnumValues(ctx, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "up", 2: "down"}, values)

	file, err := store.GetFile(ctx, set.ID, "TEST-MIB.mib")
	require.NoError(t, err)
	assert.Equal(t, "TEST-MIB", file.ModuleName)

	imports, err := store.ListImportsByFile(ctx, file.ID)
	require.NoError(t, err)
	assert.Contains(t, imports, "enterprises")
}

func TestIndexSet_SkipsUnchangedFiles(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	root := t.TempDir()
	writeMIB(t, root, "TEST-MIB.mib", testMIB)

	stats, err := idx.IndexSet(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)

	stats, err = idx.IndexSet(ctx, root, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.FilesIndexed)
	assert.Equal(t, 1, stats.FilesSkipped)
}

func TestIndexSet_ReindexesChangedFile(t *testing.T) {
	idx, store := newTestIndexer(t)
	ctx := context.Background()

	root := t.TempDir()
	writeMIB(t, root, "TEST-MIB.mib", testMIB)

	_, err := idx.IndexSet(ctx, root, nil)
	require.NoError(t, err)

	changed := `TEST-MIB DEFINITIONS ::= BEGIN
testRoot OBJECT IDENTIFIER ::= { enterprises 8888 }
END
`
	writeMIB(t, root, "TEST-MIB.mib", changed)

	stats, err := idx.IndexSet(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)

	set, err := store.GetSet(ctx, root)
	require.NoError(t, err)

	// The old objects are gone and the new OID is in place.
	_, err = store.GetObjectByName(ctx, set.ID, "testStatus")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	obj, err := store.GetObjectByName(ctx, set.ID, "testRoot")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.4.1.8888", obj.OID)
}

func TestIndexSet_RecordsParseFailure(t *testing.T) {
	idx, store := newTestIndexer(t)
	ctx := context.Background()

	root := t.TempDir()
	writeMIB(t, root, "BROKEN-MIB.mib", "no module header here\n")
	writeMIB(t, root, "TEST-MIB.mib", testMIB)

	stats, err := idx.IndexSet(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)
	assert.Equal(t, 1, stats.FilesFailed)
	require.Len(t, stats.ErrorMessages, 1)
	assert.Contains(t, stats.ErrorMessages[0], "BROKEN-MIB.mib")

	set, err := store.GetSet(ctx, root)
	require.NoError(t, err)
	file, err := store.GetFile(ctx, set.ID, "BROKEN-MIB.mib")
	require.NoError(t, err)
	require.NotNil(t, file.ParseError)
	assert.Equal(t, types.ErrMissingModuleHeader.Error(), *file.ParseError)
}

func TestIndexSet_StoresWarnings(t *testing.T) {
	idx, store := newTestIndexer(t)
	ctx := context.Background()

	root := t.TempDir()
	writeMIB(t, root, "ORPHAN-MIB.mib", `ORPHAN-MIB DEFINITIONS ::= BEGIN
orphan OBJECT IDENTIFIER ::= { nowhere 1 }
END
`)

	stats, err := idx.IndexSet(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Warnings)

	set, err := store.GetSet(ctx, root)
	require.NoError(t, err)
	file, err := store.GetFile(ctx, set.ID, "ORPHAN-MIB.mib")
	require.NoError(t, err)

	warnings, err := store.ListWarningsByFile(ctx, file.ID)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "orphan", warnings[0].Symbol)
	assert.Equal(t, types.StateUnresolved, warnings[0].State)
}

func TestIndexSet_IgnoresOtherExtensions(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	root := t.TempDir()
	writeMIB(t, root, "README.md", "not a mib\n")
	writeMIB(t, root, "TEST-MIB.my", testMIB)

	stats, err := idx.IndexSet(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)
	assert.Zero(t, stats.FilesFailed)
}

func TestIndexLock(t *testing.T) {
	var lock IndexLock
	assert.True(t, lock.TryAcquire())
	assert.False(t, lock.TryAcquire())
	lock.Release()
	assert.True(t, lock.TryAcquire())
}
