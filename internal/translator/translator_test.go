package translator

import (
	"context"
	"crypto/sha256"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mibcontext-mcp/internal/storage"
	"github.com/dshills/mibcontext-mcp/pkg/types"
)

func newTestTranslator(t *testing.T) (*Translator, int64) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	set := &storage.MibSet{RootPath: "/opt/mibs", IndexVersion: "1.0.0"}
	require.NoError(t, store.CreateSet(ctx, set))

	hash := sha256.Sum256([]byte("fixture"))
	file := &storage.File{SetID: set.ID, FilePath: "SNMPv2-MIB.mib", ContentHash: hash}
	require.NoError(t, store.UpsertFile(ctx, file))

	objects := []*storage.Object{
		{FileID: file.ID, Name: "system", OID: "1.3.6.1.2.1.1",
			Description: "The system group."},
		{FileID: file.ID, Name: "sysUpTime", OID: "1.3.6.1.2.1.1.3",
			Syntax: "TimeTicks", Access: "read-only", Status: "current",
			Description: "Time since the system was last re-initialized.",
			Units:       "centiseconds"},
		{FileID: file.ID, Name: "ifAdminStatus", OID: "1.3.6.1.2.1.2.2.1.7",
			Syntax: "INTEGER { up(1), down(2), testing(3) }", Access: "read-write",
			Description: "The desired state of the interface."},
	}
	for _, obj := range objects {
		require.NoError(t, store.UpsertObject(ctx, obj))
	}
	require.NoError(t, store.ReplaceEnumValues(ctx, objects[2].ID,
		map[int64]string{1: "up", 2: "down", 3: "testing"}))

	return New(store), set.ID
}

func TestTranslateName(t *testing.T) {
	tr, setID := newTestTranslator(t)
	ctx := context.Background()

	res, err := tr.TranslateName(ctx, setID, "sysUpTime")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.2.1.1.3", res.Object.OID)
	assert.Equal(t, "TimeTicks", res.Object.Syntax)
	assert.Equal(t, "centiseconds", res.Object.Units)

	_, err = tr.TranslateName(ctx, setID, "noSuchObject")
	assert.Error(t, err)

	_, err = tr.TranslateName(ctx, setID, "")
	assert.Error(t, err)
}

func TestTranslateName_WellKnownRoot(t *testing.T) {
	tr, setID := newTestTranslator(t)
	ctx := context.Background()

	// Roots like enterprises carry no stored object row but still translate.
	res, err := tr.TranslateName(ctx, setID, "enterprises")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.4.1", res.Object.OID)
	assert.Empty(t, res.Object.Syntax)

	res, err = tr.TranslateName(ctx, setID, "mib-2")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.2.1", res.Object.OID)
}

func TestDescribeOID_Exact(t *testing.T) {
	tr, setID := newTestTranslator(t)

	desc, err := tr.DescribeOID(context.Background(), setID, types.OID{1, 3, 6, 1, 2, 1, 1, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sysUpTime", desc.Object.Name)
	assert.Empty(t, desc.Instance)
}

func TestDescribeOID_InstanceSuffix(t *testing.T) {
	tr, setID := newTestTranslator(t)

	desc, err := tr.DescribeOID(context.Background(), setID, types.OID{1, 3, 6, 1, 2, 1, 1, 3, 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sysUpTime", desc.Object.Name)
	assert.Equal(t, "0", desc.Instance)
}

func TestDescribeOID_EnumValueLabel(t *testing.T) {
	tr, setID := newTestTranslator(t)

	value := int64(2)
	desc, err := tr.DescribeOID(context.Background(), setID,
		types.OID{1, 3, 6, 1, 2, 1, 2, 2, 1, 7, 4}, &value)
	require.NoError(t, err)
	assert.Equal(t, "ifAdminStatus", desc.Object.Name)
	assert.Equal(t, "4", desc.Instance)
	assert.Equal(t, "down", desc.ValueLabel)
}

func TestDescribeOID_NoMatch(t *testing.T) {
	tr, setID := newTestTranslator(t)

	_, err := tr.DescribeOID(context.Background(), setID, types.OID{2, 5, 4}, nil)
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	tr, setID := newTestTranslator(t)

	resp, err := tr.Search(context.Background(), SearchRequest{
		Query: "interface",
		SetID: setID,
		Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalResults)
	assert.Equal(t, "ifAdminStatus", resp.Results[0].Name)
	assert.Equal(t, map[int64]string{1: "up", 2: "down", 3: "testing"},
		resp.Results[0].EnumValues)
}

func TestSearch_CacheHit(t *testing.T) {
	tr, setID := newTestTranslator(t)
	ctx := context.Background()

	req := SearchRequest{
		Query:    "system",
		SetID:    setID,
		Limit:    10,
		UseCache: true,
		CacheTTL: time.Minute,
	}

	first, err := tr.Search(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := tr.Search(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.TotalResults, second.TotalResults)
}

func TestSearch_InvalidateCache(t *testing.T) {
	tr, setID := newTestTranslator(t)
	ctx := context.Background()

	req := SearchRequest{
		Query:    "system",
		SetID:    setID,
		Limit:    10,
		UseCache: true,
		CacheTTL: time.Minute,
	}

	_, err := tr.Search(ctx, req)
	require.NoError(t, err)

	tr.InvalidateCache()

	resp, err := tr.Search(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
}

func TestSearch_ValidatesRequest(t *testing.T) {
	tr, setID := newTestTranslator(t)

	_, err := tr.Search(context.Background(), SearchRequest{SetID: setID})
	assert.Error(t, err)
}
