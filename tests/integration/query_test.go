package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/dshills/mibcontext-mcp/internal/indexer"
	"github.com/dshills/mibcontext-mcp/internal/storage"
	"github.com/dshills/mibcontext-mcp/internal/translator"
	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// QueryTestSuite exercises name, OID, and text queries against a freshly
// indexed fixture set.
type QueryTestSuite struct {
	suite.Suite
	storage    storage.Storage
	translator *translator.Translator
	setID      int64
	ctx        context.Context
}

// SetupSuite indexes the fixtures once; queries are read-only
func (s *QueryTestSuite) SetupSuite() {
	s.ctx = context.Background()

	wd, err := os.Getwd()
	s.Require().NoError(err)
	fixturesDir := filepath.Join(filepath.Dir(wd), "testdata", "fixtures")

	store, err := storage.NewSQLiteStorage(":memory:")
	s.Require().NoError(err)
	s.storage = store

	idx := indexer.New(store, zerolog.Nop())
	_, err = idx.IndexSet(s.ctx, fixturesDir, nil)
	s.Require().NoError(err)

	set, err := store.GetSet(s.ctx, fixturesDir)
	s.Require().NoError(err)
	s.setID = set.ID

	s.translator = translator.New(store)
}

// TearDownSuite closes storage
func (s *QueryTestSuite) TearDownSuite() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

// TestTranslateName resolves a symbolic name across module boundaries
func (s *QueryTestSuite) TestTranslateName() {
	trans, err := s.translator.TranslateName(s.ctx, s.setID, "sysDescr")
	s.Require().NoError(err)
	s.Equal("1.3.6.1.2.1.1.1", trans.Object.OID)
	s.Equal("DisplayString", trans.Object.Syntax)
	s.Equal("read-only", trans.Object.Access)
	s.Contains(trans.Object.Description, "textual description")
}

// TestTranslateName_Unknown fails for an undefined symbol
func (s *QueryTestSuite) TestTranslateName_Unknown() {
	_, err := s.translator.TranslateName(s.ctx, s.setID, "noSuchObject")
	s.Error(err)
}

// TestDescribeOID_Exact matches an OID to its registered object
func (s *QueryTestSuite) TestDescribeOID_Exact() {
	oid := types.OID{1, 3, 6, 1, 4, 1, 40000, 1, 1}
	desc, err := s.translator.DescribeOID(s.ctx, s.setID, oid, nil)
	s.Require().NoError(err)
	s.Equal("acmeTemperature", desc.Object.Name)
	s.Equal("degrees Celsius", desc.Object.Units)
	s.Empty(desc.Instance)
}

// TestDescribeOID_Instance reports trailing instance arcs separately
func (s *QueryTestSuite) TestDescribeOID_Instance() {
	oid := types.OID{1, 3, 6, 1, 2, 1, 1, 3, 0}
	desc, err := s.translator.DescribeOID(s.ctx, s.setID, oid, nil)
	s.Require().NoError(err)
	s.Equal("sysUpTime", desc.Object.Name)
	s.Equal("0", desc.Instance)
}

// TestDescribeOID_EnumValue decodes a sampled value against the enumeration
func (s *QueryTestSuite) TestDescribeOID_EnumValue() {
	oid := types.OID{1, 3, 6, 1, 4, 1, 40000, 1, 2, 0}
	value := int64(4)
	desc, err := s.translator.DescribeOID(s.ctx, s.setID, oid, &value)
	s.Require().NoError(err)
	s.Equal("acmeFanState", desc.Object.Name)
	s.Equal("shutdown", desc.ValueLabel)
}

// TestDescribeOID_NoMatch fails when no indexed object is a prefix
func (s *QueryTestSuite) TestDescribeOID_NoMatch() {
	_, err := s.translator.DescribeOID(s.ctx, s.setID, types.OID{2, 5, 4}, nil)
	s.Error(err)
}

// TestSearch finds objects by description text
func (s *QueryTestSuite) TestSearch() {
	resp, err := s.translator.Search(s.ctx, translator.SearchRequest{
		Query: "temperature",
		SetID: s.setID,
		Limit: 10,
	})
	s.Require().NoError(err)
	s.Require().Equal(1, resp.TotalResults)
	s.Equal("acmeTemperature", resp.Results[0].Name)
}

// TestSearch_Cached serves a repeated query from the cache
func (s *QueryTestSuite) TestSearch_Cached() {
	req := translator.SearchRequest{
		Query:    "cooling",
		SetID:    s.setID,
		Limit:    10,
		UseCache: true,
		CacheTTL: time.Minute,
	}

	first, err := s.translator.Search(s.ctx, req)
	s.Require().NoError(err)
	s.False(first.CacheHit)
	s.Require().Equal(1, first.TotalResults)

	second, err := s.translator.Search(s.ctx, req)
	s.Require().NoError(err)
	s.True(second.CacheHit)
	s.Equal(first.Results, second.Results)
}

// TestQueryTestSuite runs the suite
func TestQueryTestSuite(t *testing.T) {
	suite.Run(t, new(QueryTestSuite))
}
