package translator

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/mibcontext-mcp/internal/mibparser"
	"github.com/dshills/mibcontext-mcp/internal/storage"
	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// ObjectInfo is the full attribute view of one resolved MIB object
type ObjectInfo struct {
	Name        string           `json:"name"`
	OID         string           `json:"oid"`
	Syntax      string           `json:"syntax,omitempty"`
	Access      string           `json:"access,omitempty"`
	Status      string           `json:"status,omitempty"`
	Description string           `json:"description,omitempty"`
	Units       string           `json:"units,omitempty"`
	EnumValues  map[int64]string `json:"enum_values,omitempty"`
}

// Translation is the result of a name-to-OID lookup
type Translation struct {
	Object   *ObjectInfo `json:"object"`
	Duration time.Duration
	CacheHit bool
}

// OIDDescription is the result of an OID-to-object lookup. When the queried
// OID extends past the matched object, Instance holds the trailing arcs.
type OIDDescription struct {
	Object     *ObjectInfo `json:"object"`
	Instance   string      `json:"instance,omitempty"`
	ValueLabel string      `json:"value_label,omitempty"`
	Duration   time.Duration
	CacheHit   bool
}

// SearchRequest contains parameters for a full-text object search
type SearchRequest struct {
	Query    string
	Limit    int
	SetID    int64
	UseCache bool
	CacheTTL time.Duration
}

// SearchResponse contains search results and metadata
type SearchResponse struct {
	Results      []ObjectInfo
	TotalResults int
	Duration     time.Duration
	CacheHit     bool
}

// cacheEntry represents a cached search response with expiration time
type cacheEntry struct {
	response  *SearchResponse
	expiresAt time.Time
}

// Translator answers name, OID, and text queries against the indexed store
type Translator struct {
	storage storage.Storage
	cache   *lru.Cache[[32]byte, *cacheEntry]
	cacheMu sync.RWMutex
}

// New creates a new Translator instance
func New(store storage.Storage) *Translator {
	// LRU cache with 1000 entry limit; least recently used entries are
	// evicted automatically.
	cache, err := lru.New[[32]byte, *cacheEntry](1000)
	if err != nil {
		// This should never happen with valid size parameter
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}

	return &Translator{
		storage: store,
		cache:   cache,
	}
}

// TranslateName resolves a symbolic object name to its OID and attributes
func (t *Translator) TranslateName(ctx context.Context, setID int64, name string) (*Translation, error) {
	startTime := time.Now()

	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	obj, err := t.storage.GetObjectByName(ctx, setID, name)
	if err == storage.ErrNotFound {
		// Well-known SMI roots are never stored as objects but are still
		// legitimate translation targets.
		if oid, ok := mibparser.WellKnownOID(name); ok {
			return &Translation{
				Object:   &ObjectInfo{Name: name, OID: oid.String()},
				Duration: time.Since(startTime),
			}, nil
		}
		return nil, fmt.Errorf("object %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	info, err := t.objectInfo(ctx, obj)
	if err != nil {
		return nil, err
	}

	return &Translation{
		Object:   info,
		Duration: time.Since(startTime),
	}, nil
}

// DescribeOID resolves a numeric OID back to the closest known object. The
// OID may carry trailing instance arcs past the registered object; those are
// reported separately. When value is non-nil and the object's SYNTAX is an
// enumeration, the matching label is included.
func (t *Translator) DescribeOID(ctx context.Context, setID int64, oid types.OID, value *int64) (*OIDDescription, error) {
	startTime := time.Now()

	if len(oid) == 0 {
		return nil, fmt.Errorf("oid cannot be empty")
	}

	obj, err := t.storage.LongestPrefixMatch(ctx, setID, oid)
	if err == storage.ErrNotFound {
		return nil, fmt.Errorf("no object matches oid %s", oid.String())
	}
	if err != nil {
		return nil, err
	}

	info, err := t.objectInfo(ctx, obj)
	if err != nil {
		return nil, err
	}

	desc := &OIDDescription{
		Object:   info,
		Duration: time.Since(startTime),
	}

	matched, err := types.ParseOID(obj.OID)
	if err != nil {
		return nil, err
	}
	if len(oid) > len(matched) {
		desc.Instance = oid[len(matched):].String()
	}

	if value != nil && info.EnumValues != nil {
		desc.ValueLabel = info.EnumValues[*value]
	}

	return desc, nil
}

// Search performs a full-text search over object names and descriptions
func (t *Translator) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	startTime := time.Now()

	if err := t.validateRequest(&req); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	if req.UseCache {
		cached, err := t.checkCache(req)
		if err == nil && cached != nil {
			cached.CacheHit = true
			cached.Duration = time.Since(startTime)
			return cached, nil
		}
	}

	objects, err := t.storage.SearchObjects(ctx, req.SetID, req.Query, req.Limit)
	if err != nil {
		return nil, err
	}

	results := make([]ObjectInfo, 0, len(objects))
	for _, obj := range objects {
		info, err := t.objectInfo(ctx, obj)
		if err != nil {
			continue // Skip objects that can't be loaded
		}
		results = append(results, *info)
	}

	response := &SearchResponse{
		Results:      results,
		TotalResults: len(results),
		Duration:     time.Since(startTime),
	}

	if req.UseCache && len(response.Results) > 0 {
		t.storeInCache(req, response)
	}

	return response, nil
}

// objectInfo assembles the full attribute view, including enum labels
func (t *Translator) objectInfo(ctx context.Context, obj *storage.Object) (*ObjectInfo, error) {
	values, err := t.storage.ListEnumValues(ctx, obj.ID)
	if err != nil {
		return nil, err
	}
	return &ObjectInfo{
		Name:        obj.Name,
		OID:         obj.OID,
		Syntax:      obj.Syntax,
		Access:      obj.Access,
		Status:      obj.Status,
		Description: obj.Description,
		Units:       obj.Units,
		EnumValues:  values,
	}, nil
}

// validateRequest ensures a search request is valid
func (t *Translator) validateRequest(req *SearchRequest) error {
	if req.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}

	if req.Limit <= 0 {
		req.Limit = 10 // Default limit
	}

	if req.Limit > 100 {
		req.Limit = 100 // Max limit
	}

	if req.CacheTTL == 0 {
		req.CacheTTL = 1 * time.Hour // Default TTL
	}

	return nil
}

// checkCache looks up cached search results
func (t *Translator) checkCache(req SearchRequest) (*SearchResponse, error) {
	hash := computeQueryHash(req)
	now := time.Now()

	t.cacheMu.RLock()
	entry, found := t.cache.Get(hash)

	if !found {
		t.cacheMu.RUnlock()
		return nil, fmt.Errorf("cache miss")
	}

	if now.After(entry.expiresAt) {
		t.cacheMu.RUnlock()

		// Remove expired entry under the write lock
		t.cacheMu.Lock()
		t.cache.Remove(hash)
		t.cacheMu.Unlock()
		return nil, fmt.Errorf("cache expired")
	}

	// Copy while holding the read lock so the entry isn't modified mid-copy
	response := copySearchResponse(entry.response)
	t.cacheMu.RUnlock()

	return response, nil
}

// storeInCache saves search results to cache
func (t *Translator) storeInCache(req SearchRequest, response *SearchResponse) {
	hash := computeQueryHash(req)

	entry := &cacheEntry{
		response:  copySearchResponse(response),
		expiresAt: time.Now().Add(req.CacheTTL),
	}

	t.cacheMu.Lock()
	t.cache.Add(hash, entry)
	t.cacheMu.Unlock()
}

// copySearchResponse creates a deep copy of a SearchResponse
func copySearchResponse(src *SearchResponse) *SearchResponse {
	if src == nil {
		return nil
	}

	dst := &SearchResponse{
		TotalResults: src.TotalResults,
		Duration:     src.Duration,
		CacheHit:     src.CacheHit,
		Results:      make([]ObjectInfo, len(src.Results)),
	}

	for i, result := range src.Results {
		dst.Results[i] = result
		if result.EnumValues != nil {
			values := make(map[int64]string, len(result.EnumValues))
			for k, v := range result.EnumValues {
				values[k] = v
			}
			dst.Results[i].EnumValues = values
		}
	}

	return dst
}

// computeQueryHash computes a unique hash for a search request
func computeQueryHash(req SearchRequest) [32]byte {
	var data strings.Builder
	data.WriteString(req.Query)
	data.WriteString("|")
	data.WriteString(fmt.Sprintf("%d", req.SetID))
	data.WriteString("|")
	data.WriteString(fmt.Sprintf("%d", req.Limit))
	return sha256.Sum256([]byte(data.String()))
}

// InvalidateCache removes all cached queries. Called after reindexing.
func (t *Translator) InvalidateCache() {
	t.cacheMu.Lock()
	t.cache.Purge()
	t.cacheMu.Unlock()
}
