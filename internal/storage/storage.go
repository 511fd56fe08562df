package storage

import (
	"context"
	"time"

	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// Storage defines the interface for persisting and querying indexed MIB data
type Storage interface {
	// MIB set operations
	CreateSet(ctx context.Context, set *MibSet) error
	GetSet(ctx context.Context, rootPath string) (*MibSet, error)
	UpdateSet(ctx context.Context, set *MibSet) error

	// File operations
	UpsertFile(ctx context.Context, file *File) error
	GetFile(ctx context.Context, setID int64, filePath string) (*File, error)
	GetFileByID(ctx context.Context, fileID int64) (*File, error)
	DeleteFile(ctx context.Context, fileID int64) error
	ListFiles(ctx context.Context, setID int64) ([]*File, error)

	// Object operations
	UpsertObject(ctx context.Context, object *Object) error
	GetObjectByName(ctx context.Context, setID int64, name string) (*Object, error)
	GetObjectByOID(ctx context.Context, setID int64, oid types.OID) (*Object, error)
	LongestPrefixMatch(ctx context.Context, setID int64, oid types.OID) (*Object, error)
	ListObjectsByFile(ctx context.Context, fileID int64) ([]*Object, error)
	DeleteObjectsByFile(ctx context.Context, fileID int64) error
	SearchObjects(ctx context.Context, setID int64, query string, limit int) ([]*Object, error)

	// Enum operations
	ReplaceEnumValues(ctx context.Context, objectID int64, values map[int64]string) error
	ListEnumValues(ctx context.Context, objectID int64) (map[int64]string, error)

	// Import operations
	ReplaceImports(ctx context.Context, fileID int64, symbols []string) error
	ListImportsByFile(ctx context.Context, fileID int64) ([]string, error)

	// Warning operations
	ReplaceWarnings(ctx context.Context, fileID int64, warnings []types.Warning) error
	ListWarningsByFile(ctx context.Context, fileID int64) ([]types.Warning, error)

	// Status operations
	GetStatus(ctx context.Context, setID int64) (*SetStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// MibSet represents an indexed collection of MIB files rooted at one directory
type MibSet struct {
	ID            int64
	RootPath      string
	TotalFiles    int
	TotalObjects  int
	IndexVersion  string
	LastIndexedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// File represents a tracked MIB definition file
type File struct {
	ID            int64
	SetID         int64
	FilePath      string // Relative to the set root
	ModuleName    string
	ContentHash   [32]byte
	ModTime       time.Time
	SizeBytes     int64
	ParseError    *string // Nullable
	LastIndexedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Object represents one resolved MIB variable
type Object struct {
	ID          int64
	FileID      int64
	Name        string
	OID         string // Dotted-decimal text, e.g. "1.3.6.1.2.1.1.3"
	Syntax      string
	Access      string
	Status      string
	Description string
	Units       string
	CreatedAt   time.Time
}

// SetStatus contains statistics about an indexed MIB set
type SetStatus struct {
	Set            *MibSet
	FilesCount     int
	ObjectsCount   int
	EnumCount      int
	WarningsCount  int
	IndexSizeMB    float64
	LastIndexedAt  time.Time
	Health         HealthStatus
}

// HealthStatus represents the health of the index
type HealthStatus struct {
	DatabaseAccessible bool
	FTSIndexBuilt      bool
}

// ToVariable converts a stored object back into its parser representation.
// Enum values are stored separately and must be attached by the caller.
func (o *Object) ToVariable() (*types.MibVariable, error) {
	oid, err := types.ParseOID(o.OID)
	if err != nil {
		return nil, err
	}
	return &types.MibVariable{
		Name:        o.Name,
		OID:         oid,
		Type:        o.Syntax,
		Access:      o.Access,
		Status:      o.Status,
		Description: o.Description,
		Units:       o.Units,
	}, nil
}

// FromVariable converts a parsed MIB variable to its storage record
func FromVariable(v *types.MibVariable, fileID int64) *Object {
	return &Object{
		FileID:      fileID,
		Name:        v.Name,
		OID:         v.OID.String(),
		Syntax:      v.Type,
		Access:      v.Access,
		Status:      v.Status,
		Description: v.Description,
		Units:       v.Units,
	}
}
