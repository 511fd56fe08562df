package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/mibcontext-mcp/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// MIB set operations

// createSetWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) createSetWithQuerier(ctx context.Context, q querier, set *MibSet) error {
	query := `
		INSERT INTO mib_sets (root_path, index_version, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query, set.RootPath, set.IndexVersion, now, now)
	if err != nil {
		return fmt.Errorf("failed to create mib set: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	set.ID = id
	set.CreatedAt = now
	set.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateSet(ctx context.Context, set *MibSet) error {
	return s.createSetWithQuerier(ctx, s.querier(), set)
}

// getSetWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getSetWithQuerier(ctx context.Context, q querier, rootPath string) (*MibSet, error) {
	query := `
		SELECT id, root_path, total_files, total_objects, index_version,
		       last_indexed_at, created_at, updated_at
		FROM mib_sets
		WHERE root_path = ?
	`
	var set MibSet
	var lastIndexedAt sql.NullTime
	err := q.QueryRowContext(ctx, query, rootPath).Scan(
		&set.ID, &set.RootPath, &set.TotalFiles, &set.TotalObjects,
		&set.IndexVersion, &lastIndexedAt, &set.CreatedAt, &set.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastIndexedAt.Valid {
		set.LastIndexedAt = lastIndexedAt.Time
	}
	return &set, nil
}

func (s *SQLiteStorage) GetSet(ctx context.Context, rootPath string) (*MibSet, error) {
	return s.getSetWithQuerier(ctx, s.querier(), rootPath)
}

// updateSetWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) updateSetWithQuerier(ctx context.Context, q querier, set *MibSet) error {
	query := `
		UPDATE mib_sets
		SET total_files = ?, total_objects = ?, last_indexed_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		set.TotalFiles, set.TotalObjects, set.LastIndexedAt, now, set.ID)
	if err != nil {
		return fmt.Errorf("failed to update mib set: %w", err)
	}
	set.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpdateSet(ctx context.Context, set *MibSet) error {
	return s.updateSetWithQuerier(ctx, s.querier(), set)
}

// File operations

// upsertFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) upsertFileWithQuerier(ctx context.Context, q querier, file *File) error {
	query := `
		INSERT INTO mib_files (set_id, file_path, module_name, content_hash, mod_time, size_bytes, parse_error, last_indexed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(set_id, file_path) DO UPDATE SET
			module_name = excluded.module_name,
			content_hash = excluded.content_hash,
			mod_time = excluded.mod_time,
			size_bytes = excluded.size_bytes,
			parse_error = excluded.parse_error,
			last_indexed_at = excluded.last_indexed_at,
			updated_at = excluded.updated_at
		RETURNING id
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		file.SetID, file.FilePath, file.ModuleName, file.ContentHash[:],
		file.ModTime, file.SizeBytes, file.ParseError, now, now, now).Scan(&file.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert file: %w", err)
	}

	file.LastIndexedAt = now
	file.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertFile(ctx context.Context, file *File) error {
	return s.upsertFileWithQuerier(ctx, s.querier(), file)
}

const fileColumns = `id, set_id, file_path, module_name, content_hash, mod_time,
       size_bytes, parse_error, last_indexed_at, created_at, updated_at`

func scanFile(row interface{ Scan(...interface{}) error }) (*File, error) {
	var file File
	var hash []byte
	var parseError sql.NullString
	err := row.Scan(
		&file.ID, &file.SetID, &file.FilePath, &file.ModuleName,
		&hash, &file.ModTime, &file.SizeBytes, &parseError,
		&file.LastIndexedAt, &file.CreatedAt, &file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	copy(file.ContentHash[:], hash)
	if parseError.Valid {
		file.ParseError = &parseError.String
	}
	return &file, nil
}

// getFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getFileWithQuerier(ctx context.Context, q querier, setID int64, filePath string) (*File, error) {
	query := `SELECT ` + fileColumns + ` FROM mib_files WHERE set_id = ? AND file_path = ?`
	file, err := scanFile(q.QueryRowContext(ctx, query, setID, filePath))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (s *SQLiteStorage) GetFile(ctx context.Context, setID int64, filePath string) (*File, error) {
	return s.getFileWithQuerier(ctx, s.querier(), setID, filePath)
}

// getFileByIDWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getFileByIDWithQuerier(ctx context.Context, q querier, fileID int64) (*File, error) {
	query := `SELECT ` + fileColumns + ` FROM mib_files WHERE id = ?`
	file, err := scanFile(q.QueryRowContext(ctx, query, fileID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (s *SQLiteStorage) GetFileByID(ctx context.Context, fileID int64) (*File, error) {
	return s.getFileByIDWithQuerier(ctx, s.querier(), fileID)
}

// deleteFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteFileWithQuerier(ctx context.Context, q querier, fileID int64) error {
	query := `DELETE FROM mib_files WHERE id = ?`
	_, err := q.ExecContext(ctx, query, fileID)
	return err
}

func (s *SQLiteStorage) DeleteFile(ctx context.Context, fileID int64) error {
	return s.deleteFileWithQuerier(ctx, s.querier(), fileID)
}

// listFilesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listFilesWithQuerier(ctx context.Context, q querier, setID int64) ([]*File, error) {
	query := `SELECT ` + fileColumns + ` FROM mib_files WHERE set_id = ? ORDER BY file_path`
	rows, err := q.QueryContext(ctx, query, setID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	files := make([]*File, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

func (s *SQLiteStorage) ListFiles(ctx context.Context, setID int64) ([]*File, error) {
	return s.listFilesWithQuerier(ctx, s.querier(), setID)
}

// Object operations

const objectColumns = `id, file_id, name, oid, syntax, access, status, description, units, created_at`

func scanObject(row interface{ Scan(...interface{}) error }) (*Object, error) {
	var o Object
	var syntax, access, status, description, units sql.NullString
	err := row.Scan(
		&o.ID, &o.FileID, &o.Name, &o.OID,
		&syntax, &access, &status, &description, &units, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Syntax = syntax.String
	o.Access = access.String
	o.Status = status.String
	o.Description = description.String
	o.Units = units.String
	return &o, nil
}

// upsertObjectWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) upsertObjectWithQuerier(ctx context.Context, q querier, object *Object) error {
	// Atomic INSERT ... ON CONFLICT to avoid race conditions
	query := `
		INSERT INTO objects (file_id, name, oid, syntax, access, status, description, units, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_id, name)
		DO UPDATE SET
			oid = excluded.oid,
			syntax = excluded.syntax,
			access = excluded.access,
			status = excluded.status,
			description = excluded.description,
			units = excluded.units
		RETURNING id, created_at
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		object.FileID, object.Name, object.OID, object.Syntax, object.Access,
		object.Status, object.Description, object.Units, now,
	).Scan(&object.ID, &object.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert object: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertObject(ctx context.Context, object *Object) error {
	return s.upsertObjectWithQuerier(ctx, s.querier(), object)
}

// getObjectByNameWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getObjectByNameWithQuerier(ctx context.Context, q querier, setID int64, name string) (*Object, error) {
	query := `
		SELECT o.id, o.file_id, o.name, o.oid, o.syntax, o.access, o.status, o.description, o.units, o.created_at
		FROM objects o
		JOIN mib_files f ON o.file_id = f.id
		WHERE f.set_id = ? AND o.name = ?
		ORDER BY o.id
		LIMIT 1
	`
	object, err := scanObject(q.QueryRowContext(ctx, query, setID, name))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return object, nil
}

func (s *SQLiteStorage) GetObjectByName(ctx context.Context, setID int64, name string) (*Object, error) {
	return s.getObjectByNameWithQuerier(ctx, s.querier(), setID, name)
}

// getObjectByOIDWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getObjectByOIDWithQuerier(ctx context.Context, q querier, setID int64, oid types.OID) (*Object, error) {
	query := `
		SELECT o.id, o.file_id, o.name, o.oid, o.syntax, o.access, o.status, o.description, o.units, o.created_at
		FROM objects o
		JOIN mib_files f ON o.file_id = f.id
		WHERE f.set_id = ? AND o.oid = ?
		ORDER BY o.id
		LIMIT 1
	`
	object, err := scanObject(q.QueryRowContext(ctx, query, setID, oid.String()))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return object, nil
}

func (s *SQLiteStorage) GetObjectByOID(ctx context.Context, setID int64, oid types.OID) (*Object, error) {
	return s.getObjectByOIDWithQuerier(ctx, s.querier(), setID, oid)
}

// longestPrefixMatchWithQuerier finds the stored object whose OID is the
// longest prefix of the requested OID, including an exact match.
func (s *SQLiteStorage) longestPrefixMatchWithQuerier(ctx context.Context, q querier, setID int64, oid types.OID) (*Object, error) {
	if len(oid) == 0 {
		return nil, ErrNotFound
	}

	// Every prefix of the target is a candidate; the longest wins.
	placeholders := make([]string, 0, len(oid))
	args := make([]interface{}, 0, len(oid)+1)
	args = append(args, setID)
	for i := 1; i <= len(oid); i++ {
		placeholders = append(placeholders, "?")
		args = append(args, oid[:i].String())
	}

	query := `
		SELECT o.id, o.file_id, o.name, o.oid, o.syntax, o.access, o.status, o.description, o.units, o.created_at
		FROM objects o
		JOIN mib_files f ON o.file_id = f.id
		WHERE f.set_id = ? AND o.oid IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY length(o.oid) DESC, o.id
		LIMIT 1
	`
	object, err := scanObject(q.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return object, nil
}

func (s *SQLiteStorage) LongestPrefixMatch(ctx context.Context, setID int64, oid types.OID) (*Object, error) {
	return s.longestPrefixMatchWithQuerier(ctx, s.querier(), setID, oid)
}

// listObjectsByFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listObjectsByFileWithQuerier(ctx context.Context, q querier, fileID int64) ([]*Object, error) {
	query := `SELECT ` + objectColumns + ` FROM objects WHERE file_id = ? ORDER BY oid`
	rows, err := q.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	objects := make([]*Object, 0)
	for rows.Next() {
		object, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	return objects, rows.Err()
}

func (s *SQLiteStorage) ListObjectsByFile(ctx context.Context, fileID int64) ([]*Object, error) {
	return s.listObjectsByFileWithQuerier(ctx, s.querier(), fileID)
}

// deleteObjectsByFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteObjectsByFileWithQuerier(ctx context.Context, q querier, fileID int64) error {
	query := `DELETE FROM objects WHERE file_id = ?`
	_, err := q.ExecContext(ctx, query, fileID)
	return err
}

func (s *SQLiteStorage) DeleteObjectsByFile(ctx context.Context, fileID int64) error {
	return s.deleteObjectsByFileWithQuerier(ctx, s.querier(), fileID)
}

// searchObjectsWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) searchObjectsWithQuerier(ctx context.Context, q querier, setID int64, query string, limit int) ([]*Object, error) {
	// Note: In FTS5, 'rank' is a built-in virtual column representing BM25
	// relevance score. Lower rank values indicate better matches.
	sqlQuery := `
		SELECT o.id, o.file_id, o.name, o.oid, o.syntax, o.access, o.status, o.description, o.units, o.created_at
		FROM objects o
		JOIN objects_fts fts ON o.id = fts.rowid
		JOIN mib_files f ON o.file_id = f.id
		WHERE f.set_id = ? AND objects_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`
	rows, err := q.QueryContext(ctx, sqlQuery, setID, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	objects := make([]*Object, 0)
	for rows.Next() {
		object, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	return objects, rows.Err()
}

func (s *SQLiteStorage) SearchObjects(ctx context.Context, setID int64, query string, limit int) ([]*Object, error) {
	return s.searchObjectsWithQuerier(ctx, s.querier(), setID, query, limit)
}

// Enum operations

// replaceEnumValuesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) replaceEnumValuesWithQuerier(ctx context.Context, q querier, objectID int64, values map[int64]string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM enum_values WHERE object_id = ?`, objectID); err != nil {
		return fmt.Errorf("failed to clear enum values: %w", err)
	}
	for value, label := range values {
		_, err := q.ExecContext(ctx,
			`INSERT INTO enum_values (object_id, value, label) VALUES (?, ?, ?)`,
			objectID, value, label)
		if err != nil {
			return fmt.Errorf("failed to insert enum value: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStorage) ReplaceEnumValues(ctx context.Context, objectID int64, values map[int64]string) error {
	return s.replaceEnumValuesWithQuerier(ctx, s.querier(), objectID, values)
}

// listEnumValuesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listEnumValuesWithQuerier(ctx context.Context, q querier, objectID int64) (map[int64]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT value, label FROM enum_values WHERE object_id = ? ORDER BY value`, objectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := make(map[int64]string)
	for rows.Next() {
		var value int64
		var label string
		if err := rows.Scan(&value, &label); err != nil {
			return nil, err
		}
		values[value] = label
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func (s *SQLiteStorage) ListEnumValues(ctx context.Context, objectID int64) (map[int64]string, error) {
	return s.listEnumValuesWithQuerier(ctx, s.querier(), objectID)
}

// Import operations

// replaceImportsWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) replaceImportsWithQuerier(ctx context.Context, q querier, fileID int64, symbols []string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM module_imports WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("failed to clear imports: %w", err)
	}
	now := time.Now()
	for _, symbol := range symbols {
		_, err := q.ExecContext(ctx,
			`INSERT INTO module_imports (file_id, symbol, created_at) VALUES (?, ?, ?)`,
			fileID, symbol, now)
		if err != nil {
			return fmt.Errorf("failed to insert import: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStorage) ReplaceImports(ctx context.Context, fileID int64, symbols []string) error {
	return s.replaceImportsWithQuerier(ctx, s.querier(), fileID, symbols)
}

// listImportsByFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listImportsByFileWithQuerier(ctx context.Context, q querier, fileID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT symbol FROM module_imports WHERE file_id = ? ORDER BY id`, fileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	symbols := make([]string, 0)
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}

func (s *SQLiteStorage) ListImportsByFile(ctx context.Context, fileID int64) ([]string, error) {
	return s.listImportsByFileWithQuerier(ctx, s.querier(), fileID)
}

// Warning operations

// replaceWarningsWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) replaceWarningsWithQuerier(ctx context.Context, q querier, fileID int64, warnings []types.Warning) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM resolution_warnings WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("failed to clear warnings: %w", err)
	}
	now := time.Now()
	for _, w := range warnings {
		_, err := q.ExecContext(ctx,
			`INSERT INTO resolution_warnings (file_id, symbol, parent, state, created_at) VALUES (?, ?, ?, ?, ?)`,
			fileID, w.Symbol, w.Parent, w.State.String(), now)
		if err != nil {
			return fmt.Errorf("failed to insert warning: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStorage) ReplaceWarnings(ctx context.Context, fileID int64, warnings []types.Warning) error {
	return s.replaceWarningsWithQuerier(ctx, s.querier(), fileID, warnings)
}

// listWarningsByFileWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listWarningsByFileWithQuerier(ctx context.Context, q querier, fileID int64) ([]types.Warning, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT symbol, parent, state FROM resolution_warnings WHERE file_id = ? ORDER BY id`, fileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	warnings := make([]types.Warning, 0)
	for rows.Next() {
		var w types.Warning
		var parent sql.NullString
		var state string
		if err := rows.Scan(&w.Symbol, &parent, &state); err != nil {
			return nil, err
		}
		w.Parent = parent.String
		switch state {
		case types.StateCycle.String():
			w.State = types.StateCycle
		default:
			w.State = types.StateUnresolved
		}
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}

func (s *SQLiteStorage) ListWarningsByFile(ctx context.Context, fileID int64) ([]types.Warning, error) {
	return s.listWarningsByFileWithQuerier(ctx, s.querier(), fileID)
}

// Status operations

func (s *SQLiteStorage) GetStatus(ctx context.Context, setID int64) (*SetStatus, error) {
	set, err := s.getSetByID(ctx, setID)
	if err != nil {
		return nil, err
	}

	status := &SetStatus{
		Set:           set,
		LastIndexedAt: set.LastIndexedAt,
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM mib_files WHERE set_id = ?", setID).Scan(&status.FilesCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM objects o
		JOIN mib_files f ON o.file_id = f.id
		WHERE f.set_id = ?
	`, setID).Scan(&status.ObjectsCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM enum_values e
		JOIN objects o ON e.object_id = o.id
		JOIN mib_files f ON o.file_id = f.id
		WHERE f.set_id = ?
	`, setID).Scan(&status.EnumCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM resolution_warnings w
		JOIN mib_files f ON w.file_id = f.id
		WHERE f.set_id = ?
	`, setID).Scan(&status.WarningsCount)
	if err != nil {
		return nil, err
	}

	var pageCount, pageSize int
	err = s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	if err == nil {
		_ = s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.IndexSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	status.Health = HealthStatus{
		DatabaseAccessible: true,
		FTSIndexBuilt:      true, // FTS indexes are created with migrations
	}

	return status, nil
}

// getSetByID retrieves a MIB set by ID
func (s *SQLiteStorage) getSetByID(ctx context.Context, setID int64) (*MibSet, error) {
	query := `
		SELECT id, root_path, total_files, total_objects, index_version,
		       last_indexed_at, created_at, updated_at
		FROM mib_sets
		WHERE id = ?
	`
	var set MibSet
	var lastIndexedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, query, setID).Scan(
		&set.ID, &set.RootPath, &set.TotalFiles, &set.TotalObjects,
		&set.IndexVersion, &lastIndexedAt, &set.CreatedAt, &set.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastIndexedAt.Valid {
		set.LastIndexedAt = lastIndexedAt.Time
	}
	return &set, nil
}

// Transaction implementations delegate to the internal querier helpers.

func (t *sqliteTx) CreateSet(ctx context.Context, set *MibSet) error {
	return t.storage.createSetWithQuerier(ctx, t.querier(), set)
}

func (t *sqliteTx) GetSet(ctx context.Context, rootPath string) (*MibSet, error) {
	return t.storage.getSetWithQuerier(ctx, t.querier(), rootPath)
}

func (t *sqliteTx) UpdateSet(ctx context.Context, set *MibSet) error {
	return t.storage.updateSetWithQuerier(ctx, t.querier(), set)
}

func (t *sqliteTx) UpsertFile(ctx context.Context, file *File) error {
	return t.storage.upsertFileWithQuerier(ctx, t.querier(), file)
}

func (t *sqliteTx) GetFile(ctx context.Context, setID int64, filePath string) (*File, error) {
	return t.storage.getFileWithQuerier(ctx, t.querier(), setID, filePath)
}

func (t *sqliteTx) GetFileByID(ctx context.Context, fileID int64) (*File, error) {
	return t.storage.getFileByIDWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) DeleteFile(ctx context.Context, fileID int64) error {
	return t.storage.deleteFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) ListFiles(ctx context.Context, setID int64) ([]*File, error) {
	return t.storage.listFilesWithQuerier(ctx, t.querier(), setID)
}

func (t *sqliteTx) UpsertObject(ctx context.Context, object *Object) error {
	return t.storage.upsertObjectWithQuerier(ctx, t.querier(), object)
}

func (t *sqliteTx) GetObjectByName(ctx context.Context, setID int64, name string) (*Object, error) {
	return t.storage.getObjectByNameWithQuerier(ctx, t.querier(), setID, name)
}

func (t *sqliteTx) GetObjectByOID(ctx context.Context, setID int64, oid types.OID) (*Object, error) {
	return t.storage.getObjectByOIDWithQuerier(ctx, t.querier(), setID, oid)
}

func (t *sqliteTx) LongestPrefixMatch(ctx context.Context, setID int64, oid types.OID) (*Object, error) {
	return t.storage.longestPrefixMatchWithQuerier(ctx, t.querier(), setID, oid)
}

func (t *sqliteTx) ListObjectsByFile(ctx context.Context, fileID int64) ([]*Object, error) {
	return t.storage.listObjectsByFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) DeleteObjectsByFile(ctx context.Context, fileID int64) error {
	return t.storage.deleteObjectsByFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) SearchObjects(ctx context.Context, setID int64, query string, limit int) ([]*Object, error) {
	return t.storage.searchObjectsWithQuerier(ctx, t.querier(), setID, query, limit)
}

func (t *sqliteTx) ReplaceEnumValues(ctx context.Context, objectID int64, values map[int64]string) error {
	return t.storage.replaceEnumValuesWithQuerier(ctx, t.querier(), objectID, values)
}

func (t *sqliteTx) ListEnumValues(ctx context.Context, objectID int64) (map[int64]string, error) {
	return t.storage.listEnumValuesWithQuerier(ctx, t.querier(), objectID)
}

func (t *sqliteTx) ReplaceImports(ctx context.Context, fileID int64, symbols []string) error {
	return t.storage.replaceImportsWithQuerier(ctx, t.querier(), fileID, symbols)
}

func (t *sqliteTx) ListImportsByFile(ctx context.Context, fileID int64) ([]string, error) {
	return t.storage.listImportsByFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) ReplaceWarnings(ctx context.Context, fileID int64, warnings []types.Warning) error {
	return t.storage.replaceWarningsWithQuerier(ctx, t.querier(), fileID, warnings)
}

func (t *sqliteTx) ListWarningsByFile(ctx context.Context, fileID int64) ([]types.Warning, error) {
	return t.storage.listWarningsByFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) GetStatus(ctx context.Context, setID int64) (*SetStatus, error) {
	return t.storage.GetStatus(ctx, setID)
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	return nil, errors.New("nested transactions not supported")
}
