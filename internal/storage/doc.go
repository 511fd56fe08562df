// Package storage provides SQLite-based persistence for indexed MIB data.
//
// The storage layer manages:
//   - MIB set metadata (one set per indexed directory tree)
//   - File information and content hashes
//   - Resolved objects with their dotted-decimal OIDs
//   - Enumeration value labels
//   - Imported symbol lists
//   - Resolution warnings
//   - Full-text search indexes
//
// # Database Schema
//
// Tables:
//   - mib_sets: Set metadata (root path, counters)
//   - mib_files: File paths and SHA-256 hashes
//   - objects: Resolved variables (name, OID, SYNTAX, ACCESS, ...)
//   - enum_values: Integer-to-label pairs per object
//   - module_imports: Symbols named in IMPORTS blocks
//   - resolution_warnings: Symbols that failed to resolve
//   - objects_fts: FTS5 full-text search index over name and description
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("~/.mibcontext/index.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	obj, err := db.GetObjectByName(ctx, setID, "sysUpTime")
//
// # Transactions
//
// Use transactions for atomic per-file updates:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	tx.UpsertFile(ctx, file)
//	tx.DeleteObjectsByFile(ctx, file.ID)
//	for _, v := range result.Variables {
//	    tx.UpsertObject(ctx, storage.FromVariable(&v, file.ID))
//	}
//
//	if err := tx.Commit(); err != nil {
//	    return err
//	}
//
// # Incremental Updates
//
// Check file hashes to detect changes:
//
//	stored, err := db.GetFile(ctx, setID, path)
//	if err == nil && stored.ContentHash == currentHash {
//	    // File unchanged, skip re-indexing
//	    return nil
//	}
//
// # Prefix Lookup
//
// LongestPrefixMatch supports OID-to-name translation: it finds the stored
// object whose OID is the longest prefix of the queried OID, so instance
// identifiers such as 1.3.6.1.2.1.1.3.0 map back to sysUpTime.
//
// # Full-Text Search
//
// SearchObjects queries the FTS5 index using BM25 ranking. The index is
// kept in sync by triggers on the objects table.
//
// # Build Tags
//
// The storage package supports two build configurations:
//
// CGO Build (cgosqlite tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires a C compiler; FTS5 needs the fts5 tag
//
//     CGO_ENABLED=1 go build -tags "cgosqlite,fts5"
//
// Pure Go Build (default):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed, FTS5 built in
//
//     CGO_ENABLED=0 go build ./...
package storage
