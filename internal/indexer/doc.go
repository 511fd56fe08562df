// Package indexer orchestrates MIB indexing: it discovers definition files
// under a root directory, parses each one, and persists the resolved objects.
//
// # Pipeline
//
// For each discovered file (.mib, .my, or .txt):
//
//  1. Hash the content with SHA-256; unchanged files are skipped.
//  2. Parse the module with internal/mibparser.
//  3. Store the file record, imported symbols, resolved objects with their
//     enumeration labels, and any resolution warnings.
//
// Files are processed concurrently by a bounded worker pool and committed in
// batched transactions. A file that fails to parse is recorded with its error
// and does not abort the run.
//
// # Usage
//
//	idx := indexer.New(store, log)
//	stats, err := idx.IndexSet(ctx, "/opt/mibs", &indexer.Config{
//	    Workers:   8,
//	    BatchSize: 20,
//	})
//
// # Incremental Updates
//
// Re-running IndexSet over the same root only re-parses files whose content
// hash changed. Changed files have their previous objects deleted inside the
// same transaction that stores the new ones.
package indexer
