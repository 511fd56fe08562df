package indexer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/mibcontext-mcp/internal/mibparser"
	"github.com/dshills/mibcontext-mcp/internal/storage"
)

// mibExtensions lists the file suffixes treated as MIB definition files.
var mibExtensions = map[string]bool{
	".mib": true,
	".my":  true,
	".txt": true,
}

// Indexer coordinates the indexing pipeline: discover -> parse -> store
type Indexer struct {
	storage storage.Storage
	log     zerolog.Logger

	// Worker pool configuration
	workers int
}

// Config contains configuration for the indexer
type Config struct {
	Workers   int // Number of concurrent workers (default: runtime.NumCPU())
	BatchSize int // Number of files to commit per transaction (default: 20)
}

// Statistics contains statistics about the indexing operation
type Statistics struct {
	FilesIndexed    int
	FilesSkipped    int
	FilesFailed     int
	ObjectsResolved int
	Warnings        int
	Duration        time.Duration
	ErrorMessages   []string
}

// New creates a new Indexer instance
func New(store storage.Storage, log zerolog.Logger) *Indexer {
	return &Indexer{
		storage: store,
		log:     log,
		workers: runtime.NumCPU(),
	}
}

// IndexSet indexes every MIB file under rootPath
func (idx *Indexer) IndexSet(ctx context.Context, rootPath string, config *Config) (*Statistics, error) {
	if config == nil {
		config = &Config{
			Workers:   runtime.NumCPU(),
			BatchSize: 20,
		}
	}

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	idx.workers = config.Workers

	startTime := time.Now()
	stats := &Statistics{
		ErrorMessages: make([]string, 0),
	}

	set, err := idx.getOrCreateSet(ctx, rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create mib set: %w", err)
	}

	files, err := idx.discoverFiles(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	idx.log.Debug().Int("files", len(files)).Str("root", rootPath).Msg("discovered mib files")

	if err := idx.indexFiles(ctx, set, files, config, stats); err != nil {
		return nil, fmt.Errorf("failed to index files: %w", err)
	}

	if err := idx.updateSetStats(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to update set stats: %w", err)
	}

	stats.Duration = time.Since(startTime)
	idx.log.Info().
		Int("indexed", stats.FilesIndexed).
		Int("skipped", stats.FilesSkipped).
		Int("failed", stats.FilesFailed).
		Int("objects", stats.ObjectsResolved).
		Dur("duration", stats.Duration).
		Msg("indexing complete")
	return stats, nil
}

// getOrCreateSet retrieves an existing MIB set or creates a new one
func (idx *Indexer) getOrCreateSet(ctx context.Context, rootPath string) (*storage.MibSet, error) {
	set, err := idx.storage.GetSet(ctx, rootPath)
	if err == nil {
		return set, nil
	}
	if err != storage.ErrNotFound {
		return nil, err
	}

	set = &storage.MibSet{
		RootPath:     rootPath,
		IndexVersion: storage.CurrentSchemaVersion,
	}
	if err := idx.storage.CreateSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// discoverFiles finds all MIB definition files under the root
func (idx *Indexer) discoverFiles(rootPath string) ([]string, error) {
	var files []string

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}

		if !mibExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// indexFiles indexes a set of files concurrently in batched transactions
func (idx *Indexer) indexFiles(ctx context.Context, set *storage.MibSet, files []string, config *Config, stats *Statistics) error {
	semaphore := make(chan struct{}, idx.workers)

	// Track progress with atomic counters
	var (
		indexed  int32
		skipped  int32
		failed   int32
		objects  int32
		warnings int32
	)

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex // Protect stats.ErrorMessages

	for i := 0; i < len(files); i += batchSize {
		end := i + batchSize
		if end > len(files) {
			end = len(files)
		}
		batch := files[i:end]

		g.Go(func() error {
			return idx.indexBatch(gctx, set, batch, semaphore, &indexed, &skipped, &failed, &objects, &warnings, &mu, stats)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	stats.FilesIndexed = int(indexed)
	stats.FilesSkipped = int(skipped)
	stats.FilesFailed = int(failed)
	stats.ObjectsResolved = int(objects)
	stats.Warnings = int(warnings)

	return nil
}

// indexBatch indexes a batch of files within a transaction
func (idx *Indexer) indexBatch(ctx context.Context, set *storage.MibSet, files []string,
	semaphore chan struct{}, indexed, skipped, failed, objects, warnings *int32,
	mu *sync.Mutex, stats *Statistics) error {

	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case semaphore <- struct{}{}:
			// Acquire semaphore
		}

		err := idx.indexFile(ctx, tx, set, filePath, indexed, skipped, objects, warnings)
		<-semaphore // Release semaphore

		if err != nil {
			atomic.AddInt32(failed, 1)
			idx.log.Warn().Err(err).Str("file", filePath).Msg("failed to index file")
			mu.Lock()
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", filePath, err))
			mu.Unlock()
			// Continue with other files
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// indexFile indexes a single MIB file
func (idx *Indexer) indexFile(ctx context.Context, store storage.Storage, set *storage.MibSet,
	filePath string, indexed, skipped, objects, warnings *int32) error {

	relPath, err := filepath.Rel(set.RootPath, filePath)
	if err != nil {
		return err
	}

	hash, modTime, sizeBytes, err := computeFileHash(filePath)
	if err != nil {
		return err
	}

	shouldSkip, err := idx.checkFileChanged(ctx, store, set.ID, relPath, hash, skipped)
	if err != nil {
		return err
	}
	if shouldSkip {
		return nil
	}

	source, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	file := &storage.File{
		SetID:       set.ID,
		FilePath:    relPath,
		ContentHash: hash,
		ModTime:     modTime,
		SizeBytes:   sizeBytes,
	}

	result, parseErr := mibparser.Parse(string(source))
	if parseErr != nil {
		// A fatal parse error still records the file so re-runs skip it
		// until the content changes.
		errMsg := parseErr.Error()
		file.ParseError = &errMsg
		if err := store.UpsertFile(ctx, file); err != nil {
			return err
		}
		return parseErr
	}

	file.ModuleName = result.ModuleName
	if err := store.UpsertFile(ctx, file); err != nil {
		return err
	}

	if err := store.ReplaceImports(ctx, file.ID, result.Imports); err != nil {
		return fmt.Errorf("failed to store imports: %w", err)
	}

	objectCount := 0
	for i := range result.Variables {
		v := &result.Variables[i]
		obj := storage.FromVariable(v, file.ID)
		if err := store.UpsertObject(ctx, obj); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
		if err := store.ReplaceEnumValues(ctx, obj.ID, v.EnumValues); err != nil {
			return fmt.Errorf("failed to store enum values: %w", err)
		}
		objectCount++
	}

	if err := store.ReplaceWarnings(ctx, file.ID, result.Warnings); err != nil {
		return fmt.Errorf("failed to store warnings: %w", err)
	}

	atomic.AddInt32(indexed, 1)
	atomic.AddInt32(objects, int32(objectCount))
	atomic.AddInt32(warnings, int32(len(result.Warnings)))

	return nil
}

// checkFileChanged reports whether a file is unchanged since the last run.
// Changed files have their old objects removed before re-indexing.
func (idx *Indexer) checkFileChanged(ctx context.Context, store storage.Storage, setID int64,
	relPath string, hash [32]byte, skipped *int32) (bool, error) {

	existingFile, err := store.GetFile(ctx, setID, relPath)
	if err == storage.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if existingFile.ContentHash == hash {
		atomic.AddInt32(skipped, 1)
		return true, nil
	}

	if err := store.DeleteObjectsByFile(ctx, existingFile.ID); err != nil {
		return false, fmt.Errorf("failed to delete old objects: %w", err)
	}

	return false, nil
}

// updateSetStats updates the set's file and object counts
func (idx *Indexer) updateSetStats(ctx context.Context, set *storage.MibSet) error {
	files, err := idx.storage.ListFiles(ctx, set.ID)
	if err != nil {
		return err
	}

	totalObjects := 0
	for _, file := range files {
		objects, err := idx.storage.ListObjectsByFile(ctx, file.ID)
		if err != nil {
			return err
		}
		totalObjects += len(objects)
	}

	set.TotalFiles = len(files)
	set.TotalObjects = totalObjects
	set.LastIndexedAt = time.Now()

	return idx.storage.UpdateSet(ctx, set)
}

// computeFileHash computes SHA-256 hash of a file
func computeFileHash(filePath string) ([32]byte, time.Time, int64, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}

	var result [32]byte
	copy(result[:], hash.Sum(nil))

	return result, info.ModTime(), info.Size(), nil
}
