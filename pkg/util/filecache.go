package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
	lru "github.com/hashicorp/golang-lru/v2"
)

// FileCache provides repeated file reads backed by memory-mapped files
// with LRU eviction. Reads return copies, so evicting a mapping never
// invalidates text handed to a caller. If a file cannot be mapped the
// cache falls back to a plain read and keeps the bytes in memory.
type FileCache struct {
	logger *slog.Logger

	mu    sync.Mutex
	files *lru.Cache[string, *mappedFile]
	stats FileCacheStats
}

// FileCacheStats tracks cache effectiveness.
type FileCacheStats struct {
	Hits         int64
	Misses       int64
	MmapFailures int64
	FilesCached  int
}

type mappedFile struct {
	data     mmap.MMap
	file     *os.File
	fallback []byte
}

func (mf *mappedFile) bytes() []byte {
	if mf.data != nil {
		return mf.data
	}
	return mf.fallback
}

func (mf *mappedFile) release(logger *slog.Logger) {
	if mf.data != nil {
		if err := mf.data.Unmap(); err != nil {
			logger.Warn("failed to unmap file", "error", err)
		}
	}
	if mf.file != nil {
		if err := mf.file.Close(); err != nil {
			logger.Warn("failed to close file", "error", err)
		}
	}
}

// DefaultFileCacheCapacity bounds the number of concurrently mapped
// files. Component libraries rarely exceed a few hundred source files.
const DefaultFileCacheCapacity = 512

// NewFileCache creates a cache holding at most capacity mapped files.
// A capacity of 0 or less uses DefaultFileCacheCapacity. If logger is
// nil the default slog logger is used.
func NewFileCache(capacity int, logger *slog.Logger) *FileCache {
	if capacity <= 0 {
		capacity = DefaultFileCacheCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}

	fc := &FileCache{logger: logger}
	cache, err := lru.NewWithEvict(capacity, func(_ string, mf *mappedFile) {
		mf.release(fc.logger)
	})
	if err != nil {
		// Only reachable with a non-positive capacity, which is
		// normalized above.
		panic(fmt.Sprintf("file cache init: %v", err))
	}
	fc.files = cache
	return fc
}

// ReadString returns the full contents of the file at path, mapping it
// on first access.
func (fc *FileCache) ReadString(path string) (string, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.files.Get(path); ok {
		fc.stats.Hits++
		return string(mf.bytes()), nil
	}
	fc.stats.Misses++

	mf, err := fc.load(path)
	if err != nil {
		return "", err
	}
	fc.files.Add(path, mf)
	return string(mf.bytes()), nil
}

// load opens and maps a file, falling back to a plain read when mmap
// fails. Empty files cannot be mapped and are held as empty fallbacks.
func (fc *FileCache) load(path string) (*mappedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	if stat.Size() == 0 {
		file.Close()
		return &mappedFile{fallback: []byte{}}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, using fallback read",
			"file", path,
			"size", stat.Size(),
			"error", err)
		fc.stats.MmapFailures++
		file.Close()

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %q after mmap failure (%v): %w", path, err, readErr)
		}
		return &mappedFile{fallback: raw}, nil
	}

	return &mappedFile{data: data, file: file}, nil
}

// Invalidate drops the cached mapping for path, if present.
func (fc *FileCache) Invalidate(path string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.files.Remove(path)
}

// Stats returns a snapshot of cache metrics.
func (fc *FileCache) Stats() FileCacheStats {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	stats := fc.stats
	stats.FilesCached = fc.files.Len()
	return stats
}

// Close releases every mapping. The cache remains usable afterwards;
// subsequent reads simply remap.
func (fc *FileCache) Close() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.files.Purge()
}
