package provider

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of cached artifact texts.
const DefaultCacheSize = 256

// CachingProvider decorates a SourceProvider with an LRU cache of
// artifact text. Lookups that fail, including ErrNotFound, are never
// cached, so a component added after a miss is picked up on the next
// fetch.
type CachingProvider struct {
	inner  SourceProvider
	texts  *lru.Cache[string, string]
	logger *slog.Logger
}

// NewCachingProvider wraps inner with a cache of at most size entries.
// A size of 0 or less uses DefaultCacheSize.
func NewCachingProvider(inner SourceProvider, size int, logger *slog.Logger) *CachingProvider {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	// lru.New errors only on non-positive sizes.
	texts, _ := lru.New[string, string](size)

	return &CachingProvider{
		inner:  inner,
		texts:  texts,
		logger: logger,
	}
}

// FetchText serves from the cache when possible, delegating to the
// wrapped provider on a miss.
func (cp *CachingProvider) FetchText(ctx context.Context, id Identifier) (string, error) {
	key := cacheKey(id)
	if text, ok := cp.texts.Get(key); ok {
		cp.logger.Debug("artifact cache hit", "component", id.Component, "kind", id.Kind)
		return text, nil
	}

	text, err := cp.inner.FetchText(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			cp.logger.Debug("artifact fetch failed", "component", id.Component, "kind", id.Kind, "error", err)
		}
		return "", err
	}

	cp.texts.Add(key, text)
	return text, nil
}

// ListComponents always delegates; listings are cheap relative to the
// staleness they would introduce if cached.
func (cp *CachingProvider) ListComponents(ctx context.Context) ([]string, error) {
	return cp.inner.ListComponents(ctx)
}

// InvalidateComponent drops every cached artifact of the named
// component.
func (cp *CachingProvider) InvalidateComponent(name string) {
	suffix := ":" + normalizeName(name)
	for _, key := range cp.texts.Keys() {
		if strings.HasSuffix(key, suffix) {
			cp.texts.Remove(key)
		}
	}
}

// InvalidateKind drops every cached artifact of one kind. Theme edits
// use this: theme artifacts are library-wide, not per-component.
func (cp *CachingProvider) InvalidateKind(kind Kind) {
	prefix := string(kind) + ":"
	for _, key := range cp.texts.Keys() {
		if strings.HasPrefix(key, prefix) {
			cp.texts.Remove(key)
		}
	}
}

// Purge empties the cache.
func (cp *CachingProvider) Purge() {
	cp.texts.Purge()
}

// Len returns the number of cached artifacts.
func (cp *CachingProvider) Len() int {
	return cp.texts.Len()
}

func cacheKey(id Identifier) string {
	return string(id.Kind) + ":" + normalizeName(id.Component)
}
