// Package registry assembles extracted metadata records on top of a
// provider. It is the only layer that knows which artifact kind feeds
// which extractor; the extractors themselves stay pure text functions.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gnana997/uimeta/pkg/extract"
	"github.com/gnana997/uimeta/pkg/provider"
)

// Registry resolves component names to extracted metadata.
type Registry struct {
	source  provider.SourceProvider
	logger  *slog.Logger
	workers int
}

// Option configures a Registry.
type Option func(*Registry)

// WithWorkers overrides the bulk-scan worker count. 0 keeps the
// auto-detected size.
func WithWorkers(n int) Option {
	return func(r *Registry) { r.workers = n }
}

// New creates a registry over source.
func New(source provider.SourceProvider, logger *slog.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{source: source, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListComponents returns the component names the provider can resolve.
func (r *Registry) ListComponents(ctx context.Context) ([]string, error) {
	return r.source.ListComponents(ctx)
}

// ComponentMetadata extracts the full component record. The source
// artifact is required; story, docs, and test artifacts only set the
// presence flags.
func (r *Registry) ComponentMetadata(ctx context.Context, name string) (extract.ComponentMetadata, error) {
	text, err := r.source.FetchText(ctx, provider.Identifier{Component: name, Kind: provider.KindSource})
	if err != nil {
		return extract.ComponentMetadata{}, fmt.Errorf("component %q: %w", name, err)
	}

	meta := extract.ParseComponentMetadata(name, text)
	meta.HasStories = r.hasArtifact(ctx, name, provider.KindStory)
	meta.HasDocumentation = r.hasArtifact(ctx, name, provider.KindDocs)
	meta.HasTests = r.hasArtifact(ctx, name, provider.KindTest)
	return meta, nil
}

// StoryMetadata extracts story metadata from the component's story
// artifact.
func (r *Registry) StoryMetadata(ctx context.Context, name string) (extract.StoryMetadata, error) {
	text, err := r.source.FetchText(ctx, provider.Identifier{Component: name, Kind: provider.KindStory})
	if err != nil {
		return extract.StoryMetadata{}, fmt.Errorf("stories for %q: %w", name, err)
	}
	return extract.ParseStoryMetadata(name, text), nil
}

// Documentation extracts the structured documentation record.
func (r *Registry) Documentation(ctx context.Context, name string) (extract.MDXContent, error) {
	text, err := r.source.FetchText(ctx, provider.Identifier{Component: name, Kind: provider.KindDocs})
	if err != nil {
		return extract.MDXContent{}, fmt.Errorf("documentation for %q: %w", name, err)
	}
	return extract.ParseMDXContent(name, text), nil
}

// DocumentationMetadata extracts the documentation summary record.
func (r *Registry) DocumentationMetadata(ctx context.Context, name string) (extract.MDXMetadata, error) {
	text, err := r.source.FetchText(ctx, provider.Identifier{Component: name, Kind: provider.KindDocs})
	if err != nil {
		return extract.MDXMetadata{}, fmt.Errorf("documentation for %q: %w", name, err)
	}
	return extract.ParseMDXMetadata(name, text), nil
}

// ThemeTokens extracts the library's design tokens, optionally filtered
// to one category.
func (r *Registry) ThemeTokens(ctx context.Context, category string) (extract.ThemeTokens, error) {
	text, err := r.source.FetchText(ctx, provider.Identifier{Kind: provider.KindTheme})
	if err != nil {
		return extract.ThemeTokens{}, fmt.Errorf("theme: %w", err)
	}

	tokens := extract.ExtractThemeTokens(text)
	if category != "" {
		tokens = extract.FilterTokensByCategory(tokens, category)
	}
	return tokens, nil
}

// ThemeMetadata extracts the theme summary record.
func (r *Registry) ThemeMetadata(ctx context.Context) (extract.ThemeMetadata, error) {
	text, err := r.source.FetchText(ctx, provider.Identifier{Kind: provider.KindTheme})
	if err != nil {
		return extract.ThemeMetadata{}, fmt.Errorf("theme: %w", err)
	}
	return extract.ExtractThemeMetadata(text), nil
}

// hasArtifact probes an artifact kind for presence. Resolution failures
// other than NotFound are logged and reported as absent; presence flags
// never fail a metadata request.
func (r *Registry) hasArtifact(ctx context.Context, name string, kind provider.Kind) bool {
	_, err := r.source.FetchText(ctx, provider.Identifier{Component: name, Kind: kind})
	if err == nil {
		return true
	}
	if !errors.Is(err, provider.ErrNotFound) {
		r.logger.Warn("artifact probe failed", "component", name, "kind", kind, "error", err)
	}
	return false
}
