// Package provider resolves component artifact text from a source tree.
//
// A SourceProvider answers "give me the story file text for Button"
// without the caller knowing how the tree is laid out or where it came
// from. Implementations cover a local directory, a git remote synced to
// a local cache directory, and an LRU-caching decorator.
package provider

import (
	"context"
	"errors"
)

// Kind names one artifact category of a component.
type Kind string

const (
	KindSource Kind = "source"
	KindStory  Kind = "story"
	KindDocs   Kind = "docs"
	KindTheme  Kind = "theme"
	KindTest   Kind = "test"
)

// Identifier names one artifact of one component. Theme artifacts are
// library-wide; their Component may be empty.
type Identifier struct {
	Component string
	Kind      Kind
}

// ErrNotFound reports that no file in the source tree provides the
// requested artifact. Callers distinguish it from I/O failures with
// errors.Is.
var ErrNotFound = errors.New("artifact not found")

// SourceProvider resolves artifact text for components of one library.
type SourceProvider interface {
	// FetchText returns the full text of the artifact, or an error
	// wrapping ErrNotFound when no candidate file exists.
	FetchText(ctx context.Context, id Identifier) (string, error)

	// ListComponents returns the sorted component names discoverable in
	// the tree.
	ListComponents(ctx context.Context) ([]string, error)
}
