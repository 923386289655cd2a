package provider

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/uimeta/pkg/util"
)

// kindPatterns maps each artifact kind to the include globs probed for
// it, relative to the tree root.
var kindPatterns = map[Kind][]string{
	KindSource: {"**/*.tsx", "**/*.ts", "**/*.jsx", "**/*.js"},
	KindStory:  {"**/*.stories.tsx", "**/*.stories.ts", "**/*.stories.jsx", "**/*.stories.js"},
	KindDocs:   {"**/*.mdx", "**/*.md"},
	KindTheme:  {"**/theme.ts", "**/theme.js", "**/tokens.ts", "**/tokens.js", "**/*.theme.ts", "**/theme/**/*.ts"},
	KindTest:   {"**/*.test.tsx", "**/*.test.ts", "**/*.spec.tsx", "**/*.spec.ts", "**/*.test.jsx", "**/*.test.js"},
}

// DefaultExcludes are pruned from every discovery walk.
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
	"**/coverage/**",
}

// LocalConfig configures a LocalProvider.
type LocalConfig struct {
	// Root is the directory holding the component library.
	Root string

	// Exclude adds glob patterns on top of DefaultExcludes.
	Exclude []string

	// CacheCapacity bounds the underlying file cache; 0 uses the
	// default.
	CacheCapacity int
}

// LocalProvider resolves artifacts by globbing a directory tree and
// matching file stems against component names.
type LocalProvider struct {
	root    string
	exclude []string
	files   *util.FileCache
	logger  *slog.Logger
}

// NewLocalProvider creates a provider over cfg.Root. The root is
// resolved to an absolute path so later watcher events compare cleanly.
func NewLocalProvider(cfg LocalConfig, logger *slog.Logger) (*LocalProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	exclude := append([]string{}, DefaultExcludes...)
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
		exclude = append(exclude, pattern)
	}

	return &LocalProvider{
		root:    root,
		exclude: exclude,
		files:   util.NewFileCache(cfg.CacheCapacity, logger),
		logger:  logger,
	}, nil
}

// Root returns the absolute tree root.
func (lp *LocalProvider) Root() string { return lp.root }

// InvalidateFile drops any cached text for path.
func (lp *LocalProvider) InvalidateFile(path string) {
	lp.files.Invalidate(path)
}

// Close releases the underlying file cache.
func (lp *LocalProvider) Close() {
	lp.files.Close()
}

// FetchText locates the best candidate file for the identifier and
// returns its contents.
func (lp *LocalProvider) FetchText(ctx context.Context, id Identifier) (string, error) {
	path, err := lp.Resolve(ctx, id)
	if err != nil {
		return "", err
	}

	text, err := lp.files.ReadString(path)
	if err != nil {
		return "", fmt.Errorf("read %s artifact for %q: %w", id.Kind, id.Component, err)
	}
	return text, nil
}

// Resolve returns the path of the file that FetchText would read,
// without reading it. Used by the registry to answer existence checks.
func (lp *LocalProvider) Resolve(ctx context.Context, id Identifier) (string, error) {
	candidates, err := lp.discover(ctx, kindPatterns[id.Kind])
	if err != nil {
		return "", err
	}

	if id.Kind == KindSource {
		candidates = rejectSourceNoise(candidates)
	}

	target := normalizeName(id.Component)
	for _, path := range candidates {
		if matchesComponent(path, target) {
			return path, nil
		}
	}

	// Theme artifacts are library-wide: any candidate serves when no
	// stem matches the (often empty) component name.
	if id.Kind == KindTheme && len(candidates) > 0 {
		return candidates[0], nil
	}

	return "", fmt.Errorf("%s artifact for %q under %s: %w", id.Kind, id.Component, lp.root, ErrNotFound)
}

// ListComponents derives component names from source file stems.
// Index files contribute their directory name. Results are deduplicated
// and sorted.
func (lp *LocalProvider) ListComponents(ctx context.Context) ([]string, error) {
	paths, err := lp.discover(ctx, kindPatterns[KindSource])
	if err != nil {
		return nil, err
	}
	paths = rejectSourceNoise(paths)

	seen := map[string]bool{}
	names := []string{}
	for _, path := range paths {
		stem := fileStem(path)
		if stem == "index" {
			stem = filepath.Base(filepath.Dir(path))
		}
		name := pascalCase(stem)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// discover walks the root applying include and exclude globs, returning
// sorted absolute paths for deterministic resolution.
func (lp *LocalProvider) discover(ctx context.Context, include []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(lp.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		relPath, err := filepath.Rel(lp.root, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range lp.exclude {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		for _, pattern := range include {
			if m, _ := doublestar.PathMatch(pattern, relPath); m {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover files under %s: %w", lp.root, err)
	}

	sort.Strings(files)
	return files, nil
}

// rejectSourceNoise drops story, test, and declaration files from
// source candidates; they match the broad source globs but are separate
// artifact kinds.
func rejectSourceNoise(paths []string) []string {
	kept := paths[:0:0]
	for _, path := range paths {
		base := strings.ToLower(filepath.Base(path))
		if strings.Contains(base, ".stories.") ||
			strings.Contains(base, ".test.") ||
			strings.Contains(base, ".spec.") ||
			strings.HasSuffix(base, ".d.ts") {
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

// matchesComponent reports whether the file stem (or, for index files,
// the directory name) names the target component.
func matchesComponent(path, target string) bool {
	if target == "" {
		return false
	}
	stem := fileStem(path)
	if stem == "index" {
		stem = filepath.Base(filepath.Dir(path))
	}
	return normalizeName(stem) == target
}

// fileStem is the base name up to its first dot: button.stories.tsx
// yields button.
func fileStem(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

var nameSeparators = strings.NewReplacer("-", "", "_", "", ".", "", " ", "")

// normalizeName folds case and separator conventions so Button,
// button, and my-button/index.tsx all compare equal.
func normalizeName(name string) string {
	return strings.ToLower(nameSeparators.Replace(name))
}

// pascalCase converts a kebab- or snake-case stem to an exported-style
// component name.
func pascalCase(stem string) string {
	parts := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
