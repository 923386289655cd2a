package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLibraryFixture lays out a small component library on disk.
func newLibraryFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"src/components/button.tsx":           "export const Button = () => null;",
		"src/components/button.stories.tsx":   "export const Primary = () => <Button />;",
		"src/components/button.test.tsx":      "it('renders', () => {});",
		"src/components/button.mdx":           "# Button\n\nDocs body.",
		"src/components/date-picker/index.tsx": "export const DatePicker = () => null;",
		"src/theme/theme.ts":                  "export const theme = { spacing: { sm: '4px' } };",
		"node_modules/pkg/ignored.tsx":        "export const Ignored = () => null;",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newLocalFixture(t *testing.T) *LocalProvider {
	t.Helper()
	lp, err := NewLocalProvider(LocalConfig{Root: newLibraryFixture(t)}, nil)
	require.NoError(t, err)
	t.Cleanup(lp.Close)
	return lp
}

func TestLocalProvider_FetchText(t *testing.T) {
	lp := newLocalFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		id   Identifier
		want string
	}{
		{
			name: "source",
			id:   Identifier{Component: "Button", Kind: KindSource},
			want: "export const Button = () => null;",
		},
		{
			name: "story",
			id:   Identifier{Component: "Button", Kind: KindStory},
			want: "export const Primary = () => <Button />;",
		},
		{
			name: "docs",
			id:   Identifier{Component: "Button", Kind: KindDocs},
			want: "# Button\n\nDocs body.",
		},
		{
			name: "theme without component",
			id:   Identifier{Kind: KindTheme},
			want: "export const theme = { spacing: { sm: '4px' } };",
		},
		{
			name: "index file by directory name",
			id:   Identifier{Component: "DatePicker", Kind: KindSource},
			want: "export const DatePicker = () => null;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lp.FetchText(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalProvider_NotFound(t *testing.T) {
	lp := newLocalFixture(t)

	_, err := lp.FetchText(context.Background(), Identifier{Component: "Missing", Kind: KindSource})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	// Story files are not source candidates, and vice versa.
	_, err = lp.FetchText(context.Background(), Identifier{Component: "Primary", Kind: KindSource})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalProvider_ListComponents(t *testing.T) {
	lp := newLocalFixture(t)

	names, err := lp.ListComponents(context.Background())
	require.NoError(t, err)

	assert.Contains(t, names, "Button")
	assert.Contains(t, names, "DatePicker")
	assert.NotContains(t, names, "Ignored")
	assert.IsIncreasing(t, names)
}

func TestLocalProvider_ExtraExcludes(t *testing.T) {
	root := newLibraryFixture(t)
	lp, err := NewLocalProvider(LocalConfig{
		Root:    root,
		Exclude: []string{"src/components/**"},
	}, nil)
	require.NoError(t, err)
	defer lp.Close()

	_, err = lp.FetchText(context.Background(), Identifier{Component: "Button", Kind: KindSource})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalProvider_InvalidExcludePattern(t *testing.T) {
	_, err := NewLocalProvider(LocalConfig{
		Root:    t.TempDir(),
		Exclude: []string{"[invalid"},
	}, nil)
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "datepicker", normalizeName("DatePicker"))
	assert.Equal(t, "datepicker", normalizeName("date-picker"))
	assert.Equal(t, "datepicker", normalizeName("date_picker"))
}

func TestPascalCase(t *testing.T) {
	assert.Equal(t, "DatePicker", pascalCase("date-picker"))
	assert.Equal(t, "Button", pascalCase("button"))
	assert.Equal(t, "MyWidget", pascalCase("my_widget"))
}
