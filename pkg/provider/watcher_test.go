package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_InvalidatesOnWrite(t *testing.T) {
	root := newLibraryFixture(t)
	lp, err := NewLocalProvider(LocalConfig{Root: root}, nil)
	require.NoError(t, err)
	defer lp.Close()

	cp := NewCachingProvider(lp, 8, nil)
	ctx := context.Background()
	id := Identifier{Component: "Button", Kind: KindSource}

	_, err = cp.FetchText(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, cp.Len())

	w, err := NewWatcher(lp, cp, WatchOptions{DebounceMs: 25}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	path := filepath.Join(root, "src", "components", "button.tsx")
	require.NoError(t, os.WriteFile(path, []byte("export const Button = () => <span />;"), 0644))

	assert.Eventually(t, func() bool {
		return cp.Len() == 0
	}, 3*time.Second, 20*time.Millisecond)

	// A fresh fetch sees the new contents.
	assert.Eventually(t, func() bool {
		text, err := cp.FetchText(ctx, id)
		return err == nil && text == "export const Button = () => <span />;"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_ThemeEditInvalidatesThemeKind(t *testing.T) {
	root := newLibraryFixture(t)
	lp, err := NewLocalProvider(LocalConfig{Root: root}, nil)
	require.NoError(t, err)
	defer lp.Close()

	cp := NewCachingProvider(lp, 8, nil)
	ctx := context.Background()

	_, err = cp.FetchText(ctx, Identifier{Kind: KindTheme})
	require.NoError(t, err)
	require.Equal(t, 1, cp.Len())

	w, err := NewWatcher(lp, cp, WatchOptions{DebounceMs: 25}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	path := filepath.Join(root, "src", "theme", "theme.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const theme = {};"), 0644))

	assert.Eventually(t, func() bool {
		return cp.Len() == 0
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	lp, err := NewLocalProvider(LocalConfig{Root: t.TempDir()}, nil)
	require.NoError(t, err)
	defer lp.Close()

	w, err := NewWatcher(lp, nil, WatchOptions{}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestIsThemeFile(t *testing.T) {
	assert.True(t, isThemeFile("/lib/src/theme/theme.ts"))
	assert.True(t, isThemeFile("/lib/src/tokens.ts"))
	assert.True(t, isThemeFile("/lib/src/acme.theme.ts"))
	assert.True(t, isThemeFile("/lib/src/theme/colors.ts"))
	assert.False(t, isThemeFile("/lib/src/components/button.tsx"))
}
