package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeSource = `export const theme = {
	name: 'acme',
	version: '2.1.0',
	colors: {
		primary: {
			main: '#2563eb',
			light: '#60a5fa',
			dark: '#1e40af',
			contrastText: '#ffffff',
		},
		error: {
			main: '#dc2626',
		},
	},
	typography: {
		fontFamily: {
			body: 'Inter, sans-serif',
			mono: 'JetBrains Mono, monospace',
		},
		fontSize: {
			sm: '0.875rem',
			md: '1rem',
			lg: '1.125rem',
		},
		fontWeight: {
			regular: 400,
			bold: 700,
		},
	},
	spacing: {
		sm: '0.5rem',
		md: '1rem',
		lg: '1.5rem',
	},
	shadows: {
		sm: '0 1px 2px rgb(0 0 0 / 0.05)',
	},
	borderRadius: {
		md: '0.375rem',
		full: '9999px',
	},
	zIndex: {
		modal: 1400,
		tooltip: 1500,
	},
	breakpoints: {
		sm: '640px',
		lg: '1024px',
	},
};
`

func TestExtractThemeTokens_Colors(t *testing.T) {
	tokens := ExtractThemeTokens(themeSource)

	require.NotNil(t, tokens.Colors)
	primary := tokens.Colors["primary"]
	assert.Equal(t, "#2563eb", primary.Main)
	assert.Equal(t, "#60a5fa", primary.Light)
	assert.Equal(t, "#1e40af", primary.Dark)
	assert.Equal(t, "#ffffff", primary.ContrastText)

	assert.Equal(t, "#dc2626", tokens.Colors["error"].Main)
	_, hasSecondary := tokens.Colors["secondary"]
	assert.False(t, hasSecondary)
}

func TestExtractThemeTokens_Typography(t *testing.T) {
	tokens := ExtractThemeTokens(themeSource)

	require.NotNil(t, tokens.Typography)
	assert.Equal(t, "Inter, sans-serif", tokens.Typography.FontFamily["body"])
	assert.Equal(t, "0.875rem", tokens.Typography.FontSize["sm"])
	assert.Equal(t, float64(700), tokens.Typography.FontWeight["bold"])
	assert.Equal(t, float64(400), tokens.Typography.FontWeight["regular"])
}

func TestExtractThemeTokens_Scales(t *testing.T) {
	tokens := ExtractThemeTokens(themeSource)

	assert.Equal(t, "1rem", tokens.Spacing["md"])
	assert.Equal(t, "0 1px 2px rgb(0 0 0 / 0.05)", tokens.Shadows["sm"])
	assert.Equal(t, "9999px", tokens.BorderRadius["full"])
	assert.Equal(t, float64(1400), tokens.ZIndex["modal"])
	assert.Equal(t, "640px", tokens.Breakpoints["sm"])
}

func TestExtractThemeTokens_PartialRecord(t *testing.T) {
	tokens := ExtractThemeTokens(`spacing: { sm: '4px' }`)

	assert.Nil(t, tokens.Colors)
	assert.Nil(t, tokens.Typography)
	assert.Nil(t, tokens.Shadows)
	require.NotNil(t, tokens.Spacing)
	assert.Equal(t, "4px", tokens.Spacing["sm"])
}

func TestExtractThemeTokens_Empty(t *testing.T) {
	tokens := ExtractThemeTokens("")

	assert.Nil(t, tokens.Colors)
	assert.Nil(t, tokens.Typography)
	assert.Nil(t, tokens.Spacing)
	assert.Nil(t, tokens.Shadows)
	assert.Nil(t, tokens.BorderRadius)
	assert.Nil(t, tokens.ZIndex)
	assert.Nil(t, tokens.Breakpoints)
}

func TestExtractThemeMetadata(t *testing.T) {
	meta := ExtractThemeMetadata(themeSource)

	assert.Equal(t, "acme", meta.Name)
	assert.Equal(t, "2.1.0", meta.Version)
	assert.Equal(t, "light", meta.Mode)
	assert.True(t, meta.HasColors)
	assert.True(t, meta.HasTypography)
	assert.True(t, meta.HasSpacing)
	assert.Equal(t,
		[]string{"colors", "typography", "spacing", "shadows", "borderRadius", "zIndex", "breakpoints"},
		meta.Categories)

	// 5 color slots + 7 typography + 3 spacing + 2 z-index +
	// 2 breakpoints, plus shadows (1 own + 2 cross-matched) and
	// borderRadius (2 own + 2 cross-matched): unscoped leaf patterns
	// pick up same-named leaves from later categories.
	assert.Equal(t, 26, meta.TokenCount)
}

func TestExtractThemeMetadata_Defaults(t *testing.T) {
	meta := ExtractThemeMetadata("")

	assert.Equal(t, "custom-theme", meta.Name)
	assert.Equal(t, "1.0.0", meta.Version)
	assert.Equal(t, "light", meta.Mode)
	assert.Zero(t, meta.TokenCount)
	assert.Empty(t, meta.Categories)
}

func TestDetectThemeMode(t *testing.T) {
	assert.Equal(t, "dark", DetectThemeMode("enables the dark mode toggle"))
	assert.Equal(t, "dark", DetectThemeMode("const darkTheme = {}"))
	assert.Equal(t, "light", DetectThemeMode("nothing thematic here"))
	// Asymmetric default: light vocabulary is never checked.
	assert.Equal(t, "light", DetectThemeMode("light mode only"))
	assert.Equal(t, "light", DetectThemeMode(""))
}

func TestFilterTokensByCategory(t *testing.T) {
	tokens := ExtractThemeTokens(themeSource)

	colors := FilterTokensByCategory(tokens, "palette")
	assert.NotNil(t, colors.Colors)
	assert.Nil(t, colors.Spacing)
	assert.Nil(t, colors.Typography)

	fonts := FilterTokensByCategory(tokens, "font")
	assert.NotNil(t, fonts.Typography)
	assert.Nil(t, fonts.Colors)

	z := FilterTokensByCategory(tokens, "z")
	assert.NotNil(t, z.ZIndex)

	// Unrecognized alias returns the full set.
	all := FilterTokensByCategory(tokens, "everything")
	assert.Equal(t, tokens, all)
}

func TestExtractThemeTokens_CrossMatchLimitation(t *testing.T) {
	// Leaf patterns are not scoped to their enclosing object: a later
	// declaration sharing a leaf name satisfies an earlier family. This
	// is a documented limitation, preserved rather than corrected.
	text := `const fontSize = computeScale();
const other = { sm: '12px' };`

	tokens := ExtractThemeTokens(text)
	require.NotNil(t, tokens.Typography)
	assert.Equal(t, "12px", tokens.Typography.FontSize["sm"])
}
