package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gnana997/uimeta/pkg/textscan"
)

// colorFamilies are the named scales probed for main/light/dark/contrast
// slots.
var colorFamilies = []string{"primary", "secondary", "success", "warning", "error", "info"}

// Leaf-name dictionaries per token family. Each entry becomes one pattern
// applied against the entire input text — deliberately not scoped to an
// enclosing declaration, so two unrelated declarations sharing a leaf
// name can cross-match. That looseness is part of the contract.
var (
	fontFamilyLeaves = []string{"heading", "body", "mono", "sans", "serif"}
	fontSizeLeaves   = []string{"xs", "sm", "md", "base", "lg", "xl", "2xl", "3xl", "4xl"}
	fontWeightLeaves = []string{"light", "regular", "normal", "medium", "semibold", "bold"}
	lineHeightLeaves = []string{"tight", "snug", "normal", "relaxed", "loose"}
	spacingLeaves    = []string{"xs", "sm", "md", "lg", "xl", "2xl", "3xl", "4xl"}
	shadowLeaves     = []string{"xs", "sm", "md", "lg", "xl", "inner"}
	radiusLeaves     = []string{"none", "sm", "md", "lg", "full"}
	zIndexLeaves     = []string{"dropdown", "sticky", "overlay", "modal", "popover", "tooltip", "toast"}
	breakpointLeaves = []string{"xs", "sm", "md", "lg", "xl", "2xl"}
)

// darkModeVocabulary marks a theme as dark when any entry appears in the
// lower-cased text. There is no symmetric light check: anything not
// recognizably dark defaults to light. The entries are phrases rather
// than the bare word "dark" so that a palette's `dark:` shade slot does
// not flip the whole theme.
var darkModeVocabulary = []string{
	"dark mode",
	"darkmode",
	"dark-mode",
	"mode: 'dark'",
	`mode: "dark"`,
	"darktheme",
	"dark theme",
}

var (
	themeNameRe    = regexp.MustCompile(`name\s*:\s*['"]([^'"]+)['"]`)
	themeVersionRe = regexp.MustCompile(`version\s*:\s*['"]([^'"]+)['"]`)
)

const defaultThemeName = "custom-theme"

// ExtractThemeTokens mines design-token definition text into a partial
// ThemeTokens record. Every token family is recovered independently; a
// category is present in the result only if at least one of its leaf
// patterns matched.
func ExtractThemeTokens(text string) ThemeTokens {
	tokens := ThemeTokens{}

	tokens.Colors = extractColorScales(text)

	// The labelled-object color miner runs but its result is not merged;
	// the leaf patterns above are the source of truth for color values.
	_ = parseColorBlock(text, "palette")

	typography := TypographyTokens{
		FontFamily: extractStringLeaves(text, "fontFamily", fontFamilyLeaves),
		FontSize:   extractStringLeaves(text, "fontSize", fontSizeLeaves),
		FontWeight: extractNumberLeaves(text, "fontWeight", fontWeightLeaves),
		LineHeight: extractStringLeaves(text, "lineHeight", lineHeightLeaves),
	}
	if typography.FontFamily != nil || typography.FontSize != nil ||
		typography.FontWeight != nil || typography.LineHeight != nil {
		tokens.Typography = &typography
	}

	tokens.Spacing = extractStringLeaves(text, "spacing", spacingLeaves)
	tokens.Shadows = extractStringLeaves(text, "shadows", shadowLeaves)
	tokens.BorderRadius = extractStringLeaves(text, "borderRadius", radiusLeaves)
	tokens.ZIndex = extractNumberLeaves(text, "zIndex", zIndexLeaves)
	tokens.Breakpoints = extractStringLeaves(text, "breakpoints", breakpointLeaves)

	return tokens
}

// extractColorScales probes each named color family for its shade slots.
func extractColorScales(text string) map[string]ColorScale {
	var colors map[string]ColorScale

	for _, family := range colorFamilies {
		scale := ColorScale{}
		matched := false
		if v, ok := leafString(text, family, "main"); ok {
			scale.Main = v
			matched = true
		}
		if v, ok := leafString(text, family, "light"); ok {
			scale.Light = v
			matched = true
		}
		if v, ok := leafString(text, family, "dark"); ok {
			scale.Dark = v
			matched = true
		}
		if v, ok := leafString(text, family, "contrastText"); ok {
			scale.ContrastText = v
			matched = true
		}
		if matched {
			if colors == nil {
				colors = map[string]ColorScale{}
			}
			colors[family] = scale
		}
	}

	return colors
}

// extractStringLeaves applies the family's per-leaf patterns, returning
// nil when nothing matched. Unquoted numeric values are accepted and kept
// in their textual form.
func extractStringLeaves(text, family string, leaves []string) map[string]string {
	var out map[string]string
	for _, leaf := range leaves {
		v, ok := leafString(text, family, leaf)
		if !ok {
			v, ok = leafNumberText(text, family, leaf)
		}
		if !ok {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[leaf] = v
	}
	return out
}

// extractNumberLeaves is the numeric variant: quoted or bare numbers.
func extractNumberLeaves(text, family string, leaves []string) map[string]float64 {
	var out map[string]float64
	for _, leaf := range leaves {
		raw, ok := leafNumberText(text, family, leaf)
		if !ok {
			if s, sok := leafString(text, family, leaf); sok {
				raw, ok = s, true
			}
		}
		if !ok {
			continue
		}
		n, err := parseNumber(raw)
		if err != nil {
			continue
		}
		if out == nil {
			out = map[string]float64{}
		}
		out[leaf] = n
	}
	return out
}

// leafString matches `<family> ... <leaf>: '<value>'` anywhere in the
// text, quoted value form.
func leafString(text, family, leaf string) (string, bool) {
	re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(family) + `.*?\b` + regexp.QuoteMeta(leaf) + `\s*:\s*['"]([^'"\n]*)['"]`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// leafNumberText is the bare-number form of leafString.
func leafNumberText(text, family, leaf string) (string, bool) {
	re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(family) + `.*?\b` + regexp.QuoteMeta(leaf) + `\s*:\s*(-?\d+(?:\.\d+)?)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseNumber(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// parseColorBlock mines the object literal following a label into a
// generic value map. Callers currently discard the result; it exists for
// the labelled-palette form that the leaf dictionaries do not cover.
func parseColorBlock(text, label string) textscan.Object {
	body, ok := textscan.BlockAfter(text, label, '{', '}')
	if !ok {
		return nil
	}
	return textscan.ParseObject(body)
}

// ExtractThemeMetadata derives summary metadata from theme text.
func ExtractThemeMetadata(text string) ThemeMetadata {
	tokens := ExtractThemeTokens(text)

	meta := ThemeMetadata{
		Name:          defaultThemeName,
		Mode:          DetectThemeMode(text),
		Version:       "1.0.0",
		TokenCount:    countTokens(tokens),
		Categories:    populatedCategories(tokens),
		HasColors:     tokens.Colors != nil,
		HasTypography: tokens.Typography != nil,
		HasSpacing:    tokens.Spacing != nil,
	}

	if m := themeNameRe.FindStringSubmatch(text); m != nil {
		meta.Name = m[1]
	}
	if m := themeVersionRe.FindStringSubmatch(text); m != nil {
		meta.Version = m[1]
	}

	return meta
}

// DetectThemeMode returns "dark" when the lower-cased text contains any
// dark-indicator vocabulary, otherwise "light".
func DetectThemeMode(text string) string {
	lower := strings.ToLower(text)
	for _, marker := range darkModeVocabulary {
		if strings.Contains(lower, marker) {
			return "dark"
		}
	}
	return "light"
}

// countTokens counts the leaf values of a token tree.
func countTokens(tokens ThemeTokens) int {
	count := 0
	for _, scale := range tokens.Colors {
		for _, v := range []string{scale.Main, scale.Light, scale.Dark, scale.ContrastText} {
			if v != "" {
				count++
			}
		}
	}
	if tokens.Typography != nil {
		count += len(tokens.Typography.FontFamily)
		count += len(tokens.Typography.FontSize)
		count += len(tokens.Typography.FontWeight)
		count += len(tokens.Typography.LineHeight)
	}
	count += len(tokens.Spacing)
	count += len(tokens.Shadows)
	count += len(tokens.BorderRadius)
	count += len(tokens.ZIndex)
	count += len(tokens.Breakpoints)
	return count
}

// populatedCategories lists the non-empty top-level category names in
// canonical order.
func populatedCategories(tokens ThemeTokens) []string {
	categories := []string{}
	if tokens.Colors != nil {
		categories = append(categories, "colors")
	}
	if tokens.Typography != nil {
		categories = append(categories, "typography")
	}
	if tokens.Spacing != nil {
		categories = append(categories, "spacing")
	}
	if tokens.Shadows != nil {
		categories = append(categories, "shadows")
	}
	if tokens.BorderRadius != nil {
		categories = append(categories, "borderRadius")
	}
	if tokens.ZIndex != nil {
		categories = append(categories, "zIndex")
	}
	if tokens.Breakpoints != nil {
		categories = append(categories, "breakpoints")
	}
	return categories
}

// categoryAliases maps free-text category names to canonical keys.
var categoryAliases = map[string]string{
	"color":        "colors",
	"colors":       "colors",
	"palette":      "colors",
	"font":         "typography",
	"fonts":        "typography",
	"typography":   "typography",
	"text":         "typography",
	"type":         "typography",
	"space":        "spacing",
	"spacing":      "spacing",
	"gap":          "spacing",
	"shadow":       "shadows",
	"shadows":      "shadows",
	"elevation":    "shadows",
	"radius":       "borderRadius",
	"radii":        "borderRadius",
	"border":       "borderRadius",
	"borderradius": "borderRadius",
	"rounded":      "borderRadius",
	"z":            "zIndex",
	"zindex":       "zIndex",
	"layer":        "zIndex",
	"layers":       "zIndex",
	"breakpoint":   "breakpoints",
	"breakpoints":  "breakpoints",
	"screen":       "breakpoints",
	"screens":      "breakpoints",
	"media":        "breakpoints",
}

// FilterTokensByCategory returns only the slice of tokens named by the
// free-text category alias, or the full set when the alias is not
// recognized.
func FilterTokensByCategory(tokens ThemeTokens, category string) ThemeTokens {
	canonical, ok := categoryAliases[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return tokens
	}

	filtered := ThemeTokens{}
	switch canonical {
	case "colors":
		filtered.Colors = tokens.Colors
	case "typography":
		filtered.Typography = tokens.Typography
	case "spacing":
		filtered.Spacing = tokens.Spacing
	case "shadows":
		filtered.Shadows = tokens.Shadows
	case "borderRadius":
		filtered.BorderRadius = tokens.BorderRadius
	case "zIndex":
		filtered.ZIndex = tokens.ZIndex
	case "breakpoints":
		filtered.Breakpoints = tokens.Breakpoints
	}
	return filtered
}
