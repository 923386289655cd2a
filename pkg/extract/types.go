// Package extract contains the metadata extraction core: four stateless,
// pattern-based extractors that turn raw component, story, documentation,
// and theme source text into structured records.
//
// Every extractor is a total function of its input text. Unmatched
// patterns yield empty collections or zero fields, never an error — the
// extractors must survive arbitrarily malformed input. They perform no
// I/O and share no state, so calls are safe from any number of
// goroutines without coordination.
package extract

import "github.com/gnana997/uimeta/pkg/textscan"

// ComponentMetadata is the structured record mined from one component
// source file. HasTests, HasStories, and HasDocumentation are presence
// flags owned by the caller (the registry sets them from what the source
// provider could resolve); the extractor never touches them.
type ComponentMetadata struct {
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	Props            []PropDefinition   `json:"props"`
	Exports          []ExportDefinition `json:"exports"`
	Imports          []ImportDefinition `json:"imports"`
	Dependencies     []string           `json:"dependencies"`
	HasTests         bool               `json:"has_tests"`
	HasStories       bool               `json:"has_stories"`
	HasDocumentation bool               `json:"has_documentation"`
}

// PropDefinition is one configurable input of a component.
type PropDefinition struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
}

// ExportKind classifies an exported symbol by naming heuristic.
type ExportKind string

const (
	ExportKindComponent ExportKind = "component"
	ExportKindType      ExportKind = "type"
	ExportKindFunction  ExportKind = "function"
	ExportKindConst     ExportKind = "const"
)

// ExportDefinition is one exported symbol.
type ExportDefinition struct {
	Name      string     `json:"name"`
	Kind      ExportKind `json:"kind"`
	IsDefault bool       `json:"is_default"`
}

// ImportDefinition is one import statement.
type ImportDefinition struct {
	Module      string   `json:"module"`
	Names       []string `json:"names,omitempty"`
	IsDefault   bool     `json:"is_default"`
	IsNamespace bool     `json:"is_namespace"`
}

// StoryMetadata is the structured record mined from one story file.
type StoryMetadata struct {
	Component             string        `json:"component"`
	Meta                  StorybookMeta `json:"meta"`
	TotalStories          int           `json:"total_stories"`
	HasInteractiveStories bool          `json:"has_interactive_stories"`
	HasExamples           bool          `json:"has_examples"`
}

// StorybookMeta mirrors the default-export meta object of a story file.
type StorybookMeta struct {
	Title      string            `json:"title,omitempty"`
	Component  string            `json:"component,omitempty"`
	Stories    []StoryDefinition `json:"stories"`
	ArgTypes   textscan.Object   `json:"arg_types,omitempty"`
	Parameters textscan.Object   `json:"parameters,omitempty"`
	Decorators []string          `json:"decorators,omitempty"`
}

// StoryDefinition is one named example declaration.
type StoryDefinition struct {
	Name        string          `json:"name"`
	Args        textscan.Object `json:"args,omitempty"`
	Parameters  textscan.Object `json:"parameters,omitempty"`
	Source      string          `json:"source"`
	Description string          `json:"description,omitempty"`
}

// MDXContent is the structured record mined from one documentation file.
type MDXContent struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Sections   []MDXSection      `json:"sections"`
	Examples   []CodeExample     `json:"examples"`
	Metadata   map[string]string `json:"metadata"`
	Imports    []string          `json:"imports"`
	Components []string          `json:"components"`
}

// MDXSection is one heading-delimited span of a document. StartLine and
// EndLine are zero-based inclusive indices into the document's lines;
// together the sections tile every line from the first heading to the end
// of the document.
type MDXSection struct {
	Title     string        `json:"title"`
	Level     int           `json:"level"`
	Content   string        `json:"content"`
	Examples  []CodeExample `json:"examples"`
	StartLine int           `json:"start_line"`
	EndLine   int           `json:"end_line"`
}

// ExampleKind classifies how an embedded example was declared.
type ExampleKind string

const (
	ExampleKindCode      ExampleKind = "code"
	ExampleKindComponent ExampleKind = "component"
	ExampleKindFrame     ExampleKind = "example-frame"
)

// CodeExample is one runnable example embedded in documentation.
type CodeExample struct {
	Code        string      `json:"code"`
	Language    string      `json:"language,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Kind        ExampleKind `json:"kind"`
}

// MDXMetadata is the derived summary of a documentation file.
type MDXMetadata struct {
	Name                  string `json:"name"`
	Title                 string `json:"title"`
	SectionCount          int    `json:"section_count"`
	ExampleCount          int    `json:"example_count"`
	HasPropsDoc           bool   `json:"has_props_doc"`
	HasUsageGuide         bool   `json:"has_usage_guide"`
	HasAccessibilityNotes bool   `json:"has_accessibility_notes"`
}

// ColorScale holds the standard shade slots of one named color family.
type ColorScale struct {
	Main         string `json:"main,omitempty"`
	Light        string `json:"light,omitempty"`
	Dark         string `json:"dark,omitempty"`
	ContrastText string `json:"contrast_text,omitempty"`
}

// TypographyTokens holds the typography scales. Font weights are numeric;
// the other scales keep their declared string values.
type TypographyTokens struct {
	FontFamily map[string]string  `json:"font_family,omitempty"`
	FontSize   map[string]string  `json:"font_size,omitempty"`
	FontWeight map[string]float64 `json:"font_weight,omitempty"`
	LineHeight map[string]string  `json:"line_height,omitempty"`
}

// ThemeTokens is a partial record of extracted design-token scales. A
// category is nil when none of its patterns matched.
type ThemeTokens struct {
	Colors       map[string]ColorScale `json:"colors,omitempty"`
	Typography   *TypographyTokens     `json:"typography,omitempty"`
	Spacing      map[string]string     `json:"spacing,omitempty"`
	Shadows      map[string]string     `json:"shadows,omitempty"`
	BorderRadius map[string]string     `json:"border_radius,omitempty"`
	ZIndex       map[string]float64    `json:"z_index,omitempty"`
	Breakpoints  map[string]string     `json:"breakpoints,omitempty"`
}

// ThemeMetadata is the derived summary of a theme file.
type ThemeMetadata struct {
	Name          string   `json:"name"`
	Mode          string   `json:"mode"`
	Version       string   `json:"version"`
	TokenCount    int      `json:"token_count"`
	Categories    []string `json:"categories"`
	HasColors     bool     `json:"has_colors"`
	HasTypography bool     `json:"has_typography"`
	HasSpacing    bool     `json:"has_spacing"`
}
