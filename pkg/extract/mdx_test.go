package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buttonDocs = `---
title: "Button"
status: stable
---
import { Button } from '@/components/ui/button';
import { Canvas, Meta } from '@storybook/blocks';

# Button

A button triggers an action.

## Usage

Use buttons for primary actions. Avoid more than one per view.

` + "```tsx\n<Button variant=\"primary\">Save</Button>\n```" + `

## Props

The full prop table lives in the API reference.

## Accessibility

Buttons must have a discernible label. Use aria-label for icon-only buttons.

<Canvas>
<Button aria-label="Close" />
</Canvas>
`

func TestParseMDXContent_FrontMatter(t *testing.T) {
	content := ParseMDXContent("Button", buttonDocs)

	assert.Equal(t, "Button", content.Metadata["title"])
	assert.Equal(t, "stable", content.Metadata["status"])
	assert.Equal(t, "Button", content.Title)
}

func TestParseMDXContent_FrontMatterAfterBOM(t *testing.T) {
	content := ParseMDXContent("Button", "\ufeff"+buttonDocs)

	assert.Equal(t, "Button", content.Metadata["title"])
	assert.Equal(t, "stable", content.Metadata["status"])
}

func TestParseMDXContent_ImportsAndComponents(t *testing.T) {
	content := ParseMDXContent("Button", buttonDocs)

	assert.Equal(t, []string{"@/components/ui/button", "@storybook/blocks"}, content.Imports)

	// Deduplicated, first-occurrence order.
	assert.Equal(t, []string{"Button", "Canvas"}, content.Components)
}

func TestParseMDXContent_SectionCoverage(t *testing.T) {
	content := ParseMDXContent("Button", buttonDocs)

	require.Len(t, content.Sections, 4)
	assert.Equal(t, "Button", content.Sections[0].Title)
	assert.Equal(t, 1, content.Sections[0].Level)
	assert.Equal(t, "Usage", content.Sections[1].Title)
	assert.Equal(t, 2, content.Sections[1].Level)
	assert.Equal(t, "Props", content.Sections[2].Title)
	assert.Equal(t, "Accessibility", content.Sections[3].Title)

	// Ranges are contiguous and non-overlapping through the last line.
	for i := 1; i < len(content.Sections); i++ {
		assert.Equal(t, content.Sections[i-1].EndLine+1, content.Sections[i].StartLine)
	}
}

func TestParseMDXContent_Examples(t *testing.T) {
	content := ParseMDXContent("Button", buttonDocs)

	kinds := map[ExampleKind]int{}
	for _, ex := range content.Examples {
		kinds[ex.Kind]++
	}
	assert.Equal(t, 1, kinds[ExampleKindFrame])
	assert.Equal(t, 1, kinds[ExampleKindCode])

	usage := content.Sections[1]
	require.Len(t, usage.Examples, 1)
	assert.Equal(t, ExampleKindCode, usage.Examples[0].Kind)
	assert.Equal(t, "tsx", usage.Examples[0].Language)
	assert.Equal(t, `<Button variant="primary">Save</Button>`, usage.Examples[0].Code)
}

func TestParseMDXContent_TypicalDocument(t *testing.T) {
	content := ParseMDXContent("Foo", "---\ntitle: Foo\n---\n# Foo\nBody text.")

	assert.Equal(t, "Foo", content.Title)
	assert.Equal(t, map[string]string{"title": "Foo"}, content.Metadata)
	require.Len(t, content.Sections, 1)
	assert.Equal(t, "Foo", content.Sections[0].Title)
	assert.Equal(t, 1, content.Sections[0].Level)
	assert.Equal(t, "Body text.", content.Sections[0].Content)
}

func TestParseMDXContent_NoHeadings(t *testing.T) {
	content := ParseMDXContent("X", "just prose, no structure at all")
	assert.Empty(t, content.Sections)
	assert.Empty(t, content.Examples)
	assert.Empty(t, content.Metadata)
}

func TestParseMDXContent_Empty(t *testing.T) {
	content := ParseMDXContent("X", "")
	assert.Empty(t, content.Title)
	assert.Empty(t, content.Sections)
	assert.Empty(t, content.Examples)
	assert.Empty(t, content.Imports)
	assert.Empty(t, content.Components)
}

func TestParseMDXContent_MetaTitleFallback(t *testing.T) {
	content := ParseMDXContent("Input", `<Meta title="Forms/Input" />

## Notes
No level-one heading here.`)
	assert.Equal(t, "Forms/Input", content.Title)
}

func TestParseMDXContent_ComponentExample(t *testing.T) {
	content := ParseMDXContent("Card", `# Card

<Card>
  <CardHeader title="hi" />
</Card>
`)

	var component *CodeExample
	for i := range content.Examples {
		if content.Examples[i].Kind == ExampleKindComponent {
			component = &content.Examples[i]
		}
	}
	require.NotNil(t, component)
	assert.True(t, strings.HasPrefix(component.Code, "<Card>"))
	assert.True(t, strings.HasSuffix(component.Code, "</Card>"))
	assert.Contains(t, component.Code, "CardHeader")
}

func TestParseMDXMetadata(t *testing.T) {
	meta := ParseMDXMetadata("Button", buttonDocs)

	assert.Equal(t, "Button", meta.Name)
	assert.Equal(t, "Button", meta.Title)
	assert.Equal(t, 4, meta.SectionCount)
	assert.True(t, meta.HasPropsDoc)
	assert.True(t, meta.HasUsageGuide)
	assert.True(t, meta.HasAccessibilityNotes)
}

func TestParseMDXMetadata_TitleFallsBackToName(t *testing.T) {
	meta := ParseMDXMetadata("Spinner", "no headings")
	assert.Equal(t, "Spinner", meta.Title)
	assert.Zero(t, meta.SectionCount)
	assert.False(t, meta.HasPropsDoc)
}

func TestExtractUsagePatterns(t *testing.T) {
	patterns := ExtractUsagePatterns(`# X

## Usage

First rule. Second rule! Third rule? Fourth rule.

## Other

Ignored.`)

	require.Len(t, patterns, 3)
	assert.Equal(t, "First rule", patterns[0])
	assert.Equal(t, "Second rule", patterns[1])
	assert.Equal(t, "Third rule", patterns[2])
}

func TestExtractAccessibilityGuidelines(t *testing.T) {
	guidelines := ExtractAccessibilityGuidelines(buttonDocs)

	require.NotEmpty(t, guidelines)
	assert.Equal(t, "Buttons must have a discernible label", guidelines[0])

	last := guidelines[len(guidelines)-1]
	assert.Contains(t, last, "aria-label")
}

func TestExtractAccessibilityGuidelines_NoSection(t *testing.T) {
	assert.Empty(t, ExtractAccessibilityGuidelines("# X\n\nplain docs"))
}
