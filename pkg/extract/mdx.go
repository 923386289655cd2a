package extract

import (
	"regexp"
	"strings"

	"github.com/gnana997/uimeta/pkg/textscan"
)

var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	mdxImportRe = regexp.MustCompile(`(?m)^\s*import\s+[^'"\n]*['"]([^'"]+)['"]`)
	tagRefRe    = regexp.MustCompile(`<([A-Z][\w.]*)`)
	metaTitleRe = regexp.MustCompile(`<Meta[^>]*\btitle\s*=\s*["']([^"']+)["']`)
	fenceRe     = regexp.MustCompile("(?s)```([a-zA-Z0-9]*)\n(.*?)```")
	ariaTokenRe = regexp.MustCompile(`\b(aria-[\w-]+|role=|tabIndex|screen reader)`)

	sentenceSplitRe = regexp.MustCompile(`[.!?]`)
)

// exampleFrameStart and exampleFrameEnd delimit preview-frame blocks in
// documentation.
const (
	exampleFrameStart = "<Canvas>"
	exampleFrameEnd   = "</Canvas>"
)

// ParseMDXContent mines a documentation file for front matter, imports,
// referenced components, hierarchical sections, and embedded examples.
// Sections tile the document from its first heading to the last line;
// text before the first heading belongs to no section.
func ParseMDXContent(name, text string) MDXContent {
	content := MDXContent{
		Content:    text,
		Sections:   []MDXSection{},
		Examples:   []CodeExample{},
		Metadata:   map[string]string{},
		Imports:    []string{},
		Components: []string{},
	}

	body := text
	content.Metadata, body = parseFrontMatter(text)

	for _, m := range mdxImportRe.FindAllStringSubmatch(body, -1) {
		content.Imports = append(content.Imports, m[1])
	}

	seenComponents := map[string]bool{}
	for _, m := range tagRefRe.FindAllStringSubmatch(body, -1) {
		if seenComponents[m[1]] {
			continue
		}
		seenComponents[m[1]] = true
		content.Components = append(content.Components, m[1])
	}

	content.Title = parseTitle(body)
	content.Sections = parseSections(body)
	content.Examples = mineExamples(body)

	return content
}

// parseFrontMatter strips a leading ----delimited block and returns its
// key-value pairs plus the remaining text. Keys and values split on the
// first colon; values lose one layer of surrounding quotes.
func parseFrontMatter(text string) (map[string]string, string) {
	metadata := map[string]string{}

	trimmed := strings.TrimPrefix(text, "\ufeff")
	if !strings.HasPrefix(trimmed, "---") {
		return metadata, text
	}

	lines := textscan.Lines(trimmed)
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return metadata, text
	}

	for _, line := range lines[1:end] {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		metadata[key] = textscan.StripQuotes(strings.TrimSpace(value))
	}

	return metadata, strings.Join(lines[end+1:], "\n")
}

// parseTitle resolves the document title: the first level-1 heading, then
// an explicit Meta title attribute, then empty (the caller substitutes
// the subject name).
func parseTitle(body string) string {
	for _, line := range textscan.Lines(body) {
		if m := headingRe.FindStringSubmatch(line); m != nil && len(m[1]) == 1 {
			return strings.TrimSpace(m[2])
		}
	}
	if m := metaTitleRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// parseSections runs one linear pass over the lines: each heading opens a
// section at its own line and closes the previous one at the prior line,
// so the returned ranges are contiguous and cover every line from the
// first heading to end-of-document exactly once.
func parseSections(body string) []MDXSection {
	sections := []MDXSection{}
	lines := textscan.Lines(body)

	var open *MDXSection
	closeSection := func(endLine int) {
		if open == nil {
			return
		}
		open.EndLine = endLine
		if open.StartLine+1 <= endLine {
			open.Content = strings.TrimSpace(strings.Join(lines[open.StartLine+1:endLine+1], "\n"))
		}
		open.Examples = mineExamples(open.Content)
		sections = append(sections, *open)
		open = nil
	}

	for i, line := range lines {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		closeSection(i - 1)
		open = &MDXSection{
			Title:     strings.TrimSpace(m[2]),
			Level:     len(m[1]),
			StartLine: i,
			Examples:  []CodeExample{},
		}
	}
	closeSection(len(lines) - 1)

	return sections
}

// mineExamples extracts embedded examples from a span of documentation:
// preview-frame blocks, fenced code blocks, and balanced JSX elements
// whose tag starts with an uppercase letter.
func mineExamples(text string) []CodeExample {
	examples := []CodeExample{}
	var consumed []string

	// (a) Example frames.
	rest := text
	for {
		start := strings.Index(rest, exampleFrameStart)
		if start == -1 {
			break
		}
		end := strings.Index(rest[start:], exampleFrameEnd)
		if end == -1 {
			break
		}
		code := strings.TrimSpace(rest[start+len(exampleFrameStart) : start+end])
		if code != "" {
			examples = append(examples, CodeExample{Code: code, Kind: ExampleKindFrame})
		}
		consumed = append(consumed, rest[start:start+end+len(exampleFrameEnd)])
		rest = rest[start+end+len(exampleFrameEnd):]
	}

	// (b) Fenced code blocks.
	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		code := strings.TrimRight(m[2], "\n")
		if strings.TrimSpace(code) == "" {
			continue
		}
		examples = append(examples, CodeExample{
			Code:     code,
			Language: m[1],
			Kind:     ExampleKindCode,
		})
		consumed = append(consumed, m[0])
	}

	// (c) Balanced uppercase JSX elements outside frames and fences.
	stripped := text
	for _, raw := range consumed {
		stripped = strings.Replace(stripped, raw, "", 1)
	}
	examples = append(examples, mineComponentBlocks(stripped)...)

	return examples
}

// mineComponentBlocks captures top-level <Tag>...</Tag> elements with
// matching names. Unmatched or lowercase-tag blocks are ignored.
func mineComponentBlocks(text string) []CodeExample {
	examples := []CodeExample{}

	for i := 0; i < len(text); {
		loc := tagRefRe.FindStringSubmatchIndex(text[i:])
		if loc == nil {
			break
		}
		tag := text[i+loc[2] : i+loc[3]]
		block, end, ok := balancedElement(text[i+loc[0]:], tag)
		if !ok {
			i += loc[0] + 1
			continue
		}
		examples = append(examples, CodeExample{Code: block, Kind: ExampleKindComponent})
		i += loc[0] + end
	}

	return examples
}

// balancedElement matches <tag ...> ... </tag> with depth counting from
// the start of text, which must begin at the opening tag. Self-closing
// elements are complete on their own.
func balancedElement(text, tag string) (string, int, bool) {
	openTok := "<" + tag
	closeTok := "</" + tag + ">"

	depth := 0
	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], closeTok) {
			depth--
			i += len(closeTok)
			if depth == 0 {
				return strings.TrimSpace(text[:i]), i, true
			}
			continue
		}
		if strings.HasPrefix(text[i:], openTok) && !isTagNameByte(text, i+len(openTok)) {
			gt := strings.IndexByte(text[i:], '>')
			if gt == -1 {
				return "", 0, false
			}
			selfClosing := gt >= 1 && text[i+gt-1] == '/'
			if selfClosing && depth == 0 {
				end := i + gt + 1
				return strings.TrimSpace(text[:end]), end, true
			}
			if !selfClosing {
				depth++
			}
			i += gt + 1
			continue
		}
		i++
	}
	return "", 0, false
}

// isTagNameByte reports whether the byte at i would extend a tag name,
// which distinguishes <Card from <CardHeader.
func isTagNameByte(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	c := text[i]
	return c == '.' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// ParseMDXMetadata derives the summary record for a documentation file.
func ParseMDXMetadata(name, text string) MDXMetadata {
	content := ParseMDXContent(name, text)

	meta := MDXMetadata{
		Name:         name,
		Title:        content.Title,
		SectionCount: len(content.Sections),
		ExampleCount: len(content.Examples),
	}
	if meta.Title == "" {
		meta.Title = name
	}

	lowerText := strings.ToLower(text)
	for _, s := range content.Sections {
		title := strings.ToLower(s.Title)
		if containsAny(title, "props", "api") {
			meta.HasPropsDoc = true
		}
		if containsAny(title, "usage", "example", "how-to") {
			meta.HasUsageGuide = true
		}
		if strings.Contains(title, "accessibility") {
			meta.HasAccessibilityNotes = true
		}
	}
	if !meta.HasAccessibilityNotes {
		meta.HasAccessibilityNotes = containsAny(lowerText, "accessibility", "aria-", "screen reader")
	}

	return meta
}

// ExtractUsagePatterns collects the first three sentence fragments from
// every usage-, example-, or pattern-titled section.
func ExtractUsagePatterns(text string) []string {
	patterns := []string{}
	content := ParseMDXContent("", text)

	for _, s := range content.Sections {
		title := strings.ToLower(s.Title)
		if !containsAny(title, "usage", "example", "pattern") {
			continue
		}
		fragments := sentenceFragments(s.Content)
		if len(fragments) > 3 {
			fragments = fragments[:3]
		}
		patterns = append(patterns, fragments...)
	}

	return patterns
}

// ExtractAccessibilityGuidelines collects every sentence fragment from
// accessibility-titled sections, plus one synthesized line summarizing
// accessibility-related tokens found anywhere in the document.
func ExtractAccessibilityGuidelines(text string) []string {
	guidelines := []string{}
	content := ParseMDXContent("", text)

	for _, s := range content.Sections {
		if !strings.Contains(strings.ToLower(s.Title), "accessibility") {
			continue
		}
		guidelines = append(guidelines, sentenceFragments(s.Content)...)
	}

	tokens := []string{}
	seen := map[string]bool{}
	for _, m := range ariaTokenRe.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		tokens = append(tokens, m)
	}
	if len(tokens) > 0 {
		guidelines = append(guidelines, "Mentions accessibility features: "+strings.Join(tokens, ", "))
	}

	return guidelines
}

// sentenceFragments splits text into trimmed sentence fragments on
// terminal punctuation.
func sentenceFragments(text string) []string {
	fragments := []string{}
	for _, frag := range sentenceSplitRe.Split(text, -1) {
		frag = strings.TrimSpace(frag)
		if frag != "" {
			fragments = append(fragments, frag)
		}
	}
	return fragments
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
