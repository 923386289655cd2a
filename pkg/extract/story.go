package extract

import (
	"regexp"
	"strings"

	"github.com/gnana997/uimeta/pkg/textscan"
)

var (
	// Typed declaration: export const Primary: Story = ...
	typedStoryRe = regexp.MustCompile(`(?m)^\s*export\s+const\s+([A-Za-z_$][\w$]*)\s*:\s*[A-Za-z_$][\w$.]*(?:<[^>\n]*>)?\s*=`)
	// Plain declaration: export const Primary = () => ...
	plainStoryRe = regexp.MustCompile(`(?m)^\s*export\s+const\s+([A-Za-z_$][\w$]*)\s*=\s*\(\s*\)\s*=>`)

	returnBlockRe = regexp.MustCompile(`return\s*\(`)
)

// interactivityVocabulary is the fixed set of substrings whose presence
// marks a story file as interactive: action bindings, user-event helpers,
// and play-function hooks.
var interactivityVocabulary = []string{
	"action(",
	"userEvent",
	"fireEvent",
	"play:",
	"within(",
}

// ParseStoryMetadata mines a story file for its named example
// declarations and default-export meta. Two complementary declaration
// patterns run over the text; a name matched by both is kept once, with
// the typed match taking precedence.
func ParseStoryMetadata(name, source string) StoryMetadata {
	meta := StoryMetadata{
		Component: name,
		Meta:      StorybookMeta{Stories: []StoryDefinition{}},
	}

	defaultExportNames := map[string]bool{}
	for _, m := range defaultRefRe.FindAllStringSubmatch(source, -1) {
		defaultExportNames[m[1]] = true
	}

	seen := map[string]bool{}
	for _, loc := range typedStoryRe.FindAllStringSubmatchIndex(source, -1) {
		storyName := source[loc[2]:loc[3]]
		// `const meta: Meta<...> = {...}; export default meta` is the
		// file's meta object, not a story.
		if seen[storyName] || defaultExportNames[storyName] {
			continue
		}
		seen[storyName] = true
		meta.Meta.Stories = append(meta.Meta.Stories, buildStory(source, storyName, loc[0], loc[1]))
	}
	for _, loc := range plainStoryRe.FindAllStringSubmatchIndex(source, -1) {
		storyName := source[loc[2]:loc[3]]
		if seen[storyName] || defaultExportNames[storyName] {
			continue
		}
		seen[storyName] = true
		meta.Meta.Stories = append(meta.Meta.Stories, buildStory(source, storyName, loc[0], loc[1]))
	}

	parseDefaultExportMeta(source, &meta.Meta)
	meta.Meta.Decorators = ExtractDecorators(source)

	meta.TotalStories = len(meta.Meta.Stories)
	meta.HasExamples = meta.TotalStories > 0
	for _, s := range meta.Meta.Stories {
		if len(s.Args) > 0 {
			meta.HasInteractiveStories = true
			break
		}
	}

	return meta
}

// buildStory assembles one StoryDefinition from a declaration match.
// declStart is the start of the export statement, declEnd the index just
// past the `=` (typed) or `=>` (plain).
func buildStory(source, name string, declStart, declEnd int) StoryDefinition {
	story := StoryDefinition{
		Name:        name,
		Source:      captureStorySource(source, declStart, declEnd),
		Description: commentAbove(source, declStart),
	}

	if args, ok := textscan.BlockAfter(story.Source, "args", '{', '}'); ok {
		if parsed := textscan.ParseObject(args); len(parsed) > 0 {
			story.Args = parsed
		}
	}
	if params, ok := textscan.BlockAfter(story.Source, "parameters", '{', '}'); ok {
		if parsed := textscan.ParseObject(params); len(parsed) > 0 {
			story.Parameters = parsed
		}
	}

	return story
}

// captureStorySource returns the raw snippet of one story declaration:
// the balanced block following the declaration when one opens, otherwise
// the remainder of the statement line.
func captureStorySource(source string, declStart, declEnd int) string {
	rest := source[declEnd:]
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		if c == '{' || c == '(' {
			close := byte('}')
			if c == '(' {
				close = ')'
			}
			if _, end, ok := textscan.Block(rest, i, c, close); ok {
				return strings.TrimSpace(source[declStart : declEnd+end])
			}
		}
		break
	}
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		return strings.TrimSpace(source[declStart : declEnd+nl])
	}
	return strings.TrimSpace(source[declStart:])
}

// parseDefaultExportMeta recovers title, subject reference, and the
// argTypes/parameters sub-objects from the default-export object literal.
// Both the inline form (`export default { ... }`) and the named form
// (`const meta = { ... }; export default meta`) are recognized.
func parseDefaultExportMeta(source string, meta *StorybookMeta) {
	body, ok := defaultExportBody(source)
	if !ok {
		return
	}

	obj := textscan.ParseObject(body)
	if v, ok := obj["title"]; ok && v.Kind == textscan.ValueString {
		meta.Title = v.Str
	}
	if v, ok := obj["component"]; ok && v.Kind == textscan.ValueString {
		meta.Component = v.Str
	}
	if v, ok := obj["argTypes"]; ok && v.Kind == textscan.ValueObject {
		meta.ArgTypes = v.Obj
	}
	if v, ok := obj["parameters"]; ok && v.Kind == textscan.ValueObject {
		meta.Parameters = v.Obj
	}
}

// defaultExportBody locates the object literal behind `export default`.
func defaultExportBody(source string) (string, bool) {
	idx := strings.Index(source, "export default")
	if idx == -1 {
		return "", false
	}
	after := idx + len("export default")

	rest := source[after:]
	trimmed := strings.TrimLeft(rest, " \t\n\r")
	if strings.HasPrefix(trimmed, "{") {
		body, _, ok := textscan.Block(rest, 0, '{', '}')
		return body, ok
	}

	// Named form: resolve the identifier's declaration.
	m := defaultRefRe.FindStringSubmatch(source[idx:])
	if m == nil {
		return "", false
	}
	declRe := regexp.MustCompile(`(?:const|let|var)\s+` + regexp.QuoteMeta(m[1]) + `\b[^=\n]*=`)
	loc := declRe.FindStringIndex(source)
	if loc == nil {
		return "", false
	}
	body, _, ok := textscan.Block(source, loc[1], '{', '}')
	return body, ok
}

// ExtractStorySource collects every top-level return-expression block in
// the text as a raw example list.
func ExtractStorySource(source string) []string {
	examples := []string{}
	for _, loc := range returnBlockRe.FindAllStringIndex(source, -1) {
		body, _, ok := textscan.Block(source, loc[1]-1, '(', ')')
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(body); trimmed != "" {
			examples = append(examples, trimmed)
		}
	}
	return examples
}

// ExtractArgTypes mines the argTypes block into a name→config mapping.
// Scalar entries map to an empty config.
func ExtractArgTypes(source string) map[string]textscan.Object {
	result := map[string]textscan.Object{}
	body, ok := textscan.BlockAfter(source, "argTypes", '{', '}')
	if !ok {
		return result
	}
	for name, v := range textscan.ParseObject(body) {
		if v.Kind == textscan.ValueObject {
			result[name] = v.Obj
		} else {
			result[name] = textscan.Object{}
		}
	}
	return result
}

// DetectInteractivity reports whether the text contains any of the fixed
// interactivity vocabulary.
func DetectInteractivity(source string) bool {
	for _, marker := range interactivityVocabulary {
		if strings.Contains(source, marker) {
			return true
		}
	}
	return false
}

// ExtractDecorators returns the entries of the decorators array as raw
// identifier strings.
func ExtractDecorators(source string) []string {
	body, ok := textscan.BlockAfter(source, "decorators", '[', ']')
	if !ok {
		return nil
	}

	var decorators []string
	depth := 0
	start := 0
	flush := func(end int) {
		entry := strings.TrimSpace(body[start:end])
		if entry != "" {
			decorators = append(decorators, entry)
		}
	}
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(body))
	return decorators
}

// commentAbove returns the one-line text of a comment ending on the line
// immediately above position at, or "" when none is present.
func commentAbove(source string, at int) string {
	before := strings.TrimRight(source[:at], " \t\n\r")

	if strings.HasSuffix(before, "*/") {
		open := strings.LastIndex(before, "/*")
		if open == -1 {
			return ""
		}
		inner := strings.TrimSuffix(before[open+2:], "*/")
		inner = strings.TrimPrefix(inner, "*") // `/**` doc form
		cleaned := cleanBlockComment(inner)
		if idx := strings.IndexByte(cleaned, '\n'); idx != -1 {
			cleaned = cleaned[:idx]
		}
		return cleaned
	}

	nl := strings.LastIndexByte(before, '\n')
	lastLine := strings.TrimSpace(before[nl+1:])
	if strings.HasPrefix(lastLine, "//") {
		return strings.TrimSpace(strings.TrimPrefix(lastLine, "//"))
	}
	return ""
}
