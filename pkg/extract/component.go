package extract

import (
	"regexp"
	"strings"

	"github.com/gnana997/uimeta/pkg/textscan"
)

var (
	importRe = regexp.MustCompile(`(?m)^\s*import\s+([^'"]*?)['"]([^'"]+)['"]`)

	exportTypeRe  = regexp.MustCompile(`(?m)export\s+(?:declare\s+)?(?:interface|type)\s+([A-Za-z_$][\w$]*)`)
	exportValueRe = regexp.MustCompile(`(?m)export\s+(?:declare\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)`)
	exportFuncRe  = regexp.MustCompile(`(?m)export\s+(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`)
	exportClassRe = regexp.MustCompile(`(?m)export\s+(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	exportListRe  = regexp.MustCompile(`(?m)export\s*\{([^}]*)\}`)
	defaultRefRe  = regexp.MustCompile(`(?m)export\s+default\s+([A-Za-z_$][\w$]*)\s*;?`)

	propFieldRe       = regexp.MustCompile(`(?s)(?:/\*\*(.*?)\*/\s*)?([A-Za-z_$][\w$]*)(\?)?\s*:\s*([^;,\n]+)`)
	propFieldSimpleRe = regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)(\?)?\s*:\s*([^;,]+?)[;,]?\s*$`)
	lineCommentRe     = regexp.MustCompile(`^\s*(?://|\*)\s*(.*?)\s*$`)
)

// ParseComponentMetadata mines component source text for imports, exports,
// a props shape, and a one-line description. It is tolerant by contract:
// any structure that does not match simply contributes nothing to the
// result, and the presence flags are left for the caller to set.
func ParseComponentMetadata(name, source string) ComponentMetadata {
	meta := ComponentMetadata{
		Name:         name,
		Props:        []PropDefinition{},
		Exports:      []ExportDefinition{},
		Imports:      []ImportDefinition{},
		Dependencies: []string{},
	}

	meta.Imports, meta.Dependencies = parseImports(source)
	meta.Exports = parseExports(source)
	meta.Props = parseProps(name, source)
	meta.Description = precedingComment(source, name)

	return meta
}

// parseImports scans import statements and derives the deduplicated
// external dependency list. Specifiers behind a relative-path marker or
// the internal "@/" alias are recorded as imports but excluded from
// dependencies.
func parseImports(source string) ([]ImportDefinition, []string) {
	imports := []ImportDefinition{}
	deps := []string{}
	seen := map[string]bool{}

	for _, m := range importRe.FindAllStringSubmatch(source, -1) {
		clause, module := strings.TrimSpace(m[1]), m[2]
		imports = append(imports, parseImportClause(clause, module))

		if isInternalModule(module) || seen[module] {
			continue
		}
		seen[module] = true
		deps = append(deps, module)
	}

	return imports, deps
}

// parseImportClause splits the text between `import` and the module
// string into default/namespace/named parts.
func parseImportClause(clause, module string) ImportDefinition {
	def := ImportDefinition{Module: module, Names: []string{}}

	clause = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(clause), "from"))
	if clause == "" {
		// Side-effect import: import './styles.css'
		return def
	}

	if open := strings.Index(clause, "{"); open != -1 {
		head := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(clause[:open]), ","))
		if head != "" {
			def.IsDefault = true
			def.Names = append(def.Names, head)
		}
		inner := clause[open+1:]
		if close := strings.Index(inner, "}"); close != -1 {
			inner = inner[:close]
		}
		for _, part := range strings.Split(inner, ",") {
			name := strings.TrimSpace(part)
			name = strings.TrimSpace(strings.TrimPrefix(name, "type "))
			if name == "" {
				continue
			}
			// `orig as local` imports under the local name.
			if fields := strings.Fields(name); len(fields) == 3 && fields[1] == "as" {
				name = fields[2]
			}
			def.Names = append(def.Names, name)
		}
		return def
	}

	if strings.HasPrefix(clause, "*") {
		def.IsNamespace = true
		if fields := strings.Fields(clause); len(fields) == 3 && fields[1] == "as" {
			def.Names = append(def.Names, fields[2])
		}
		return def
	}

	def.IsDefault = true
	def.Names = append(def.Names, strings.TrimSuffix(clause, ","))
	return def
}

func isInternalModule(module string) bool {
	return strings.HasPrefix(module, ".") ||
		strings.HasPrefix(module, "@/") ||
		strings.HasPrefix(module, "~/")
}

// parseExports merges five independent export patterns and classifies
// each discovered name by naming heuristic.
func parseExports(source string) []ExportDefinition {
	exports := []ExportDefinition{}
	seen := map[string]bool{}

	defaultNames := map[string]bool{}
	for _, m := range defaultRefRe.FindAllStringSubmatch(source, -1) {
		if m[1] != "function" && m[1] != "class" {
			defaultNames[m[1]] = true
		}
	}
	for _, re := range []*regexp.Regexp{exportFuncRe, exportClassRe} {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			if strings.Contains(m[0], "default") {
				defaultNames[m[1]] = true
			}
		}
	}

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || name == "default" || seen[name] {
			return
		}
		seen[name] = true
		exports = append(exports, ExportDefinition{
			Name:      name,
			Kind:      classifyExport(name),
			IsDefault: defaultNames[name],
		})
	}

	for _, re := range []*regexp.Regexp{exportTypeRe, exportValueRe, exportFuncRe, exportClassRe} {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			add(m[1])
		}
	}
	for _, m := range exportListRe.FindAllStringSubmatch(source, -1) {
		for _, part := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(part)
			if fields := strings.Fields(name); len(fields) == 3 && fields[1] == "as" {
				name = fields[2]
			}
			add(name)
		}
	}

	return exports
}

// classifyExport guesses an export's kind from its name alone.
func classifyExport(name string) ExportKind {
	if isConstCase(name) {
		return ExportKindConst
	}
	if strings.HasSuffix(name, "Props") || strings.HasSuffix(name, "Type") ||
		strings.HasSuffix(name, "Interface") {
		return ExportKindType
	}
	if name[0] >= 'A' && name[0] <= 'Z' {
		return ExportKindComponent
	}
	return ExportKindFunction
}

// isConstCase reports whether name looks like SCREAMING_CASE or is
// underscored.
func isConstCase(name string) bool {
	if strings.Contains(name, "_") {
		return true
	}
	hasLetter := false
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter && len(name) > 1
}

// parseProps probes the conventional props-shape identifiers in order and
// extracts the fields of the first declaration found.
func parseProps(name, source string) []PropDefinition {
	candidates := []string{
		name + "Props",
		"I" + name + "Props",
		name + "Properties",
		"Props",
	}

	for _, candidate := range candidates {
		declRe := regexp.MustCompile(`(?:interface|type)\s+` + regexp.QuoteMeta(candidate) + `\b`)
		loc := declRe.FindStringIndex(source)
		if loc == nil {
			continue
		}

		// A declaration with no body (e.g. `type Props = string;`) must
		// not capture some later, unrelated block.
		rest := source[loc[1]:]
		brace := strings.IndexByte(rest, '{')
		if brace == -1 {
			return []PropDefinition{}
		}
		if semi := strings.IndexByte(rest, ';'); semi != -1 && semi < brace {
			return []PropDefinition{}
		}

		body, _, ok := textscan.Block(rest, brace, '{', '}')
		if !ok {
			return []PropDefinition{}
		}
		return parsePropFields(body)
	}

	return []PropDefinition{}
}

// parsePropFields extracts each field of a props body, capturing the
// preceding block comment as the description when present. If the main
// pattern recovers nothing it retries line by line with a simpler
// field-only pattern, recovering descriptions from preceding // comments.
func parsePropFields(body string) []PropDefinition {
	props := []PropDefinition{}

	for _, m := range propFieldRe.FindAllStringSubmatch(body, -1) {
		prop := PropDefinition{
			Name:        m[2],
			Type:        strings.TrimSpace(m[4]),
			Required:    m[3] == "",
			Description: cleanBlockComment(m[1]),
		}
		if prop.Type == "" {
			continue
		}
		props = append(props, prop)
	}
	if len(props) > 0 {
		return props
	}

	// Fallback: simple field-only pattern, one line at a time.
	lines := textscan.Lines(body)
	for i, line := range lines {
		m := propFieldSimpleRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		prop := PropDefinition{
			Name:     m[1],
			Type:     strings.TrimSpace(m[3]),
			Required: m[2] == "",
		}
		if i > 0 {
			if cm := lineCommentRe.FindStringSubmatch(lines[i-1]); cm != nil {
				prop.Description = strings.TrimSuffix(strings.TrimSpace(cm[1]), "*/")
				prop.Description = strings.TrimSpace(prop.Description)
			}
		}
		props = append(props, prop)
	}

	return props
}

// precedingComment finds the nearest block comment immediately preceding
// the subject's declaration and returns its first line.
func precedingComment(source, name string) string {
	re := regexp.MustCompile(
		`(?s)/\*\*(.*?)\*/\s*(?:export\s+)?(?:default\s+)?(?:declare\s+)?(?:async\s+)?` +
			`(?:const|let|var|function|class|interface|type)\s+` + regexp.QuoteMeta(name) + `\b`)
	m := re.FindStringSubmatch(source)
	if m == nil {
		return ""
	}
	cleaned := cleanBlockComment(m[1])
	if idx := strings.IndexByte(cleaned, '\n'); idx != -1 {
		cleaned = cleaned[:idx]
	}
	return cleaned
}

// cleanBlockComment strips comment decoration (leading asterisks,
// surrounding whitespace) from the inner text of a /** */ comment.
func cleanBlockComment(raw string) string {
	if raw == "" {
		return ""
	}
	var out []string
	for _, line := range textscan.Lines(raw) {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "@") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
