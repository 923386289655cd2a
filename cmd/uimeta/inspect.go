package main

import (
	"fmt"
	"strings"

	"github.com/gnana997/uimeta/pkg/extract"
)

const maxWidth = 80

// printComponentHuman prints a human-readable component summary to stdout.
func printComponentHuman(meta extract.ComponentMetadata) {
	fmt.Println(meta.Name)

	if meta.Description != "" {
		fmt.Println()
		printWrapped(meta.Description, 0, maxWidth)
	}

	// Presence flags.
	fmt.Println()
	fmt.Printf("Stories: %s   Docs: %s   Tests: %s\n",
		yesNo(meta.HasStories), yesNo(meta.HasDocumentation), yesNo(meta.HasTests))

	// Props.
	fmt.Println()
	printPropsSection("Props", meta.Props)

	// Exports.
	fmt.Println()
	if len(meta.Exports) == 0 {
		fmt.Println("Exports  (none)")
	} else {
		fmt.Println("Exports")
		nameWidth := 0
		for _, exp := range meta.Exports {
			if len(exp.Name) > nameWidth {
				nameWidth = len(exp.Name)
			}
		}
		for _, exp := range meta.Exports {
			padding := strings.Repeat(" ", nameWidth-len(exp.Name))
			suffix := ""
			if exp.IsDefault {
				suffix = "  (default)"
			}
			fmt.Printf("  %s%s  %s%s\n", exp.Name, padding, exp.Kind, suffix)
		}
	}

	// Imports.
	fmt.Println()
	if len(meta.Imports) == 0 {
		fmt.Println("Imports  (none)")
	} else {
		fmt.Println("Imports")
		for _, imp := range meta.Imports {
			switch {
			case imp.IsNamespace:
				fmt.Printf("  * as %s from %q\n", strings.Join(imp.Names, ", "), imp.Module)
			case len(imp.Names) > 0:
				fmt.Printf("  { %s } from %q\n", strings.Join(imp.Names, ", "), imp.Module)
			default:
				fmt.Printf("  from %q\n", imp.Module)
			}
		}
	}

	// External dependencies.
	fmt.Println()
	if len(meta.Dependencies) == 0 {
		fmt.Println("Dependencies  (none)")
	} else {
		fmt.Printf("Dependencies  %s\n", strings.Join(meta.Dependencies, ", "))
	}
}

// printPropsSection renders the props table with dynamic column widths.
func printPropsSection(title string, props []extract.PropDefinition) {
	if len(props) == 0 {
		fmt.Printf("%s  (none)\n", title)
		return
	}

	fmt.Println(title)

	// Compute column widths.
	nameW := len("NAME")
	typeW := len("TYPE")
	defW := len("DEFAULT")
	for _, p := range props {
		if len(p.Name) > nameW {
			nameW = len(p.Name)
		}
		if len(p.Type) > typeW {
			typeW = len(p.Type)
		}
		def := p.Default
		if def == "" {
			def = "—"
		}
		if len(def) > defW {
			defW = len(def)
		}
	}

	// Header row.
	sepLen := nameW + typeW + 5 + defW + 4 // NAME + TYPE + "REQ" + DEFAULT + spacing
	fmt.Printf("  %-*s  %-*s  %-3s  %-*s\n", nameW, "NAME", typeW, "TYPE", "REQ", defW, "DEFAULT")
	fmt.Printf("  %s\n", strings.Repeat("─", sepLen))

	// Prop rows.
	for _, p := range props {
		req := "no"
		if p.Required {
			req = "yes"
		}
		def := p.Default
		if def == "" {
			def = "—"
		}
		fmt.Printf("  %-*s  %-*s  %-3s  %-*s\n", nameW, p.Name, typeW, p.Type, req, defW, def)

		if p.Description != "" {
			fmt.Printf("  %s  %s\n", strings.Repeat(" ", nameW), p.Description)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// printWrapped prints text word-wrapped at maxWidth with the given left indent.
func printWrapped(text string, indent, width int) {
	words := strings.Fields(text)
	prefix := strings.Repeat(" ", indent)
	line := prefix
	for _, word := range words {
		if len(line)+len(word)+1 > width && line != prefix {
			fmt.Println(line)
			line = prefix + word
		} else {
			if line == prefix {
				line += word
			} else {
				line += " " + word
			}
		}
	}
	if line != prefix {
		fmt.Println(line)
	}
}
