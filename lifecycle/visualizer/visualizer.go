// Package visualizer generates Mermaid state diagrams from lifecycle
// definitions.
package visualizer

import (
	"errors"
	"fmt"
	"strings"

	"facette.io/natsort"
	"github.com/stateline-labs/stateline/lifecycle"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Visualizer errors.
var (
	ErrDefinitionNil  = errors.New("definition cannot be nil")
	ErrNoInitialState = errors.New("definition must have an initial tag")
)

var titleCaser = cases.Title(language.English)

// GenerateMermaid converts a definition to a Mermaid state diagram.
func GenerateMermaid(def *lifecycle.Definition) (string, error) {
	return GenerateMermaidWithOptions(def, DefaultOptions())
}

// GenerateMermaidFromFile loads a definition from a YAML file and
// generates a Mermaid diagram.
func GenerateMermaidFromFile(path string) (string, error) {
	def, err := lifecycle.LoadDefinition(path)
	if err != nil {
		return "", fmt.Errorf("failed to load definition: %w", err)
	}

	return GenerateMermaid(def)
}

// GenerateMermaidWithOptions generates a Mermaid diagram with custom options.
func GenerateMermaidWithOptions(def *lifecycle.Definition, opts Options) (string, error) {
	if def == nil {
		return "", ErrDefinitionNil
	}

	if def.Initial == "" {
		return "", ErrNoInitialState
	}

	var sb strings.Builder

	// Header
	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("stateDiagram-%s\n", opts.Direction))

	// Initial tag marker
	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", def.Initial))

	highlightMap := make(map[lifecycle.Tag]bool)
	for _, tag := range opts.HighlightPath {
		highlightMap[tag] = true
	}

	// Stable natural ordering of tags for reproducible diagrams
	names := make([]string, len(def.Tags))
	for i, tag := range def.Tags {
		names[i] = string(tag)
	}

	natsort.Sort(names)

	ruleMap := make(map[lifecycle.Tag][]lifecycle.Rule)
	for _, rule := range def.Rules {
		ruleMap[rule.From] = append(ruleMap[rule.From], rule)
	}

	for _, name := range names {
		tag := lifecycle.Tag(name)

		if opts.ShowLabels {
			sb.WriteString(fmt.Sprintf("    %s: %s\n", name, displayLabel(name)))
		}

		isTerminal := def.IsTerminal(tag)

		switch {
		case highlightMap[tag]:
			sb.WriteString(fmt.Sprintf("    class %s highlighted\n", name))
		case isTerminal:
			sb.WriteString(fmt.Sprintf("    class %s terminalTag\n", name))
		}

		for _, rule := range ruleMap[tag] {
			label := ""
			if opts.ShowActions {
				label = ": " + string(rule.Action)
			}

			sb.WriteString(fmt.Sprintf("    %s --> %s%s\n", name, rule.To, label))
		}

		if isTerminal {
			sb.WriteString(fmt.Sprintf("    %s --> [*]\n", name))
		}
	}

	sb.WriteString("\n")
	sb.WriteString("    classDef terminalTag fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px\n")
	sb.WriteString("    classDef highlighted fill:#fff9c4,stroke:#f57f17,stroke-width:3px\n")

	sb.WriteString("```\n")

	return sb.String(), nil
}

// displayLabel renders a tag name for humans: "past_due" becomes "Past Due".
func displayLabel(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}
