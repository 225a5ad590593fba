// Package render turns formatted paragraphs into console text and
// static HTML pages.
package render

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/Lectionarium/core/locator"
	"github.com/FocuswithJustin/Lectionarium/core/paragraph"
)

const (
	// ANSI sequence for dim text.
	dim = "\033[2m"
	// ANSI sequence for normal-brightness text.
	normal = "\033[22m"

	consoleWidth = 80
	proseIndent  = "    "

	// Poetry indentation: first line of a paragraph gets the narrow
	// column, continuation lines the wide one.
	poetryFirstIndent = 12
	poetryRestIndent  = 16
)

// Console renders paragraphs for terminal display. Verse numbers are
// dimmed when useColor is set, bracketed otherwise. Prose wraps at 80
// columns with second and later paragraphs indented; poetry keeps one
// output line per poetry line.
func Console(paragraphs []*paragraph.Paragraph, useColor bool) string {
	rendered := make([]string, 0, len(paragraphs))
	for i, p := range paragraphs {
		if p.Mode == paragraph.Poetry {
			rendered = append(rendered, poetryForConsole(p, useColor))
		} else {
			rendered = append(rendered, proseForConsole(p, i == 0, useColor))
		}
	}
	return strings.Join(rendered, "\n") + "\n"
}

func proseForConsole(p *paragraph.Paragraph, isFirst, useColor bool) string {
	var parts []string
	for _, line := range p.Lines {
		if line.Addr != nil {
			parts = append(parts, proseAddrToken(*line.Addr, useColor))
		}
		parts = append(parts, line.Text)
	}

	indent := ""
	if !isFirst {
		indent = proseIndent
	}
	return fill(strings.Join(parts, " "), consoleWidth, indent)
}

func proseAddrToken(addr locator.Addr, useColor bool) string {
	if useColor {
		return dim + addr.String() + normal
	}
	return "[" + addr.String() + "]"
}

func poetryForConsole(p *paragraph.Paragraph, useColor bool) string {
	lines := make([]string, 0, len(p.Lines))
	for i, line := range p.Lines {
		token := ""
		if line.Addr != nil {
			token = "[" + line.Addr.String() + "]"
		}

		indent := poetryRestIndent
		if i == 0 {
			indent = poetryFirstIndent
		}
		token = fmt.Sprintf("%-*s", indent, token)

		if useColor {
			token = strings.Replace(token, "[", dim, 1)
			token = strings.Replace(token, "]", normal+"  ", 1)
		}
		lines = append(lines, token+line.Text)
	}
	return strings.Join(lines, "\n")
}

// fill greedily wraps text at the given width. The indent applies to
// the first output line only and counts against its width.
func fill(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent
	}

	var b strings.Builder
	lineLen := len(indent)
	b.WriteString(indent)
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen += len(word)
			continue
		}
		if lineLen+1+len(word) > width {
			b.WriteString("\n")
			b.WriteString(word)
			lineLen = len(word)
		} else {
			b.WriteString(" ")
			b.WriteString(word)
			lineLen += 1 + len(word)
		}
	}
	return b.String()
}
