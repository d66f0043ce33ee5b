package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var tagPattern = regexp.MustCompile(`\[(/?)([a-z][a-z-]*)\]`)

// MarkupParser styles text written with [tag]...[/tag] markers. Tags may
// nest. Unknown or unclosed tags are left in the text as written.
type MarkupParser struct {
	styles map[string]lipgloss.Style
}

// NewMarkupParser creates a parser that knows the message tags and one tag
// per link state, named after the state.
func NewMarkupParser() *MarkupParser {
	styles := map[string]lipgloss.Style{
		"bold":    lipgloss.NewStyle().Bold(true),
		"muted":   MutedStyle,
		"path":    PathStyle,
		"profile": ProfileStyle,
		"success": SuccessStyle,
		"warning": WarningStyle,
		"error":   ErrorStyle,
	}
	for state := range stateColors {
		styles[string(state)] = LinkStateStyle(state)
	}
	return &MarkupParser{styles: styles}
}

// Render replaces known tags with terminal styling
func (p *MarkupParser) Render(text string) string {
	return p.process(text, func(style lipgloss.Style, body string) string {
		return style.Render(body)
	})
}

// Strip removes known tags, leaving the text unstyled
func (p *MarkupParser) Strip(text string) string {
	return p.process(text, func(_ lipgloss.Style, body string) string {
		return body
	})
}

func (p *MarkupParser) process(text string, apply func(lipgloss.Style, string) string) string {
	var out strings.Builder
	for text != "" {
		open, tag, ok := p.findOpen(text)
		if !ok {
			out.WriteString(text)
			break
		}

		bodyStart := open + len(tag) + 2
		closer := "[/" + tag + "]"
		end := strings.Index(text[bodyStart:], closer)
		if end < 0 {
			out.WriteString(text[:bodyStart])
			text = text[bodyStart:]
			continue
		}

		out.WriteString(text[:open])
		out.WriteString(apply(p.styles[tag], p.process(text[bodyStart:bodyStart+end], apply)))
		text = text[bodyStart+end+len(closer):]
	}
	return out.String()
}

// findOpen locates the first opening tag the parser has a style for
func (p *MarkupParser) findOpen(text string) (int, string, bool) {
	for _, m := range tagPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[3] > m[2] {
			continue
		}
		tag := text[m[4]:m[5]]
		if _, ok := p.styles[tag]; ok {
			return m[0], tag, true
		}
	}
	return 0, "", false
}

var defaultParser = NewMarkupParser()

// Render styles text with the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip removes markup with the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
