package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for display. ext is the topic file's
// extension, such as ".md".
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Text topics pass
// through unchanged.
type GlamourRenderer struct {
	// Color selects glamour's automatic light/dark style. Without it the
	// "notty" style is used, which keeps the layout but emits no escapes.
	Color bool
	// Width is the word wrap width; 0 leaves glamour's default.
	Width int

	term *glamour.TermRenderer
}

// NewGlamourRenderer creates a markdown renderer
func NewGlamourRenderer(color bool) *GlamourRenderer {
	return &GlamourRenderer{Color: color}
}

// Render falls back to the raw content if glamour fails
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}
	if r.term == nil {
		term, err := glamour.NewTermRenderer(r.options()...)
		if err != nil {
			return content
		}
		r.term = term
	}

	rendered, err := r.term.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("notty")}
	if r.Color {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	return opts
}
