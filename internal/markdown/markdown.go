// Package markdown provides styled markdown rendering for entry text.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle removes document margins so rendered entries line up with
// the rest of the detail pane.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with quill-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer wrapping at width. style is "dark" or "light";
// anything else falls back to terminal auto-detection.
func New(width int, style string) (*Renderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	}
	switch style {
	case "dark", "light":
		opts = append([]glamour.TermRendererOption{glamour.WithStandardStyle(style)}, opts...)
	default:
		opts = append([]glamour.TermRendererOption{glamour.WithAutoStyle()}, opts...)
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word-wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
