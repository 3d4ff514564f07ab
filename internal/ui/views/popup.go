package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alert is a modal message box shown over the main view
type Alert struct {
	Title string
	Body  string
	Hint  string
}

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderAlert renders an alert box centered in a width x height area
func (pr *PopupRenderer) RenderAlert(a Alert, width, height int) string {
	var b strings.Builder
	b.WriteString(pr.styles.AlertTitle.Render(a.Title))
	if a.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(a.Body)
	}
	if a.Hint != "" {
		b.WriteString("\n\n")
		b.WriteString(pr.styles.Dim.Render(a.Hint))
	}
	box := pr.styles.AlertBox.Render(b.String())

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
