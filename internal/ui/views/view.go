package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"foodsearch/internal/domain"
)

// StatusKind selects how the status line is colored
type StatusKind int

const (
	KindInfo StatusKind = iota
	KindLoading
	KindWarning
	KindError
)

// Screen contains all the state needed for rendering
type Screen struct {
	Width      int
	Height     int
	Input      string
	Status     string
	StatusKind StatusKind
	Items      []domain.FoodItem
	Selected   int
	ShowFields bool
	Alert      *Alert
	Help       string
	Indicator  string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(s Screen) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(s))
	content.WriteString("\n")
	content.WriteString(r.styles.Input.Render(s.Input))
	content.WriteString("\n")

	if s.Status != "" {
		content.WriteString(r.styles.StatusStyle(s.StatusKind).Render(s.Status))
		content.WriteString("\n")
	} else {
		content.WriteString("\n")
	}

	if len(s.Items) > 0 {
		content.WriteString(r.renderItems(s))
	}

	if s.Help != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := s.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		paddingNeeded := availableLines - currentLines - 1
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(s.Help))
	}

	mainStyle := r.styles.Main
	if s.Height > 0 {
		mainStyle = mainStyle.MaxHeight(s.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if s.Alert != nil {
		return r.popupRender.RenderAlert(*s.Alert, s.Width, s.Height)
	}

	return finalContent
}

// listHeight is the number of rows left for the result list
func listHeight(s Screen) int {
	// title(2) + input box(3) + status(3) + help(2) + padding(2)
	h := s.Height - 12
	if s.ShowFields && s.Selected >= 0 && s.Selected < len(s.Items) {
		h -= len(s.Items[s.Selected].Fields)
	}
	if h < 3 {
		h = 3
	}
	return h
}

// viewport returns the first visible row so that the selection stays on screen
func viewport(selected, total, height int) int {
	if total <= height || selected < height {
		return 0
	}
	offset := selected - height + 1
	if offset > total-height {
		offset = total - height
	}
	return offset
}

func (r *Renderer) renderItems(s Screen) string {
	var lines []string

	height := listHeight(s)
	offset := viewport(s.Selected, len(s.Items), height)
	end := offset + height
	if end > len(s.Items) {
		end = len(s.Items)
	}

	for i := offset; i < end; i++ {
		item := s.Items[i]
		if i == s.Selected {
			line := r.styles.SelectionBg.Render(r.styles.Highlight.Render("> " + item.Name))
			lines = append(lines, line)
			if s.ShowFields {
				for _, f := range Fields(item) {
					lines = append(lines, fmt.Sprintf("    %s %s",
						r.styles.FieldKey.Render(f.Key+":"),
						r.styles.FieldValue.Render(f.Value)))
				}
			}
			continue
		}
		lines = append(lines, r.styles.Item.Render("  "+item.Name))
	}

	if len(s.Items) > height {
		lines = append(lines, r.styles.Scroll.Render(
			fmt.Sprintf("  %d-%d of %d", offset+1, end, len(s.Items))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderTitle renders the logo with the activity indicator right-aligned
func (r *Renderer) renderTitle(s Screen) string {
	logo := r.styles.Title.Render("foodsearch")
	if s.Indicator == "" {
		return logo
	}

	right := r.styles.Dim.Render(s.Indicator)
	termWidth := s.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width("foodsearch") - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	title := lipgloss.JoinHorizontal(lipgloss.Top, "foodsearch", strings.Repeat(" ", paddingWidth), right)
	return r.styles.Title.Render(title)
}
