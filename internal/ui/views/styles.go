package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Input         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	Item          lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	FieldKey      lipgloss.Style
	FieldValue    lipgloss.Style
	AlertBox      lipgloss.Style
	AlertTitle    lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1).
			MarginBottom(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Item:          lipgloss.NewStyle(),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		FieldKey:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		FieldValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("251")),
		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 3).
			BorderForeground(lipgloss.Color("99")),
		AlertTitle: lipgloss.NewStyle().Bold(true),
		Help:       lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2).
			MaxHeight(100), // Will be dynamically adjusted
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// StatusStyle picks the style for a status line of the given kind
func (s *Styles) StatusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case KindError:
		return s.Status.Foreground(s.StatusError.GetForeground())
	case KindWarning:
		return s.Status.Foreground(s.StatusWarning.GetForeground())
	case KindLoading:
		return s.Status.Foreground(s.StatusLoading.GetForeground())
	default:
		return s.Status
	}
}
