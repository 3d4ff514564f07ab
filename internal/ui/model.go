package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"

	"foodsearch/internal/catalog"
	"foodsearch/internal/config"
	"foodsearch/internal/domain"
	"foodsearch/internal/ui/handlers"
	"foodsearch/internal/ui/views"
)

const dismissHint = "enter or esc to dismiss"

// Searcher is the part of the search pipeline the UI drives
type Searcher interface {
	Send(text string)
	Clear()
	State() domain.ViewState
}

// Model represents the application state
type Model struct {
	searcher  Searcher
	config    *config.Config
	catalog   *catalog.Catalog
	minLength int

	input    textinput.Model
	help     help.Model
	keys     keyMap
	renderer *views.Renderer
	pager    Pager

	activity     *handlers.Activity
	eventHandler *handlers.EventHandler

	state      domain.ViewState
	status     catalog.Message
	hasStatus  bool
	selected   int
	showFields bool
	alert      *views.Alert

	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(searcher Searcher, cfg *config.Config, cat *catalog.Catalog) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if cat == nil {
		cat = catalog.New(cfg.Messages)
	}

	ti := textinput.New()
	ti.Placeholder = cfg.UISettings.Placeholder
	if ti.Placeholder == "" {
		ti.Placeholder = catalog.Placeholder
	}
	ti.Prompt = "> "
	ti.Focus()

	m := &Model{
		searcher:   searcher,
		config:     cfg,
		catalog:    cat,
		minLength:  cfg.Search.MinQueryLength,
		input:      ti,
		help:       help.New(),
		keys:       newKeyMap(),
		renderer:   views.NewRenderer(),
		pager:      NewPagerOps(),
		showFields: cfg.UISettings.ShowFields,
		activity:   &handlers.Activity{},
	}
	m.eventHandler = handlers.NewEventHandler(m.activity)
	m.applyState(searcher.State())
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if ops, ok := m.pager.(*PagerOps); ok {
		ops.SetProgram(p)
	}
}

// SetPager replaces the pager used for item details
func (m *Model) SetPager(p Pager) {
	m.pager = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 12
		return m, nil

	case StateMsg:
		m.applyState(msg.State)
		return m, nil

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Error showing %s in pager: %v", msg.item, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// The alert is modal
	if m.alert != nil {
		if key.Matches(msg, m.keys.Select, m.keys.Clear) {
			m.alert = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Clear):
		m.dismissSearch()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if item, ok := m.state.ItemAt(m.selected); ok {
			log.Printf("Selected '%s'", item.Name)
			m.alert = &views.Alert{Title: catalog.SelectedTitle, Body: item.Name, Hint: dismissHint}
		}
		return m, nil

	case key.Matches(msg, m.keys.Details):
		m.showFields = !m.showFields
		return m, nil

	case key.Matches(msg, m.keys.Pager):
		if item, ok := m.state.ItemAt(m.selected); ok {
			return m, m.openPager(item)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.textChanged(after)
	}
	return m, cmd
}

// textChanged forwards a new field value to the pipeline. Short values
// clear the results first so stale rows never sit under the hint.
func (m *Model) textChanged(text string) {
	if uniseg.GraphemeClusterCount(text) < m.minLength {
		m.searcher.Clear()
		m.setStatus(catalog.MessageTooShort)
	}
	m.searcher.Send(text)
}

// dismissSearch empties the field and the results and shows the intro
func (m *Model) dismissSearch() {
	m.input.Reset()
	m.searcher.Clear()
	m.searcher.Send("")
	m.setStatus(catalog.MessageIntro)
}

func (m *Model) applyState(s domain.ViewState) {
	m.state = s
	m.selected = 0

	if msg, ok := catalog.ForState(s); ok {
		m.setStatus(msg)
	} else if len(s.Items) > 0 {
		m.hasStatus = false
	}
	// Done with no items keeps whatever hint is showing

	if s.Phase == domain.PhaseFailed {
		log.Printf("Showing error state: %v", s.Err)
	}
}

func (m *Model) setStatus(msg catalog.Message) {
	m.status = msg
	m.hasStatus = true
}

func (m *Model) moveSelection(delta int) {
	rows := m.state.NumberOfRows()
	if rows == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= rows {
		m.selected = rows - 1
	}
}

// openPager returns a command that shows the item's details in the pager
func (m *Model) openPager(item domain.FoodItem) tea.Cmd {
	content := views.RenderDetails(item)
	pager := m.pager
	program := m.program
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}

		err := pager.Show(content)

		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{item: item.Name, err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	screen := views.Screen{
		Width:      m.width,
		Height:     m.height,
		Input:      m.input.View(),
		Items:      m.state.Items,
		Selected:   m.selected,
		ShowFields: m.showFields,
		Alert:      m.alert,
		Help:       m.help.View(m.keys),
		Indicator:  m.activity.Indicator(),
	}
	if m.hasStatus {
		screen.Status = m.catalog.Text(m.status)
		screen.StatusKind = statusKind(m.status)
	}

	return m.renderer.Render(screen)
}

// StatusText returns the status line currently shown, if any
func (m *Model) StatusText() (string, bool) {
	if !m.hasStatus {
		return "", false
	}
	return m.catalog.Text(m.status), true
}

// Selected returns the highlighted row
func (m *Model) Selected() int {
	return m.selected
}

// CurrentState returns the last view state applied to the model
func (m *Model) CurrentState() domain.ViewState {
	return m.state
}

func statusKind(msg catalog.Message) views.StatusKind {
	switch msg {
	case catalog.MessageSearching:
		return views.KindLoading
	case catalog.MessageTooShort:
		return views.KindWarning
	case catalog.MessageError:
		return views.KindError
	default:
		return views.KindInfo
	}
}
