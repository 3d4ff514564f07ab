package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"foodsearch/internal/eventbus"
)

// Activity summarizes what the search pipeline is doing
type Activity struct {
	Query      string
	Generation uint64
	Searching  bool
	Results    int
	Superseded int
	LastError  string
}

// Indicator renders the activity for the title line
func (a *Activity) Indicator() string {
	switch {
	case a.Searching && a.Superseded > 0:
		return fmt.Sprintf("↻ %s (%d superseded)", a.Query, a.Superseded)
	case a.Searching:
		return fmt.Sprintf("↻ %s", a.Query)
	case a.LastError != "":
		return fmt.Sprintf("✗ %s", a.Query)
	case a.Query != "":
		return fmt.Sprintf("%d for %s", a.Results, a.Query)
	default:
		return ""
	}
}

// EventHandler handles domain events and updates activity
type EventHandler struct {
	activity *Activity
}

// NewEventHandler creates a new event handler
func NewEventHandler(activity *Activity) *EventHandler {
	return &EventHandler{activity: activity}
}

// Subscribed lists the event types HandleEvent reacts to
func Subscribed() []eventbus.EventType {
	return []eventbus.EventType{
		eventbus.EventSearchStarted,
		eventbus.EventSearchSuperseded,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventResultsCleared,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	a := h.activity
	switch e := event.(type) {
	case eventbus.SearchStartedEvent:
		a.Query = e.Query
		a.Generation = e.Generation
		a.Searching = true
		a.LastError = ""

	case eventbus.SearchSupersededEvent:
		a.Superseded++

	case eventbus.SearchCompletedEvent:
		if e.Generation != a.Generation {
			return nil
		}
		a.Searching = false
		a.Results = e.Count
		a.Superseded = 0

	case eventbus.SearchFailedEvent:
		if e.Generation != a.Generation {
			return nil
		}
		a.Searching = false
		a.Results = 0
		a.Superseded = 0
		if e.Err != nil {
			a.LastError = e.Err.Error()
		}

	case eventbus.ResultsClearedEvent:
		*a = Activity{Generation: a.Generation}
	}
	return nil
}
