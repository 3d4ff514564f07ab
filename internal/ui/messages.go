package ui

import (
	"foodsearch/internal/domain"
	"foodsearch/internal/eventbus"
)

// StateMsg carries a view state produced by the search pipeline
type StateMsg struct {
	State domain.ViewState
}

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	item string
	err  error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
