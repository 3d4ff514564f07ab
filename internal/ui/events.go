package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"foodsearch/internal/eventbus"
	"foodsearch/internal/ui/handlers"
)

// ForwardEvents delivers the search events the model renders to send,
// typically a tea.Program's Send. The returned function unsubscribes.
func ForwardEvents(bus eventbus.EventBus, send func(tea.Msg)) func() {
	var unsubs []func()
	for _, t := range handlers.Subscribed() {
		unsubs = append(unsubs, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			send(EventMsg{Event: e})
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
