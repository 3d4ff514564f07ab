package eventbus

import (
	"foodsearch/internal/domain"
	"log"
	"runtime/debug"
	"sync"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventStateChanged     = domain.EventStateChanged
	EventQueryAccepted    = domain.EventQueryAccepted
	EventSearchStarted    = domain.EventSearchStarted
	EventSearchSuperseded = domain.EventSearchSuperseded
	EventSearchCompleted  = domain.EventSearchCompleted
	EventSearchFailed     = domain.EventSearchFailed
	EventResultsCleared   = domain.EventResultsCleared
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
)

// Re-export domain event types
type StateChangedEvent = domain.StateChangedEvent
type QueryAcceptedEvent = domain.QueryAcceptedEvent
type SearchStartedEvent = domain.SearchStartedEvent
type SearchSupersededEvent = domain.SearchSupersededEvent
type SearchCompletedEvent = domain.SearchCompletedEvent
type SearchFailedEvent = domain.SearchFailedEvent
type ResultsClearedEvent = domain.ResultsClearedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Events are queued without bound and handed to handlers one at a time from a
// single dispatcher goroutine, so every subscriber sees publish order and a
// publisher never waits on a slow handler.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64

	qmu    sync.Mutex
	queue  []DomainEvent
	signal chan struct{}
	closed bool

	wg   sync.WaitGroup
	quit chan struct{}
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers: make(map[EventType][]subscription),
		signal:   make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventStateChanged, EventQueryAccepted:
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	b.qmu.Lock()
	if b.closed {
		b.qmu.Unlock()
		log.Printf("Event bus closed, dropping event: %v", event.Type())
		return
	}
	b.queue = append(b.queue, event)
	b.qmu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
		// dispatcher already has a pending wake-up
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Close stops the dispatcher after delivering what is already queued
func (b *bus) Close() {
	b.qmu.Lock()
	if b.closed {
		b.qmu.Unlock()
		return
	}
	b.closed = true
	b.qmu.Unlock()

	close(b.quit)
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case <-b.signal:
			b.drain()
		case <-b.quit:
			b.drain()
			return
		}
	}
}

func (b *bus) drain() {
	for {
		b.qmu.Lock()
		if len(b.queue) == 0 {
			b.qmu.Unlock()
			return
		}
		event := b.queue[0]
		b.queue[0] = nil
		b.queue = b.queue[1:]
		b.qmu.Unlock()

		// Copy handlers so none are called with the lock held
		b.mu.RLock()
		subs := b.handlers[event.Type()]
		handlersCopy := make([]EventHandler, len(subs))
		for i, s := range subs {
			handlersCopy[i] = s.handler
		}
		b.mu.RUnlock()

		for _, handler := range handlersCopy {
			b.call(handler, event)
		}
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}
