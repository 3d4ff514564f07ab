package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventStateChanged     EventType = "StateChanged"
	EventQueryAccepted    EventType = "QueryAccepted"
	EventSearchStarted    EventType = "SearchStarted"
	EventSearchSuperseded EventType = "SearchSuperseded"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchFailed     EventType = "SearchFailed"
	EventResultsCleared   EventType = "ResultsCleared"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// StateChangedEvent carries every view state transition, in order
type StateChangedEvent struct {
	Seq   uint64
	State ViewState
}

func (e StateChangedEvent) Type() EventType { return EventStateChanged }

// QueryAcceptedEvent is emitted when a value passes deduplication and starts its debounce window
type QueryAcceptedEvent struct {
	Query string
}

func (e QueryAcceptedEvent) Type() EventType { return EventQueryAccepted }

// SearchStartedEvent is emitted when a debounced query is handed to the fetcher
type SearchStartedEvent struct {
	Query      string
	Generation uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchSupersededEvent is emitted when an in-flight search loses to a newer one or a clear
type SearchSupersededEvent struct {
	Query      string
	Generation uint64
}

func (e SearchSupersededEvent) Type() EventType { return EventSearchSuperseded }

// SearchCompletedEvent is emitted when the authoritative search returns items
type SearchCompletedEvent struct {
	Query      string
	Generation uint64
	Count      int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the authoritative search fails
type SearchFailedEvent struct {
	Query      string
	Generation uint64
	Err        error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ResultsClearedEvent is emitted when results are reset
type ResultsClearedEvent struct{}

func (e ResultsClearedEvent) Type() EventType { return EventResultsCleared }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
