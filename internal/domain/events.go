package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFetchSucceeded EventType = "FetchSucceeded"
	EventFetchFailed    EventType = "FetchFailed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchSucceededEvent is emitted when the repositories for a language arrive
type FetchSucceededEvent struct {
	Language Language
	Repos    []Repo
}

func (e FetchSucceededEvent) Type() EventType { return EventFetchSucceeded }

// FetchFailedEvent is emitted when fetching a language fails
type FetchFailedEvent struct {
	Language Language
	Message  string
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }
