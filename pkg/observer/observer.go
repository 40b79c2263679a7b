package observer

import (
	"errors"
	"sync"
)

var (
	ErrUnknownObserver = errors.New("observer is not registered")
	ErrNoDelivery      = errors.New("event delivered to no observer")
)

// Event is a named payload pushed to subscribers, e.g. "dashboard_update".
type Event struct {
	Name    string
	Payload any
}

func NewEvent(name string, payload any) Event {
	return Event{Name: name, Payload: payload}
}

// Observer is one live subscriber. OnNotify must not block for long; slow transports queue.
type Observer interface {
	ID() string
	OnNotify(Event) error
}

type Notifier interface {
	Register(Observer)
	Unregister(id string)
	Count() int
	Notify(id string, e Event) error
	Broadcast(e Event) error
}

// Registry is the set of connected subscribers, safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	observers map[string]Observer
	onChange  func(count int)
}

func NewRegistry(onChange func(count int)) *Registry {
	return &Registry{
		observers: map[string]Observer{},
		onChange:  onChange,
	}
}
