package observer

import (
	"github.com/rs/zerolog/log"
)

func (r *Registry) Register(o Observer) {
	r.mu.Lock()
	r.observers[o.ID()] = o
	count := len(r.observers)
	r.mu.Unlock()

	r.changed(count)
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.observers, id)
	count := len(r.observers)
	r.mu.Unlock()

	r.changed(count)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.observers)
}

func (r *Registry) Notify(id string, e Event) error {
	r.mu.RLock()
	o, found := r.observers[id]
	r.mu.RUnlock()

	if !found {
		return ErrUnknownObserver
	}
	return o.OnNotify(e)
}

// Broadcast sends e to every observer registered when it starts. Failing observers are skipped;
// ErrNoDelivery is returned only if there were observers and all of them failed.
func (r *Registry) Broadcast(e Event) error {
	r.mu.RLock()
	targets := make([]Observer, 0, len(r.observers))
	for _, o := range r.observers {
		targets = append(targets, o)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, o := range targets {
		if err := o.OnNotify(e); err != nil {
			log.Warn().Err(err).Str("observer", o.ID()).Str("event", e.Name).Msg("Cannot notify observer, skipped")
			continue
		}
		delivered++
	}

	if len(targets) > 0 && delivered == 0 {
		return ErrNoDelivery
	}
	return nil
}

func (r *Registry) changed(count int) {
	if r.onChange != nil {
		r.onChange(count)
	}
}
