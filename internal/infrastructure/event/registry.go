package event

import (
	"sync"

	"github.com/institute/backend/internal/domain/shared"
)

// subscription is one handler registration
type subscription struct {
	handler shared.EventHandler
	async   bool
}

// HandlerRegistry manages event handler registrations
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]subscription // eventType -> handlers
	wildcard []subscription            // handlers for all events
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string][]subscription),
	}
}

// Register adds a handler for specific event types.
// If no event types are provided, the handler receives all events.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.register(subscription{handler: handler}, eventTypes)
}

// RegisterAsync adds a handler that is dispatched off the publishing goroutine
func (r *HandlerRegistry) RegisterAsync(handler shared.EventHandler, eventTypes ...string) {
	r.register(subscription{handler: handler, async: true}, eventTypes)
}

func (r *HandlerRegistry) register(sub subscription, eventTypes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.wildcard = append(r.wildcard, sub)
		return
	}
	for _, eventType := range eventTypes {
		r.handlers[eventType] = append(r.handlers[eventType], sub)
	}
}

// Unregister removes a handler from all event types
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wildcard = removeHandler(r.wildcard, handler)
	for eventType, subs := range r.handlers {
		r.handlers[eventType] = removeHandler(subs, handler)
		if len(r.handlers[eventType]) == 0 {
			delete(r.handlers, eventType)
		}
	}
}

// GetHandlers returns the type-specific handlers followed by wildcard handlers
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	subs := r.subscriptions(eventType)
	result := make([]shared.EventHandler, 0, len(subs))
	for _, sub := range subs {
		result = append(result, sub.handler)
	}
	return result
}

func (r *HandlerRegistry) subscriptions(eventType string) []subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.handlers[eventType]
	result := make([]subscription, 0, len(typed)+len(r.wildcard))
	result = append(result, typed...)
	return append(result, r.wildcard...)
}

// Len returns the number of distinct registered handlers
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[shared.EventHandler]struct{})
	for _, sub := range r.wildcard {
		seen[sub.handler] = struct{}{}
	}
	for _, subs := range r.handlers {
		for _, sub := range subs {
			seen[sub.handler] = struct{}{}
		}
	}
	return len(seen)
}

func removeHandler(subs []subscription, target shared.EventHandler) []subscription {
	result := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.handler != target {
			result = append(result, s)
		}
	}
	return result
}
