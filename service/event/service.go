package event

import (
	"context"
	"sync"
)

// Handler receives events synchronously, in publication order per publisher.
type Handler func(ctx context.Context, event *Event[any])

// Service fans events out to subscribed handlers
type Service struct {
	handlers []Handler
	mux      sync.RWMutex
}

// Subscribe registers a handler
func (s *Service) Subscribe(handler Handler) {
	if handler == nil {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.handlers = append(s.handlers, handler)
}

func (s *Service) publish(ctx context.Context, event *Event[any]) {
	if s == nil {
		return
	}
	s.mux.RLock()
	handlers := s.handlers
	s.mux.RUnlock()
	for _, handler := range handlers {
		handler(ctx, event)
	}
}

// New creates an event service
func New(handlers ...Handler) *Service {
	ret := &Service{}
	for _, handler := range handlers {
		ret.Subscribe(handler)
	}
	return ret
}

// Publisher publishes typed events through a Service
type Publisher[T any] struct {
	service *Service
}

// Publish delivers event to every handler
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) {
	if p == nil || p.service == nil || event == nil {
		return
	}
	p.service.publish(ctx, &Event[any]{
		ID:        event.ID,
		Context:   event.Context,
		CreatedAt: event.CreatedAt,
		Metadata:  event.Metadata,
		Data:      event.Data,
	})
}

// NewPublisher creates a typed publisher
func NewPublisher[T any](service *Service) *Publisher[T] {
	return &Publisher[T]{service: service}
}
