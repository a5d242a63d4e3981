package mocks

import (
	"sync"

	"naturekids/infras/otel"
)

// Span is what a Recorder keeps of one finished scope.
type Span struct {
	Name       string
	Attributes map[string]any
	Events     []string
	Errors     []error
	Ended      bool
}

type scopeImpl struct {
	mu   *sync.Mutex
	span *Span
}

func (s *scopeImpl) AddEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.span.Events = append(s.span.Events, name)
}

func (s *scopeImpl) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.span.Ended = true
}

func (s *scopeImpl) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.span.Attributes[key] = value
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

func (s *scopeImpl) TraceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.span.Errors = append(s.span.Errors, err)
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

// NewScope returns a scope that is not attached to any recorder.
func NewScope() otel.Scope {
	return &scopeImpl{mu: &sync.Mutex{}, span: &Span{Attributes: map[string]any{}}}
}
