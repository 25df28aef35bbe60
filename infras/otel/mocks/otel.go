package mocks

import (
	"context"
	"sync"

	"folio/infras/otel"
)

// Otel hands out recording scopes and keeps them by span name.
type Otel struct {
	mu     sync.Mutex
	scopes map[string][]*Scope
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Otel {
	return &Otel{scopes: map[string][]*Scope{}}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := &Scope{}

	o.mu.Lock()
	o.scopes[spanName] = append(o.scopes[spanName], scope)
	o.mu.Unlock()

	return ctx, scope
}

// Scopes returns every scope opened under spanName, oldest first.
func (o *Otel) Scopes(spanName string) []*Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]*Scope(nil), o.scopes[spanName]...)
}

func (o *Otel) Shutdown(context.Context) error {
	return nil
}
