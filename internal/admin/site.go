package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Dispatcher is the type-erased view of a ModelAdmin used by the site
// registry and command handlers.
type Dispatcher interface {
	Meta() ModelMeta
	Actions(locale string) ([]MenuEntry, error)
	DispatchIDs(ctx context.Context, req Request, action string, ids []string) (Summary, error)
}

var _ Dispatcher = (*ModelAdmin[Record])(nil)

// Site maps model names to their admins.
type Site struct {
	mu     sync.RWMutex
	models map[string]Dispatcher
	order  []string
}

// NewSite returns an empty registry.
func NewSite() *Site {
	return &Site{models: map[string]Dispatcher{}}
}

// Register adds a model admin keyed by its meta name.
func (s *Site) Register(d Dispatcher) error {
	name := strings.TrimSpace(d.Meta().Name)
	if name == "" {
		return fmt.Errorf("%w: empty model name", ErrUnknownModel)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.models[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateModel, name)
	}
	s.models[name] = d
	s.order = append(s.order, name)
	return nil
}

// Model returns the admin registered for name.
func (s *Site) Model(name string) (Dispatcher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.models[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return d, nil
}

// Models lists registered model metadata in registration order.
func (s *Site) Models() []ModelMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ModelMeta, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.models[name].Meta())
	}
	return out
}

// Dispatch runs action on the model's records identified by ids.
func (s *Site) Dispatch(ctx context.Context, model string, req Request, action string, ids []string) (Summary, error) {
	d, err := s.Model(model)
	if err != nil {
		return Summary{}, err
	}
	return d.DispatchIDs(ctx, req, action, ids)
}
