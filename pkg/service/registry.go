// Package service provides the registry through which the host process
// instantiates its services once and looks them up by name.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

var (
	// ErrInvalidAlias is returned when a service reports an empty alias.
	ErrInvalidAlias = errors.New("invalid service alias")

	// ErrInitialize is returned when a service fails to initialize.
	ErrInitialize = errors.New("service failed to initialize")
)

// Service is a component that can be registered with a Registry.
type Service interface {
	// Alias returns the name the service is looked up by.
	Alias() string

	// Initialize prepares the service before it becomes visible.
	Initialize(ctx context.Context) error
}

// Registry holds initialized services by case-insensitive alias.
type Registry struct {
	mu       sync.RWMutex
	services map[string]Service
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{services: make(map[string]Service)}
}

// Register initializes svc and stores it under its alias, replacing any
// service previously registered under the same alias.
func (r *Registry) Register(ctx context.Context, svc Service) error {
	name := svc.Alias()
	if name == "" {
		slog.Error("failed to register service", "error", ErrInvalidAlias)
		return ErrInvalidAlias
	}

	if err := svc.Initialize(ctx); err != nil {
		slog.Error("failed to register service", "service", name, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrInitialize, name, err)
	}

	r.mu.Lock()
	r.services[strings.ToLower(name)] = svc
	r.mu.Unlock()

	slog.Info("registered service", "service", name)

	return nil
}

// Get returns the service registered under name, or nil.
func (r *Registry) Get(name string) Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.services[strings.ToLower(name)]
}

// Lookup returns the service registered under name as a T.
func Lookup[T Service](r *Registry, name string) (T, bool) {
	svc, ok := r.Get(name).(T)
	return svc, ok
}
