package menu

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/navd/pkg/metric"
	"github.com/mchmarny/navd/pkg/service"
)

// ServiceAlias is the name the navigation service is registered under.
const ServiceAlias = "navigationservice"

var _ service.Service = (*Service)(nil)

// Mutation result labels.
const (
	resultOK       = "ok"
	resultRejected = "rejected"
)

// Service manages named menus: it validates incoming definitions, applies
// mutations to the stored trees and serves compiled markup from a cache
// that every mutation invalidates.
//
// Invalid input is reported by a false, nil or empty result. The reason is
// logged at debug level.
type Service struct {
	mu       sync.RWMutex
	store    *Store
	cache    *Cache
	logger   *slog.Logger
	registry prometheus.Registerer

	mutations *metric.Counter
	compiles  *metric.Counter
}

// Option is a functional option for configuring the Service.
type Option func(*Service)

// WithLogger sets the logger used for diagnostics.
// If not specified, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRegistry sets the registry the service metrics are registered with.
// If not specified, a private registry is used.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(s *Service) { s.registry = reg }
}

// New creates an empty navigation service.
func New(opts ...Option) *Service {
	s := &Service{
		store:  NewStore(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	s.cache = NewCache(s.registry)
	s.mutations = metric.NewCounterWithRegistry(s.registry, "menu_mutations_total",
		"Menu operations by kind and result.", "op", "result")
	s.compiles = metric.NewCounterWithRegistry(s.registry, "menu_compile_total",
		"Menu compilations by strategy.", "strategy")

	return s
}

// Alias returns the name the service is registered under.
func (s *Service) Alias() string {
	return ServiceAlias
}

// Initialize prepares the service for use.
func (s *Service) Initialize(_ context.Context) error {
	s.logger.Debug("navigation service initialized")
	return nil
}

// IsMenuValid reports whether every given item, and every item below them,
// is a well-formed link, parent or separator.
func (s *Service) IsMenuValid(items ...Item) bool {
	return ValidForest(items)
}

// CreateMenu stores a new menu under name. It fails if a menu with that
// name exists or the forest is invalid.
func (s *Service) CreateMenu(name string, forest []Item, opts Options) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Has(name) {
		return s.reject("create", name, "menu already exists")
	}
	if !ValidForest(forest) {
		return s.reject("create", name, "invalid menu")
	}

	s.store.Put(name, Build(forest), opts)
	s.cache.Delete(name)

	return s.accept("create", name)
}

// DeleteMenu removes a menu, its options and its compiled markup. It fails
// if none of them exist.
func (s *Service) DeleteMenu(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed := s.store.Delete(name)
	if s.cache.Has(name) {
		existed = true
		s.cache.Delete(name)
	}
	if !existed {
		return s.reject("delete", name, "menu not found")
	}

	return s.accept("delete", name)
}

// GetMenu returns the compiled markup of a menu, compiling it on first use.
// It returns an empty string if the menu does not exist.
func (s *Service) GetMenu(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if markup, ok := s.cache.Get(name); ok {
		return markup
	}

	e := s.store.Get(name)
	if e == nil {
		return ""
	}

	strategy := StrategyOf(e.Roots)
	markup := Compile(e.Roots, e.Options)
	s.cache.Put(name, markup)
	s.compiles.Increment(string(strategy))

	s.logger.Debug("menu compiled", "menu", name, "strategy", strategy, "bytes", len(markup))

	return markup
}

// GetMenuRaw returns the stored forest of a menu, or nil.
//
// The returned slice is the stored tree itself. Changing it bypasses
// validation and does not invalidate the compiled markup; use the append
// and delete operations instead.
func (s *Service) GetMenuRaw(name string) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.store.Get(name)
	if e == nil {
		return nil
	}
	return e.Roots
}

// AppendMenuItem appends an item to a menu. With an empty target the item
// becomes a new root; otherwise it is appended to the children of the node
// whose alias is target. Appending below a link turns it into a parent
// that remembers the href; deleting its last child restores the link.
//
// It fails if the menu does not exist, the item is invalid, any alias of the
// item already exists in the menu, or the target cannot take children.
func (s *Service) AppendMenuItem(name string, item Item, target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendItem(name, item, target)
}

func (s *Service) appendItem(name string, item Item, target string) bool {
	e := s.store.Get(name)
	if e == nil {
		return s.reject("append", name, "menu not found")
	}
	if !ValidItem(item) {
		return s.reject("append", name, "invalid item")
	}

	existing := Aliases(e.Roots...)
	if slices.Contains(existing, item.Alias) {
		return s.reject("append", name, "alias already exists")
	}
	if intersects(existing, ItemAliases(item)) {
		return s.reject("append", name, "item aliases intersect menu")
	}

	n := buildItem(item)

	if target == "" {
		e.Roots = append(e.Roots, n)
	} else {
		switch t := find(e.Roots, target).(type) {
		case *Parent:
			t.Children = append(t.Children, n)
		case *Link:
			promoted := &Parent{Base: t.Base, Children: []Node{n}, href: t.Href}
			replace(e.Roots, t, promoted)
		case *Separator:
			return s.reject("append", name, "target is a separator")
		default:
			return s.reject("append", name, "target not found")
		}
	}

	s.cache.Delete(name)

	return s.accept("append", name)
}

// AppendMenuItems appends several items to a menu. The batch is validated
// and checked for alias collisions as a whole.
//
// With an empty target all items become new roots in one step. With a
// target each item is appended on its own, so the batch is not atomic:
// readers may observe it half applied, and items appended before a failing
// one stay in place. The result is false if any item failed, which
// includes every item failing on a missing target.
func (s *Service) AppendMenuItems(name string, items []Item, target string) bool {
	s.mu.Lock()

	e := s.store.Get(name)
	if e == nil {
		s.mu.Unlock()
		return s.reject("append_batch", name, "menu not found")
	}
	if !ValidForest(items) {
		s.mu.Unlock()
		return s.reject("append_batch", name, "invalid items")
	}
	if intersects(Aliases(e.Roots...), ItemAliases(items...)) {
		s.mu.Unlock()
		return s.reject("append_batch", name, "item aliases intersect menu")
	}

	if target == "" {
		e.Roots = append(e.Roots, Build(items)...)
		s.cache.Delete(name)
		s.mu.Unlock()
		return s.accept("append_batch", name)
	}

	s.mu.Unlock()

	ok := true
	for _, it := range items {
		if !s.AppendMenuItem(name, it, target) {
			ok = false
		}
	}
	if !ok {
		return s.reject("append_batch", name, "batch partially applied")
	}

	return s.accept("append_batch", name)
}

// DeleteMenuItem removes the node with the given alias, and everything
// below it, from a menu.
func (s *Service) DeleteMenuItem(name, alias string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.store.Get(name)
	if e == nil {
		return s.reject("delete_item", name, "menu not found")
	}

	n := find(e.Roots, alias)
	if n == nil {
		return s.reject("delete_item", name, "alias not found")
	}

	parent, ok := findParent(e.Roots, AliasOf(n))
	if !ok {
		return s.reject("delete_item", name, "parent not found")
	}

	var removed int
	if parent == nil {
		e.Roots, removed = remove(e.Roots, n)
	} else {
		parent.Children, removed = remove(parent.Children, n)
	}
	if removed != 1 {
		return s.reject("delete_item", name, "node not removed")
	}
	if parent != nil && len(parent.Children) == 0 && parent.href != "" {
		replace(e.Roots, parent, &Link{Base: parent.Base, Href: parent.href})
	}

	s.cache.Delete(name)

	return s.accept("delete_item", name)
}

// remove deletes n from nodes by identity.
func remove(nodes []Node, n Node) ([]Node, int) {
	i := slices.Index(nodes, n)
	if i < 0 {
		return nodes, 0
	}
	return slices.Delete(nodes, i, i+1), 1
}

// GetMenuItem returns the node with the given alias, or nil.
func (s *Service) GetMenuItem(name, alias string) Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.store.Get(name)
	if e == nil {
		return nil
	}
	return find(e.Roots, alias)
}

// Invalidate drops the compiled markup of a menu so the next GetMenu
// recompiles it. An empty name drops every compiled menu.
func (s *Service) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Invalidate(name)
}

// Names returns the lower-cased names of all menus, sorted.
func (s *Service) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Names()
}

func (s *Service) reject(op, name, reason string) bool {
	s.mutations.Increment(op, resultRejected)
	s.logger.Debug("menu operation rejected", "op", op, "menu", name, "reason", reason)
	return false
}

func (s *Service) accept(op, name string) bool {
	s.mutations.Increment(op, resultOK)
	s.logger.Debug("menu operation applied", "op", op, "menu", name)
	return true
}
