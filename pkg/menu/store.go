package menu

import (
	"maps"
	"slices"
	"strings"
)

// Entry is a stored menu: its raw forest and creation options.
type Entry struct {
	Roots   []Node
	Options Options
}

// Store holds raw menus by case-insensitive name. It is not safe for
// concurrent use; Service serializes access to it.
type Store struct {
	menus map[string]*Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{menus: make(map[string]*Entry)}
}

// key folds a menu name into its storage key.
func key(name string) string {
	return strings.ToLower(name)
}

// Has reports whether a menu is stored under name.
func (s *Store) Has(name string) bool {
	_, ok := s.menus[key(name)]
	return ok
}

// Get returns the stored menu, or nil.
func (s *Store) Get(name string) *Entry {
	return s.menus[key(name)]
}

// Put stores a menu under name, replacing any previous one.
func (s *Store) Put(name string, roots []Node, opts Options) {
	s.menus[key(name)] = &Entry{Roots: roots, Options: opts}
}

// Delete removes the menu stored under name and reports whether it existed.
func (s *Store) Delete(name string) bool {
	k := key(name)
	if _, ok := s.menus[k]; !ok {
		return false
	}
	delete(s.menus, k)
	return true
}

// Names returns the storage keys of all menus, sorted.
func (s *Store) Names() []string {
	return slices.Sorted(maps.Keys(s.menus))
}
