package menu

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Handler returns an HTTP handler serving compiled menus:
//
//	GET /menus/{name}      compiled markup fragment
//	GET /menus/{name}/raw  stored tree as JSON
//
// The raw tree is a snapshot, not valid input. A parent whose children were
// all deleted is written with neither href nor children and fails ValidItem
// if posted back. A link promoted by appending below it is written as a
// parent; its href is restored only when its last child is deleted.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /menus/{name}", s.serveMarkup)
	mux.HandleFunc("GET /menus/{name}/raw", s.serveRaw)
	return mux
}

func (s *Service) serveMarkup(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	markup := s.GetMenu(name)
	if markup == "" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(markup)); err != nil {
		slog.Error("failed to write menu", "menu", name, "error", err)
	}
}

func (s *Service) serveRaw(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	// Flatten under the read lock; the stored tree may change underneath.
	s.mu.RLock()
	var items []Item
	e := s.store.Get(name)
	if e != nil {
		items = Flatten(e.Roots)
	}
	s.mu.RUnlock()

	if e == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(items); err != nil {
		slog.Error("failed to encode menu", "menu", name, "error", err)
	}
}
