package menu

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrMenuRejected is returned when a definition cannot be created, either
// because it is invalid or because the name is taken.
var ErrMenuRejected = errors.New("menu rejected")

// Definition is a named menu as written in a definition file.
type Definition struct {
	Name    string  `json:"name" yaml:"name"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
	Items   []Item  `json:"items" yaml:"items"`
}

// Document is the top level of a definition file. JSON documents of the
// same shape are accepted as well.
//
//	menus:
//	  - name: main
//	    options:
//	      class: navbar-right
//	    items:
//	      - alias: home
//	        title: Home
//	        href: /
type Document struct {
	Menus []Definition `json:"menus" yaml:"menus"`
}

// ReadDefinitions decodes the menus of a YAML or JSON definition document.
// Items are not validated here.
func ReadDefinitions(r io.Reader) ([]Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu definitions: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode menu definitions: %w", err)
	}

	return doc.Menus, nil
}

// LoadFile reads the menu definitions stored in path.
func LoadFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	defs, err := ReadDefinitions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return defs, nil
}

// Apply creates every definition. Definitions that cannot be created are
// skipped and reported together in the returned error.
func (s *Service) Apply(defs []Definition) error {
	var errs []error
	for _, d := range defs {
		if !s.CreateMenu(d.Name, d.Items, d.Options) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMenuRejected, d.Name))
			continue
		}
		s.logger.Info("menu loaded", "menu", d.Name, "items", len(ItemAliases(d.Items...)))
	}
	return errors.Join(errs...)
}
