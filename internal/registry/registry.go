// Package registry loads the static list of available question sets.
package registry

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/mkarlsen/tally/internal/apperr"
)

// Set describes one independently loadable question set. File is the
// source path relative to the library root; Description is optional
// human-authored Markdown prose shown above the checklist.
type Set struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	File        string `yaml:"file" json:"file"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Validate validates one registry entry.
func (s Set) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.File, validation.Required),
	)
}

// Registry holds the ordered question sets, indexed by id.
type Registry struct {
	sets []Set
	byID map[string]int
}

// Load reads and validates a YAML registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Registry from raw YAML. Declaration order is preserved;
// duplicate ids are rejected.
func Parse(data []byte) (*Registry, error) {
	var file struct {
		Sets []Set `yaml:"sets"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("registry: parse: %w", err)
	}

	r := &Registry{byID: make(map[string]int, len(file.Sets))}
	for _, s := range file.Sets {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("registry: set %q: %w", s.ID, err)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate set id %q", s.ID)
		}
		r.byID[s.ID] = len(r.sets)
		r.sets = append(r.sets, s)
	}
	return r, nil
}

// Sets returns the registered sets in declaration order.
func (r *Registry) Sets() []Set {
	out := make([]Set, len(r.sets))
	copy(out, r.sets)
	return out
}

// Get looks up one set by id.
func (r *Registry) Get(id string) (Set, error) {
	i, ok := r.byID[id]
	if !ok {
		return Set{}, fmt.Errorf("%w: %s", apperr.ErrUnknownSet, id)
	}
	return r.sets[i], nil
}

// FileOf reports which set (if any) a library-relative file path belongs
// to. Used by the watcher to map file events onto set-update events.
func (r *Registry) FileOf(rel string) (Set, bool) {
	for _, s := range r.sets {
		if s.File == rel {
			return s, true
		}
	}
	return Set{}, false
}
