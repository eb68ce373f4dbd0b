// Package service coordinates registry, library, parsing, rendering, and
// answer persistence for the API and MCP layers.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkarlsen/tally/internal/apperr"
	"github.com/mkarlsen/tally/internal/checksum"
	"github.com/mkarlsen/tally/internal/engine"
	"github.com/mkarlsen/tally/internal/export"
	"github.com/mkarlsen/tally/internal/library"
	"github.com/mkarlsen/tally/internal/question"
	"github.com/mkarlsen/tally/internal/registry"
	"github.com/mkarlsen/tally/internal/store"
)

// ProgressNotifier is called after every status mutation with the fresh
// snapshot, e.g. to broadcast it over SSE. May be nil.
type ProgressNotifier func(setID string, snap engine.Snapshot)

// Service is the checklist application service.
type Service struct {
	reg    *registry.Registry
	lib    library.Provider
	st     store.Store
	notify ProgressNotifier
}

// NewService creates a checklist service. notify may be nil.
func NewService(reg *registry.Registry, lib library.Provider, st store.Store, notify ProgressNotifier) *Service {
	return &Service{reg: reg, lib: lib, st: st, notify: notify}
}

// Sets returns the registered question sets in declaration order.
func (s *Service) Sets() []registry.Set {
	return s.reg.Sets()
}

// loadParsed fetches and parses one set's source. A failure here is scoped
// to the requested set; other sets' state is untouched.
func (s *Service) loadParsed(id string) (registry.Set, *question.ParseResult, string, error) {
	set, err := s.reg.Get(id)
	if err != nil {
		return registry.Set{}, nil, "", err
	}
	data, err := s.lib.Read(set.File)
	if err != nil {
		return registry.Set{}, nil, "", fmt.Errorf("load set %s: %w", id, err)
	}
	parsed, err := question.ParseFile(set.File, data, set.ID)
	if err != nil {
		return registry.Set{}, nil, "", err
	}
	return set, parsed, checksum.Sum(data), nil
}

// LoadSet renders the full checklist view for one set, reading prior
// answer state from the store.
func (s *Service) LoadSet(_ context.Context, id string) (*engine.View, error) {
	set, parsed, sum, err := s.loadParsed(id)
	if err != nil {
		return nil, err
	}
	return engine.Render(set, parsed, s.st, sum)
}

// Answer persists a status change for one question together with the
// current notes, then recomputes the set's progress snapshot.
func (s *Service) Answer(_ context.Context, setID, questionID string, status store.Status, notes string) (engine.Snapshot, error) {
	_, parsed, _, err := s.loadParsed(setID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	if !containsQuestion(parsed.Questions, questionID) {
		return engine.Snapshot{}, fmt.Errorf("%w: question %s", apperr.ErrNotFound, questionID)
	}
	if err := s.st.Put(setID, questionID, store.AnswerState{
		Status: status,
		Notes:  strings.TrimSpace(notes),
	}); err != nil {
		return engine.Snapshot{}, err
	}
	snap, err := engine.Progress(parsed.Questions, setID, s.st)
	if err != nil {
		return engine.Snapshot{}, err
	}
	if s.notify != nil {
		s.notify(setID, snap)
	}
	return snap, nil
}

// Note persists edited notes without altering the question's status.
// Progress is not recomputed: notes do not change classification.
func (s *Service) Note(_ context.Context, setID, questionID, notes string) (store.AnswerState, error) {
	_, parsed, _, err := s.loadParsed(setID)
	if err != nil {
		return store.AnswerState{}, err
	}
	if !containsQuestion(parsed.Questions, questionID) {
		return store.AnswerState{}, fmt.Errorf("%w: question %s", apperr.ErrNotFound, questionID)
	}
	current, err := s.st.Get(setID, questionID)
	if err != nil {
		return store.AnswerState{}, err
	}
	next := store.AnswerState{Status: current.Status, Notes: strings.TrimSpace(notes)}
	if err := s.st.Put(setID, questionID, next); err != nil {
		return store.AnswerState{}, err
	}
	return next, nil
}

// Progress recomputes the aggregate snapshot for one set.
func (s *Service) Progress(_ context.Context, setID string) (engine.Snapshot, error) {
	_, parsed, _, err := s.loadParsed(setID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return engine.Progress(parsed.Questions, setID, s.st)
}

// Export builds the downloadable document for one set, reading every
// question's state fresh from the store. Returns the document and its
// download filename.
func (s *Service) Export(_ context.Context, setID string) (*export.Document, string, error) {
	_, parsed, _, err := s.loadParsed(setID)
	if err != nil {
		return nil, "", err
	}
	doc, err := export.BuildModel(parsed.Questions, setID, s.st)
	if err != nil {
		return nil, "", err
	}
	return doc, export.Filename(setID), nil
}

func containsQuestion(questions []question.Question, id string) bool {
	for _, q := range questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
