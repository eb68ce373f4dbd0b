// Package store persists per-question answer state keyed by
// (question-set id, question id).
package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkarlsen/tally/internal/apperr"
)

// Status is the user's current answer to a question.
type Status string

const (
	StatusDone          Status = "done"
	StatusInProgress    Status = "in_progress"
	StatusNotDone       Status = "not_done"
	StatusNotApplicable Status = "not_applicable"
)

// ParseStatus normalizes a status string. The spellings used by the
// original browser exports ("progress", "notdone", "notapplicable") are
// accepted as read-side aliases; they are never written back.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusDone):
		return StatusDone, nil
	case string(StatusInProgress), "inprogress", "progress":
		return StatusInProgress, nil
	case string(StatusNotDone), "notdone":
		return StatusNotDone, nil
	case string(StatusNotApplicable), "notapplicable", "na":
		return StatusNotApplicable, nil
	default:
		return "", fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, s)
	}
}

// AnswerState is one question's persisted answer.
type AnswerState struct {
	Status Status `json:"status"`
	Notes  string `json:"notes"`
}

// DefaultState is the implicit state of any question that has never been
// answered.
func DefaultState() AnswerState {
	return AnswerState{Status: StatusNotDone}
}

// Store is the persistence contract. Missing entries read as the default
// state; corrupt entries fall back to it silently.
//
// Consumers should depend on this interface rather than a concrete type so
// tests can substitute the in-memory implementation.
type Store interface {
	Get(setID, questionID string) (AnswerState, error)
	Put(setID, questionID string, state AnswerState) error
	All(setID string) (map[string]AnswerState, error)
	Close() error
}

// storedState is the on-disk value shape, including the legacy boolean
// form written by early versions of the checklist.
type storedState struct {
	Status  string `json:"status,omitempty"`
	Checked bool   `json:"checked,omitempty"`
	Notes   string `json:"notes"`
}

// decodeState interprets a raw stored value. Records carrying only
// checked:true read as done; anything unparseable reads as the default.
func decodeState(raw []byte) AnswerState {
	var s storedState
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultState()
	}
	out := AnswerState{Notes: s.Notes}
	if s.Status != "" {
		if st, err := ParseStatus(s.Status); err == nil {
			out.Status = st
			return out
		}
		return AnswerState{Status: StatusNotDone, Notes: s.Notes}
	}
	if s.Checked {
		out.Status = StatusDone
		return out
	}
	out.Status = StatusNotDone
	return out
}

func encodeState(state AnswerState) []byte {
	raw, _ := json.Marshal(storedState{Status: string(state.Status), Notes: state.Notes})
	return raw
}
