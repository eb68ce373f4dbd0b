package engine

import (
	"fmt"

	"github.com/mkarlsen/tally/internal/question"
	"github.com/mkarlsen/tally/internal/store"
)

// Snapshot is the derived progress over one rendered set. It is never
// persisted; every question lands in exactly one bucket, so the four
// counts always sum to Total.
type Snapshot struct {
	Done          int     `json:"done"`
	InProgress    int     `json:"in_progress"`
	NotDone       int     `json:"not_done"`
	NotApplicable int     `json:"not_applicable"`
	Total         int     `json:"total"`
	Percent       float64 `json:"percent"`
	Text          string  `json:"text"`
}

// Compute buckets every question by its current status. The fill percent
// counts completed questions only.
func Compute(questions []question.Question, states map[string]store.AnswerState) Snapshot {
	s := Snapshot{Total: len(questions)}
	for _, q := range questions {
		state, ok := states[q.ID]
		if !ok {
			state = store.DefaultState()
		}
		switch state.Status {
		case store.StatusDone:
			s.Done++
		case store.StatusInProgress:
			s.InProgress++
		case store.StatusNotApplicable:
			s.NotApplicable++
		default:
			s.NotDone++
		}
	}
	if s.Total > 0 {
		s.Percent = float64(s.Done) / float64(s.Total) * 100
	}
	s.Text = fmt.Sprintf("%d done | %d in progress | %d not done", s.Done, s.InProgress, s.NotDone)
	return s
}

// Progress reads the current state of every question fresh from the store
// and computes the aggregate snapshot.
func Progress(questions []question.Question, setID string, st store.Store) (Snapshot, error) {
	states, err := readStates(questions, setID, st)
	if err != nil {
		return Snapshot{}, err
	}
	return Compute(questions, states), nil
}

func readStates(questions []question.Question, setID string, st store.Store) (map[string]store.AnswerState, error) {
	states := make(map[string]store.AnswerState, len(questions))
	for _, q := range questions {
		state, err := st.Get(setID, q.ID)
		if err != nil {
			return nil, err
		}
		states[q.ID] = state
	}
	return states, nil
}
