// Package export builds the downloadable checklist document embedding
// current answers and notes alongside the original question text.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/natefinch/atomic"

	"github.com/mkarlsen/tally/internal/question"
	"github.com/mkarlsen/tally/internal/store"
)

// Document is the nested export structure. It loads back through the
// JSON-model parser path; section descriptions and per-question details
// are not reconstructed (one-way loss versus the richer input).
type Document struct {
	Sections []Section `json:"sections"`
}

// Section groups exported questions under one flat section label.
type Section struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Exported `json:"questions"`
}

// Exported is one question with its current answer embedded.
type Exported struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Prompt    string     `json:"prompt"`
	Type      string     `json:"type"`
	Responses []Response `json:"responses"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes"`
}

// Response is one choice in the fixed three-option response schema.
type Response struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func fixedResponses() []Response {
	return []Response{
		{Title: "Yes", Description: "Requirement fully satisfied.", Type: "choice"},
		{Title: "NotDone", Description: "Requirement not satisfied.", Type: "choice"},
		{Title: "InProgress", Description: "Requirement partially satisfied.", Type: "choice"},
	}
}

// BuildModel groups questions by their flat section label (first-seen
// order) and attaches each question's status and notes read fresh from the
// store, so the export reflects the latest persisted state regardless of
// when the set was last rendered.
func BuildModel(questions []question.Question, setID string, st store.Store) (*Document, error) {
	doc := &Document{Sections: []Section{}}
	index := map[string]int{}

	for _, q := range questions {
		title := q.Section
		if title == "" {
			title = "General"
		}
		i, ok := index[title]
		if !ok {
			i = len(doc.Sections)
			index[title] = i
			doc.Sections = append(doc.Sections, Section{Title: title, Questions: []Exported{}})
		}

		state, err := st.Get(setID, q.ID)
		if err != nil {
			return nil, fmt.Errorf("export: read state for %s: %w", q.ID, err)
		}

		exTitle := q.Title
		if exTitle == "" {
			exTitle = q.Text
		}

		doc.Sections[i].Questions = append(doc.Sections[i].Questions, Exported{
			ID:        q.ID,
			Title:     exTitle,
			Prompt:    q.Text,
			Type:      "mchoices",
			Responses: fixedResponses(),
			Status:    string(state.Status),
			Notes:     state.Notes,
		})
	}

	return doc, nil
}

// Filename returns the download name for a set's export.
func Filename(setID string) string {
	return setID + "_questions_with_answers.json"
}

// Marshal serializes the document pretty-printed for human diffing.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "    ")
}

// WriteFile atomically writes the document to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("export: marshal: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
