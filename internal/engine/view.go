// Package engine builds the checklist view model: section headings and
// question cards in document order, each card carrying its persisted
// answer state, plus the aggregate progress snapshot.
package engine

import "github.com/mkarlsen/tally/internal/store"

// View is the deterministic render of one question set. Rendering the same
// set twice against unchanged persisted state produces an identical View.
type View struct {
	SetID          string   `json:"set_id"`
	Name           string   `json:"name"`
	Checksum       string   `json:"checksum"`
	TopTitle       string   `json:"top_title,omitempty"`
	TopDescription string   `json:"top_description,omitempty"` // HTML
	SetDescription string   `json:"set_description,omitempty"` // HTML
	Nodes          []Node   `json:"nodes"`
	Progress       Snapshot `json:"progress"`
}

// Node is one entry in the rendered sequence: a heading boundary or a
// question card, never both.
type Node struct {
	Heading *Heading `json:"heading,omitempty"`
	Card    *Card    `json:"card,omitempty"`
}

// Heading marks a section boundary at level 2 or 3.
type Heading struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"` // HTML
}

// Card is one rendered question with its current answer state. InfoHTML is
// shown on demand by the client overlay; details are always visible.
type Card struct {
	ID          string         `json:"id"`
	Title       string         `json:"title,omitempty"`
	TextHTML    string         `json:"text_html"`
	DetailsHTML []string       `json:"details_html,omitempty"`
	InfoHTML    string         `json:"info_html,omitempty"`
	Notes       string         `json:"notes"`
	Status      store.Status   `json:"status"`
	Class       string         `json:"class"`
	Badge       string         `json:"badge"`
	AllowNA     bool           `json:"allow_na,omitempty"`
	Choices     []store.Status `json:"choices"`
}

// Classify maps a status onto the card's visual classification.
func Classify(s store.Status) string {
	switch s {
	case store.StatusDone:
		return "answered"
	case store.StatusInProgress:
		return "inprogress"
	case store.StatusNotApplicable:
		return "notapplicable"
	default:
		return "notdone"
	}
}

// BadgeLabel maps a status onto the badge text shown on the card.
func BadgeLabel(s store.Status) string {
	switch s {
	case store.StatusDone:
		return "Done"
	case store.StatusInProgress:
		return "In progress"
	case store.StatusNotApplicable:
		return "Not applicable"
	default:
		return "Not done"
	}
}

// Choices returns the selectable statuses for a question: three, or four
// when the not-applicable option is allowed.
func Choices(allowNA bool) []store.Status {
	out := []store.Status{store.StatusDone, store.StatusInProgress, store.StatusNotDone}
	if allowNA {
		out = append(out, store.StatusNotApplicable)
	}
	return out
}
