// Package question defines the canonical checklist question model and the
// parsers that produce it from Markdown or JSON model sources.
package question

import "fmt"

// Question is the normalized unit produced by either parser path and
// consumed uniformly by rendering and export. Parsers own construction;
// consumers never mutate fields.
type Question struct {
	ID      string   `json:"id"`
	Section string   `json:"section"` // flat label: level-3, else level-2, else owning node title
	Level2  string   `json:"level2,omitempty"`
	Level3  string   `json:"level3,omitempty"`
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text"`
	Details []string `json:"details,omitempty"`
	Info    string   `json:"info,omitempty"`
	AllowNA bool     `json:"allow_na,omitempty"`
}

// SectionPath returns the ordered non-empty heading titles the question is
// nested under, excluding the set-level top title.
func (q Question) SectionPath() []string {
	var path []string
	if q.Level2 != "" {
		path = append(path, q.Level2)
	}
	if q.Level3 != "" {
		path = append(path, q.Level3)
	}
	return path
}

// ParseResult holds the output of parsing one question-set source.
type ParseResult struct {
	Questions    []Question
	TopTitle     string
	Descriptions map[string]string
}

// Description lookup keys, composed of hierarchy depth and title path.

// Level1Key keys the description of a top-level (document title) section.
func Level1Key(title string) string { return "level1:" + title }

// Level2Key keys the description of a level-2 heading.
func Level2Key(title string) string { return "level2:" + title }

// Level3Key keys the description of a level-3 heading under its level-2
// parent. Deeper nesting collapses into this level.
func Level3Key(parent, child string) string {
	return fmt.Sprintf("level3:%s>%s", parent, child)
}
