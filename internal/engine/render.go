package engine

import (
	"strings"

	"github.com/mkarlsen/tally/internal/question"
	"github.com/mkarlsen/tally/internal/registry"
	"github.com/mkarlsen/tally/internal/store"
)

// Render builds the view for one parsed question set, reading each
// question's persisted state from the store. checksum identifies the
// source revision so clients can discard responses for a set they have
// navigated away from.
func Render(set registry.Set, parsed *question.ParseResult, st store.Store, checksum string) (*View, error) {
	states, err := readStates(parsed.Questions, set.ID, st)
	if err != nil {
		return nil, err
	}

	view := &View{
		SetID:    set.ID,
		Name:     set.Name,
		Checksum: checksum,
		TopTitle: parsed.TopTitle,
		Nodes:    []Node{},
	}
	if parsed.TopTitle != "" {
		if desc := parsed.Descriptions[question.Level1Key(parsed.TopTitle)]; desc != "" {
			view.TopDescription = renderBlocks(desc)
		}
	}
	if desc := strings.TrimSpace(set.Description); desc != "" {
		view.SetDescription = renderBlocks(desc)
	}

	refs := titleIndex(parsed.Questions)

	currentLevel2, currentLevel3 := "", ""
	for _, q := range parsed.Questions {
		if q.Level2 != "" && q.Level2 != currentLevel2 {
			currentLevel2 = q.Level2
			// A new level-2 section resets the tracked level-3, so the same
			// level-3 title under a later level-2 renders its heading again.
			currentLevel3 = ""
			if parsed.TopTitle == "" || q.Level2 != parsed.TopTitle {
				view.Nodes = append(view.Nodes, Node{Heading: &Heading{
					Level:       2,
					Title:       q.Level2,
					Description: headingDescription(parsed, question.Level2Key(q.Level2)),
				}})
			}
		}
		if q.Level3 != "" && q.Level3 != currentLevel3 {
			currentLevel3 = q.Level3
			view.Nodes = append(view.Nodes, Node{Heading: &Heading{
				Level:       3,
				Title:       q.Level3,
				Description: headingDescription(parsed, question.Level3Key(q.Level2, q.Level3)),
			}})
		}

		view.Nodes = append(view.Nodes, Node{Card: buildCard(q, states[q.ID], refs)})
	}

	view.Progress = Compute(parsed.Questions, states)
	return view, nil
}

func headingDescription(parsed *question.ParseResult, key string) string {
	if desc := parsed.Descriptions[key]; desc != "" {
		return renderBlocks(desc)
	}
	return ""
}

func buildCard(q question.Question, state store.AnswerState, refs []titleRef) *Card {
	card := &Card{
		ID:       q.ID,
		Title:    q.Title,
		TextHTML: renderInline(linkify(q.Text, refs, q.ID)),
		Notes:    state.Notes,
		Status:   state.Status,
		Class:    Classify(state.Status),
		Badge:    BadgeLabel(state.Status),
		AllowNA:  q.AllowNA,
		Choices:  Choices(q.AllowNA),
	}
	for _, d := range q.Details {
		card.DetailsHTML = append(card.DetailsHTML, renderInline(linkify(d, refs, q.ID)))
	}
	if strings.TrimSpace(q.Info) != "" {
		// Each info line becomes its own paragraph in the overlay.
		paragraphs := strings.ReplaceAll(linkify(q.Info, refs, q.ID), "\n", "\n\n")
		card.InfoHTML = renderBlocks(paragraphs)
	}
	return card
}
