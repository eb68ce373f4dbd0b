package engine

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/mkarlsen/tally/internal/question"
)

var md = goldmark.New()

// renderBlocks renders Markdown prose (set and section descriptions, info
// text) to HTML. Intra-set "#id" and cross-set "set:<setId>#<qid>" link
// targets pass through untouched for the client's delegated anchor handler.
func renderBlocks(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	return strings.TrimSpace(buf.String())
}

// renderInline renders a single line of Markdown without the wrapping
// paragraph element, for question text and detail bullets.
func renderInline(src string) string {
	out := renderBlocks(src)
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out
}

// titleRef pairs a question title with the card id it links to.
type titleRef struct {
	title string
	id    string
}

// titleIndex collects the bold lead-in titles of all questions in render
// order. A duplicated title keeps the last question's id.
func titleIndex(questions []question.Question) []titleRef {
	seen := map[string]int{}
	var refs []titleRef
	for _, q := range questions {
		t := strings.TrimSpace(q.Title)
		if t == "" {
			continue
		}
		if i, ok := seen[t]; ok {
			refs[i].id = q.ID
			continue
		}
		seen[t] = len(refs)
		refs = append(refs, titleRef{title: t, id: q.ID})
	}
	return refs
}

// linkify rewrites exact occurrences of other questions' titles
// ("**Title**") into same-set anchor links. Self references are excluded
// so a question never links to its own card.
func linkify(text string, refs []titleRef, selfID string) string {
	if text == "" {
		return text
	}
	for _, ref := range refs {
		if ref.id == selfID {
			continue
		}
		pattern := regexp.MustCompile(`\*\*` + regexp.QuoteMeta(ref.title) + `\*\*`)
		text = pattern.ReplaceAllString(text, "[**"+ref.title+"**](#"+ref.id+")")
	}
	return text
}
