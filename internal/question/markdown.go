package question

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	headingRe     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	boldBulletRe  = regexp.MustCompile(`^\s*-\s+\*\*(.+?)\*\*:\s*(.*)$`)
	plainBulletRe = regexp.MustCompile(`^\s*-\s+(.*)$`)
	indentedRe    = regexp.MustCompile(`^\s{2,}\S`)
	infoLineRe    = regexp.MustCompile(`(?i)^info:\s*(.*)$`)
)

// ParseMarkdown converts the checklist Markdown dialect into canonical
// questions in a single forward pass over lines.
//
// Grammar: heading lines (1-6 '#') open a section; "- **Title**: text"
// bullets start a question; plain bullets and indented continuations attach
// to the last question as details, unless prefixed "na:" (sets the
// not-applicable flag) or "info:" (routed to the info text). Non-empty
// lines between a heading and its first question accumulate as that
// heading's description. Heading depth is not distinguished: every heading
// is one grouping level.
func ParseMarkdown(raw string, setID string) *ParseResult {
	res := &ParseResult{Descriptions: map[string]string{}}

	currentSection := ""
	lastHeading := ""
	lastIdx := -1 // index into res.Questions, -1 when no question is active
	var pendingDesc []string

	flushDescription := func() {
		if lastHeading == "" || len(pendingDesc) == 0 {
			return
		}
		var parts []string
		for _, line := range pendingDesc {
			if t := strings.TrimSpace(line); t != "" {
				parts = append(parts, t)
			}
		}
		if desc := strings.Join(parts, " "); desc != "" {
			res.Descriptions[Level2Key(lastHeading)] = desc
		}
		pendingDesc = nil
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if m := headingRe.FindStringSubmatch(trimmed); m != nil {
			// Leaving the previous heading: store its description, if any.
			flushDescription()
			heading := strings.TrimSpace(m[2])
			currentSection = heading
			lastHeading = heading
			lastIdx = -1
			continue
		}

		if m := boldBulletRe.FindStringSubmatch(line); m != nil {
			// First question under this heading freezes the description.
			flushDescription()
			res.Questions = append(res.Questions, Question{
				ID:      fmt.Sprintf("%s-%d", setID, len(res.Questions)),
				Section: currentSection,
				Level2:  currentSection,
				Title:   strings.TrimSpace(m[1]),
				Text:    strings.TrimSpace(m[2]),
			})
			lastIdx = len(res.Questions) - 1
			continue
		}

		if lastIdx >= 0 {
			if m := plainBulletRe.FindStringSubmatch(line); m != nil {
				q := &res.Questions[lastIdx]
				detail := strings.TrimSpace(m[1])
				if detail == "" {
					continue
				}
				lower := strings.ToLower(detail)
				switch {
				case strings.HasPrefix(lower, "na:"):
					q.AllowNA = true
				case strings.HasPrefix(lower, "info:"):
					appendInfo(q, strings.TrimSpace(detail[len("info:"):]))
				default:
					q.Details = append(q.Details, detail)
				}
				continue
			}

			if indentedRe.MatchString(line) {
				q := &res.Questions[lastIdx]
				if m := infoLineRe.FindStringSubmatch(trimmed); m != nil {
					appendInfo(q, strings.TrimSpace(m[1]))
				} else {
					q.Details = append(q.Details, trimmed)
				}
				continue
			}
		}

		// Between a heading and its first question, non-empty lines are
		// section description. Anything else is ignored.
		if lastHeading != "" && lastIdx < 0 && trimmed != "" {
			pendingDesc = append(pendingDesc, trimmed)
		}
	}

	flushDescription()
	return res
}

func appendInfo(q *Question, text string) {
	if text == "" {
		return
	}
	if q.Info != "" {
		q.Info += "\n" + text
	} else {
		q.Info = text
	}
}
