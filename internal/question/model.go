package question

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tailscale/hujson"
)

// modelSection is one node of the nested section tree, recursive through
// Subsections. The same shape is produced by the export builder, so a
// previously exported file loads back through this path.
type modelSection struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []modelQuestion `json:"questions"`
	Subsections []modelSection  `json:"subsections"`
}

type modelQuestion struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Prompt  string `json:"prompt"`
	Info    string `json:"info"`
	AllowNA bool   `json:"allow_na"`
}

var modelInfoRe = regexp.MustCompile(`(?i)^(-\s*)?info:\s*(.*)$`)

// ParseModel converts a JSON (or JWCC) model document into canonical
// questions via a pre-order walk of the section tree. A document whose
// "sections" member is missing or not an array yields an empty result
// rather than an error, so consumers degrade to "no questions".
func ParseModel(data []byte, setID string) (*ParseResult, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("question: standardize model: %w", err)
	}

	var doc struct {
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("question: decode model: %w", err)
	}

	res := &ParseResult{Descriptions: map[string]string{}}

	var sections []modelSection
	if doc.Sections == nil || json.Unmarshal(doc.Sections, &sections) != nil {
		return res, nil
	}
	if len(sections) > 0 {
		res.TopTitle = sections[0].Title
	}

	counter := 0
	var walk func(node modelSection, path []string)
	walk = func(node modelSection, path []string) {
		newPath := path
		if node.Title != "" {
			// Each call gets its own copy; the parent's path is never mutated.
			newPath = append(append([]string{}, path...), node.Title)
		}

		if desc := strings.TrimSpace(node.Description); desc != "" {
			switch depth := len(newPath); {
			case depth == 1:
				res.Descriptions[Level1Key(newPath[0])] = desc
			case depth == 2:
				res.Descriptions[Level2Key(newPath[1])] = desc
			case depth >= 3:
				// Only the first two post-root levels key the description;
				// deeper nesting collapses into level 3.
				res.Descriptions[Level3Key(newPath[1], newPath[2])] = desc
			}
		}

		level2, level3 := "", ""
		if len(newPath) >= 2 {
			level2 = newPath[1]
		}
		if len(newPath) >= 3 {
			level3 = newPath[2]
		}

		for _, mq := range node.Questions {
			content := mq.Content
			if content == "" {
				content = mq.Prompt
			}
			text, details, info := splitContent(content)
			if explicit := strings.TrimSpace(mq.Info); explicit != "" {
				// Explicit info field wins over info: lines in content.
				info = explicit
			}

			id := mq.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d", setID, counter)
				counter++
			}

			section := level3
			if section == "" {
				section = level2
			}
			if section == "" {
				section = node.Title
			}

			res.Questions = append(res.Questions, Question{
				ID:      id,
				Section: section,
				Level2:  level2,
				Level3:  level3,
				Title:   strings.TrimSpace(mq.Title),
				Text:    text,
				Details: details,
				Info:    info,
				AllowNA: mq.AllowNA,
			})
		}

		for _, sub := range node.Subsections {
			walk(sub, newPath)
		}
	}

	for _, sec := range sections {
		walk(sec, nil)
	}
	return res, nil
}

// splitContent divides a raw content field into the main prompt, detail
// lines (leading dash stripped), and newline-joined info: lines.
// Single-line content is the prompt verbatim.
func splitContent(content string) (text string, details []string, info string) {
	if content == "" {
		return "", nil, ""
	}
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) == 1 {
		return strings.TrimSpace(content), nil, ""
	}

	var infoLines []string
	haveMain := false
	for _, raw := range lines {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		if m := modelInfoRe.FindStringSubmatch(t); m != nil {
			if it := strings.TrimSpace(m[2]); it != "" {
				infoLines = append(infoLines, it)
			}
			continue
		}
		if !haveMain {
			text = t
			haveMain = true
			continue
		}
		details = append(details, strings.TrimSpace(strings.TrimPrefix(t, "-")))
	}
	return text, details, strings.Join(infoLines, "\n")
}
