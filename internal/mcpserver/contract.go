package mcpserver

// QuestionFormatContract describes the checklist Markdown dialect that
// question-set source files must follow.
const QuestionFormatContract = `# Tally Question File Format

Question sets are authored either in the checklist Markdown dialect or as
a nested JSON model (the same shape Tally exports).

## Markdown dialect

` + "```" + `markdown
## Section Title
Optional prose here becomes the section description.

- **Short Label**: The main question prompt?
  - A supporting detail bullet shown under the question.
  - na: allows a "Not applicable" answer (line is not displayed)
  - info: longer explanation shown on demand in the info popup
- **Another Label**: Next question?
` + "```" + `

Rules:

1. Heading lines (one to six ` + "`#`" + ` markers) open a section. All
   heading depths are one grouping level in this dialect.
2. A bullet of the form ` + "`- **Label**: text`" + ` starts a question.
3. Plain bullets after a question are its details, unless prefixed
   ` + "`na:`" + ` (enables the fourth answer option) or ` + "`info:`" + `
   (routed to the on-demand info text). Prefixes are case-insensitive.
4. Indented (two or more spaces) non-bullet lines continue the current
   question the same way.
5. Non-empty lines between a heading and its first question become that
   section's description.
6. Cross references: writing another question's exact ` + "`**Label**`" + `
   anywhere links to its card. Prose may also use
   ` + "`[label](#question-id)`" + ` and
   ` + "`[label](set:other-set#question-id)`" + ` links.

## JSON model

` + "```" + `jsonc
{
  "sections": [
    {
      "title": "Section",
      "description": "optional",
      "questions": [
        {"id": "optional", "title": "Label", "content": "Prompt?\n- detail\n- info: extra", "allow_na": true}
      ],
      "subsections": [ /* same shape, recursive */ ]
    }
  ]
}
` + "```" + `

Comments and trailing commas are tolerated (JWCC). A previously exported
` + "`<set>_questions_with_answers.json`" + ` file loads back through this
path unchanged.
`
