package question

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMarkdown_InfoAnnotation(t *testing.T) {
	raw := "## Sec\n- **T1**: Question one\n  - info: why it matters\n"
	res := ParseMarkdown(raw, "ops")
	if len(res.Questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(res.Questions))
	}
	q := res.Questions[0]
	if q.Title != "T1" {
		t.Errorf("title = %q, want %q", q.Title, "T1")
	}
	if q.Text != "Question one" {
		t.Errorf("text = %q, want %q", q.Text, "Question one")
	}
	if q.Info != "why it matters" {
		t.Errorf("info = %q, want %q", q.Info, "why it matters")
	}
	if len(q.Details) != 0 {
		t.Errorf("details = %v, want empty", q.Details)
	}
	if got := q.SectionPath(); len(got) != 1 || got[0] != "Sec" {
		t.Errorf("sectionPath = %v, want [Sec]", got)
	}
	if q.ID != "ops-0" {
		t.Errorf("id = %q, want %q", q.ID, "ops-0")
	}
}

func TestParseMarkdown_NotApplicableFlag(t *testing.T) {
	res := ParseMarkdown("- **T1**: Q\n- na: allow\n", "s")
	if len(res.Questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(res.Questions))
	}
	q := res.Questions[0]
	if !q.AllowNA {
		t.Error("AllowNA = false, want true")
	}
	if len(q.Details) != 0 {
		t.Errorf("details = %v, want empty", q.Details)
	}
	if q.Info != "" {
		t.Errorf("info = %q, want empty", q.Info)
	}
}

// Every na:/info: prefixed line routes to its flag or the info text, every
// other attached line lands in details, and no line ends up in both.
func TestParseMarkdown_DetailPartition(t *testing.T) {
	raw := "# H\n" +
		"- **T**: main\n" +
		"- plain detail\n" +
		"- Info: overlay text\n" +
		"- NA: optional\n" +
		"  indented continuation\n" +
		"  info: second overlay line\n"
	res := ParseMarkdown(raw, "s")
	if len(res.Questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(res.Questions))
	}
	q := res.Questions[0]
	wantDetails := []string{"plain detail", "indented continuation"}
	if diff := cmp.Diff(wantDetails, q.Details); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
	if q.Info != "overlay text\nsecond overlay line" {
		t.Errorf("info = %q", q.Info)
	}
	if !q.AllowNA {
		t.Error("AllowNA = false, want true")
	}
}

func TestParseMarkdown_SectionDescription(t *testing.T) {
	raw := "## Sec\nIntro line one.\nMore intro.\n- **T**: Q\nAfter the question.\n"
	res := ParseMarkdown(raw, "s")
	want := "Intro line one. More intro."
	if got := res.Descriptions[Level2Key("Sec")]; got != want {
		t.Errorf("description = %q, want %q", got, want)
	}
}

func TestParseMarkdown_DescriptionFlushedAtEndOfInput(t *testing.T) {
	res := ParseMarkdown("## Last\nTrailing description only.", "s")
	if got := res.Descriptions[Level2Key("Last")]; got != "Trailing description only." {
		t.Errorf("description = %q", got)
	}
	if len(res.Questions) != 0 {
		t.Errorf("len(questions) = %d, want 0", len(res.Questions))
	}
}

func TestParseMarkdown_SequentialIDsAcrossSections(t *testing.T) {
	raw := "## A\n- **Q1**: one\n## B\n- **Q2**: two\n- **Q3**: three\n"
	res := ParseMarkdown(raw, "set")
	want := []Question{
		{ID: "set-0", Section: "A", Level2: "A", Title: "Q1", Text: "one"},
		{ID: "set-1", Section: "B", Level2: "B", Title: "Q2", Text: "two"},
		{ID: "set-2", Section: "B", Level2: "B", Title: "Q3", Text: "three"},
	}
	if diff := cmp.Diff(want, res.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarkdown_NoTopTitle(t *testing.T) {
	res := ParseMarkdown("# Heading\n- **T**: Q\n", "s")
	if res.TopTitle != "" {
		t.Errorf("topTitle = %q, want empty", res.TopTitle)
	}
}

func TestParseMarkdown_AttachmentsWithoutQuestionIgnored(t *testing.T) {
	// Plain bullets and indented lines before any question, with no heading
	// either, attach to nothing and are dropped.
	res := ParseMarkdown("- stray bullet\n  stray indent\n", "s")
	if len(res.Questions) != 0 {
		t.Errorf("len(questions) = %d, want 0", len(res.Questions))
	}
	if len(res.Descriptions) != 0 {
		t.Errorf("descriptions = %v, want empty", res.Descriptions)
	}
}

func TestParseMarkdown_HeadingDepthNotDistinguished(t *testing.T) {
	raw := "### Deep\n- **T**: Q\n"
	res := ParseMarkdown(raw, "s")
	if len(res.Questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(res.Questions))
	}
	if res.Questions[0].Level2 != "Deep" || res.Questions[0].Level3 != "" {
		t.Errorf("levels = (%q, %q), want (Deep, )", res.Questions[0].Level2, res.Questions[0].Level3)
	}
}

func TestParseMarkdown_CRLFInput(t *testing.T) {
	res := ParseMarkdown("## S\r\n- **T**: Q\r\n- d\r\n", "s")
	if len(res.Questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(res.Questions))
	}
	if len(res.Questions[0].Details) != 1 || res.Questions[0].Details[0] != "d" {
		t.Errorf("details = %v, want [d]", res.Questions[0].Details)
	}
}
