package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mkarlsen/tally/internal/question"
	"github.com/mkarlsen/tally/internal/store"
)

func fiveQuestions() []question.Question {
	return []question.Question{
		{ID: "s-0", Section: "A", Title: "Q0", Text: "zero"},
		{ID: "s-1", Section: "A", Title: "Q1", Text: "one"},
		{ID: "s-2", Section: "B", Title: "Q2", Text: "two"},
		{ID: "s-3", Section: "B", Title: "Q3", Text: "three"},
		{ID: "s-4", Section: "B", Title: "Q4", Text: "four"},
	}
}

func TestBuildModel_StatusesInOriginalOrder(t *testing.T) {
	st := store.NewMemory()
	statuses := []store.Status{
		store.StatusDone, store.StatusDone, store.StatusInProgress,
		store.StatusNotDone, store.StatusNotDone,
	}
	qs := fiveQuestions()
	for i, s := range statuses {
		if err := st.Put("s", qs[i].ID, store.AnswerState{Status: s}); err != nil {
			t.Fatal(err)
		}
	}

	doc, err := BuildModel(qs, "s", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, sec := range doc.Sections {
		for _, q := range sec.Questions {
			got = append(got, q.Status)
		}
	}
	want := []string{"done", "done", "in_progress", "not_done", "not_done"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildModel_SectionGroupingFirstSeenOrder(t *testing.T) {
	st := store.NewMemory()
	qs := []question.Question{
		{ID: "s-0", Section: "B", Text: "b1"},
		{ID: "s-1", Section: "A", Text: "a1"},
		{ID: "s-2", Section: "B", Text: "b2"},
	}
	doc, err := BuildModel(qs, "s", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(doc.Sections))
	}
	if doc.Sections[0].Title != "B" || doc.Sections[1].Title != "A" {
		t.Errorf("section order = [%s %s], want [B A]", doc.Sections[0].Title, doc.Sections[1].Title)
	}
	if len(doc.Sections[0].Questions) != 2 {
		t.Errorf("section B has %d questions, want 2", len(doc.Sections[0].Questions))
	}
}

func TestBuildModel_GeneralFallbackAndTitleFallback(t *testing.T) {
	st := store.NewMemory()
	qs := []question.Question{{ID: "s-0", Text: "untitled question"}}
	doc, err := BuildModel(qs, "s", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Sections[0].Title != "General" {
		t.Errorf("section = %q, want General", doc.Sections[0].Title)
	}
	if got := doc.Sections[0].Questions[0].Title; got != "untitled question" {
		t.Errorf("title = %q, want the question text", got)
	}
}

func TestBuildModel_NotesAndDefaults(t *testing.T) {
	st := store.NewMemory()
	qs := fiveQuestions()
	if err := st.Put("s", "s-1", store.AnswerState{Status: store.StatusDone, Notes: "checked twice"}); err != nil {
		t.Fatal(err)
	}
	doc, err := BuildModel(qs, "s", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := doc.Sections[0].Questions
	if got[0].Status != "not_done" || got[0].Notes != "" {
		t.Errorf("unanswered question = %+v, want default state", got[0])
	}
	if got[1].Notes != "checked twice" {
		t.Errorf("notes = %q, want %q", got[1].Notes, "checked twice")
	}
	if len(got[0].Responses) != 3 {
		t.Errorf("len(responses) = %d, want 3", len(got[0].Responses))
	}
}

// An exported document loads back through the JSON-model parser with
// identical ids, titles, and prompts. Details and info are lossy.
func TestExport_RoundTripThroughModelParser(t *testing.T) {
	st := store.NewMemory()
	qs := fiveQuestions()
	doc, err := BuildModel(qs, "s", st)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	res, err := question.ParseModel(data, "s")
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(res.Questions) != len(qs) {
		t.Fatalf("len = %d, want %d", len(res.Questions), len(qs))
	}
	for i, q := range res.Questions {
		if q.ID != qs[i].ID || q.Title != qs[i].Title || q.Text != qs[i].Text {
			t.Errorf("question %d = (%q, %q, %q), want (%q, %q, %q)",
				i, q.ID, q.Title, q.Text, qs[i].ID, qs[i].Title, qs[i].Text)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("ops"); got != "ops_questions_with_answers.json" {
		t.Errorf("filename = %q", got)
	}
}

func TestDocument_WriteFile(t *testing.T) {
	doc := &Document{Sections: []Section{{Title: "A", Questions: []Exported{}}}}
	path := filepath.Join(t.TempDir(), "out.json")
	if err := doc.WriteFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("file does not end with a newline")
	}
	if !strings.Contains(string(data), `"title": "A"`) {
		t.Errorf("unexpected content: %s", data)
	}
}
