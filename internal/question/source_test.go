package question

import (
	"errors"
	"testing"

	"github.com/mkarlsen/tally/internal/apperr"
)

func TestParseFile_Dispatch(t *testing.T) {
	res, err := ParseFile("ops.md", []byte("- **T**: q\n"), "s")
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	if len(res.Questions) != 1 {
		t.Errorf("markdown questions = %d, want 1", len(res.Questions))
	}

	res, err = ParseFile("sec.JSON", []byte(`{"sections": [{"title": "A", "questions": [{"content": "q"}]}]}`), "s")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(res.Questions) != 1 {
		t.Errorf("json questions = %d, want 1", len(res.Questions))
	}
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	_, err := ParseFile("notes.txt", nil, "s")
	if !errors.Is(err, apperr.ErrUnsupportedSource) {
		t.Errorf("error = %v, want ErrUnsupportedSource", err)
	}
}
