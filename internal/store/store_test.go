package store

import (
	"errors"
	"testing"

	"github.com/mkarlsen/tally/internal/apperr"
)

func TestParseStatus_CanonicalAndAliases(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"done", StatusDone},
		{"DONE", StatusDone},
		{"in_progress", StatusInProgress},
		{"inprogress", StatusInProgress},
		{"progress", StatusInProgress},
		{"not_done", StatusNotDone},
		{"notdone", StatusNotDone},
		{"not_applicable", StatusNotApplicable},
		{"notapplicable", StatusNotApplicable},
		{"na", StatusNotApplicable},
		{"  done  ", StatusDone},
	}
	for _, c := range cases {
		got, err := ParseStatus(c.in)
		if err != nil {
			t.Errorf("ParseStatus(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	_, err := ParseStatus("maybe")
	if !errors.Is(err, apperr.ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}
}

func TestDecodeState_LegacyChecked(t *testing.T) {
	got := decodeState([]byte(`{"checked": true, "notes": "kept"}`))
	if got.Status != StatusDone {
		t.Errorf("status = %q, want done", got.Status)
	}
	if got.Notes != "kept" {
		t.Errorf("notes = %q, want %q", got.Notes, "kept")
	}
}

func TestDecodeState_InvalidStatusKeepsNotes(t *testing.T) {
	got := decodeState([]byte(`{"status": "bogus", "notes": "still here"}`))
	if got.Status != StatusNotDone {
		t.Errorf("status = %q, want not_done", got.Status)
	}
	if got.Notes != "still here" {
		t.Errorf("notes = %q, want %q", got.Notes, "still here")
	}
}

func TestDecodeState_CorruptValue(t *testing.T) {
	got := decodeState([]byte("not json"))
	if got != DefaultState() {
		t.Errorf("state = %+v, want default", got)
	}
}

func TestDecodeState_AliasStatus(t *testing.T) {
	got := decodeState([]byte(`{"status": "progress"}`))
	if got.Status != StatusInProgress {
		t.Errorf("status = %q, want in_progress", got.Status)
	}
}

func TestMemory_DefaultOnMissing(t *testing.T) {
	m := NewMemory()
	got, err := m.Get("s", "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultState() {
		t.Errorf("state = %+v, want default", got)
	}
}

func TestMemory_SetNamespaceIsolation(t *testing.T) {
	m := NewMemory()
	if err := m.Put("a", "q", AnswerState{Status: StatusDone}); err != nil {
		t.Fatal(err)
	}
	got, err := m.Get("b", "q")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusNotDone {
		t.Errorf("set b leaked state from set a: %+v", got)
	}
	all, err := m.All("b")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("All(b) = %v, want empty", all)
	}
}
