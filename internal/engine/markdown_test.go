package engine

import (
	"strings"
	"testing"

	"github.com/mkarlsen/tally/internal/question"
)

func TestRenderInline_StripsWrappingParagraph(t *testing.T) {
	got := renderInline("plain *emphasis* text")
	if got != "plain <em>emphasis</em> text" {
		t.Errorf("renderInline = %q", got)
	}
}

func TestRenderInline_MultiBlockUntouched(t *testing.T) {
	got := renderInline("one\n\ntwo")
	if got == "one</p>\n<p>two" {
		t.Errorf("wrapping paragraphs stripped from multi-block output: %q", got)
	}
}

func TestRenderBlocks_PreservesAnchorTargets(t *testing.T) {
	got := renderBlocks("see [here](#s-3) and [there](set:other#o-1)")
	for _, want := range []string{`href="#s-3"`, `href="set:other#o-1"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q lacks %q", got, want)
		}
	}
}

func TestTitleIndex_DuplicateKeepsLastID(t *testing.T) {
	refs := titleIndex([]question.Question{
		{ID: "a", Title: "Same"},
		{ID: "b", Title: "Same"},
		{ID: "c", Title: "Other"},
	})
	if len(refs) != 2 {
		t.Fatalf("len(refs) = %d, want 2", len(refs))
	}
	if refs[0].title != "Same" || refs[0].id != "b" {
		t.Errorf("refs[0] = %+v, want Same/b", refs[0])
	}
}

func TestLinkify_ExactBoldMatchOnly(t *testing.T) {
	refs := []titleRef{{title: "Backups", id: "s-0"}}
	got := linkify("plain Backups and **Backups**", refs, "other")
	want := "plain Backups and [**Backups**](#s-0)"
	if got != want {
		t.Errorf("linkify = %q, want %q", got, want)
	}
}
