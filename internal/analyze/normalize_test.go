package analyze

import (
	"strings"
	"testing"
)

func TestNormalizeStripsMarkup(t *testing.T) {
	t.Parallel()

	raw := `<div><p>The scheduling is a mess.</p><script>alert("x")</script><p>Nothing works.</p></div>`
	got := Normalize(raw)

	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Fatalf("markup survived: %q", got)
	}
	if strings.Contains(got, "alert") {
		t.Fatalf("script content survived: %q", got)
	}
	if !strings.Contains(got, "The scheduling is a mess.") {
		t.Fatalf("content lost: %q", got)
	}
	if !strings.Contains(got, "Nothing works.") {
		t.Fatalf("second paragraph lost: %q", got)
	}
}

func TestNormalizeDecodesEntities(t *testing.T) {
	t.Parallel()

	got := Normalize("clients &amp; invoices &quot;never&quot; sync")
	if got != `clients & invoices "never" sync` {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	got := Normalize("too   many\n\nspaces\there")
	if got != "too many spaces here" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNormalizeRemovesFeedBoilerplate(t *testing.T) {
	t.Parallel()

	raw := `Real content here. [link] [comments] submitted by /u/someone`
	got := Normalize(raw)

	if strings.Contains(got, "[link]") || strings.Contains(got, "[comments]") {
		t.Fatalf("link chrome survived: %q", got)
	}
	if strings.Contains(got, "submitted by") {
		t.Fatalf("attribution survived: %q", got)
	}
	if !strings.Contains(got, "Real content here.") {
		t.Fatalf("content lost: %q", got)
	}
}

func TestNormalizeAdjacentElementsStaySeparated(t *testing.T) {
	t.Parallel()

	got := Normalize("<li>first</li><li>second</li>")
	if !strings.Contains(got, "first second") {
		t.Fatalf("adjacent elements ran together: %q", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Normalize(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
