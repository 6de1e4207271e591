package outpath

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestRelativeStripsDocumentsAndTopics(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"director/documents/topics/intro.html":      "intro.txt",
		"director/documents/a/b.html":               "a/b.txt",
		"director/documents/a/topics/b/c.html":      "a/b/c.txt",
		"/abs/root/documents/guide/topics/x.y.html": "guide/x.y.txt",
		"director//documents/./a/../b.html":         "b.txt",
	}

	for input, want := range cases {
		got, err := Relative(input)
		if err != nil {
			t.Fatalf("Relative(%q) error = %v", input, err)
		}
		if got != filepath.FromSlash(want) {
			t.Fatalf("Relative(%q) = %q, want %q", input, got, filepath.FromSlash(want))
		}
	}
}

func TestRelativeRemovesOnlyFirstTopics(t *testing.T) {
	t.Parallel()

	got, err := Relative("in/documents/topics/topics/page.html")
	if err != nil {
		t.Fatalf("Relative() error = %v", err)
	}
	if want := filepath.FromSlash("topics/page.txt"); got != want {
		t.Fatalf("Relative() = %q, want %q", got, want)
	}
}

func TestRelativeTopicsBeforeDocumentsIsConsumedFirst(t *testing.T) {
	t.Parallel()

	got, err := Relative("topics/documents/topics/page.html")
	if err != nil {
		t.Fatalf("Relative() error = %v", err)
	}
	if want := filepath.FromSlash("topics/page.txt"); got != want {
		t.Fatalf("Relative() = %q, want %q", got, want)
	}
}

func TestRelativeWithoutDocumentsFails(t *testing.T) {
	t.Parallel()

	_, err := Relative("director/topics/intro.html")
	if !errors.Is(err, ErrNoDocumentsSegment) {
		t.Fatalf("Relative() error = %v, want ErrNoDocumentsSegment", err)
	}
}

func TestMapRootsUnderOutput(t *testing.T) {
	t.Parallel()

	got, err := Map("output/director", "director/documents/topics/a/b.html")
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if want := filepath.Join("output", "director", "a", "b.txt"); got != want {
		t.Fatalf("Map() = %q, want %q", got, want)
	}
}

func TestWithoutFirstDoesNotAliasReceiver(t *testing.T) {
	t.Parallel()

	segs := Segments{"a", "topics", "b"}
	out := segs.WithoutFirst("topics")
	out[0] = "changed"

	if segs[0] != "a" || segs[1] != "topics" {
		t.Fatalf("receiver modified: %v", segs)
	}
	if len(segs.WithoutFirst("missing")) != 3 {
		t.Fatalf("WithoutFirst(missing) changed length")
	}
}
