package plaintext

import (
	"strings"
	"testing"
)

func TestFromHTMLDropsLinkTargets(t *testing.T) {
	t.Parallel()

	output, err := New().FromHTML(`<p>See <a href="https://example.com/guide">the guide</a> for details.</p>`)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if !strings.Contains(output, "See the guide for details.") {
		t.Fatalf("FromHTML() = %q, want link text kept inline", output)
	}
	if strings.Contains(output, "example.com") {
		t.Fatalf("FromHTML() = %q, want link target removed", output)
	}
}

func TestFromHTMLDropsImages(t *testing.T) {
	t.Parallel()

	output, err := New().FromHTML(`<p>Before<img src="diagram.png" alt="diagram">After</p>`)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if strings.Contains(output, "diagram") {
		t.Fatalf("FromHTML() = %q, want image reference removed", output)
	}
	if !strings.Contains(output, "Before") || !strings.Contains(output, "After") {
		t.Fatalf("FromHTML() = %q, want surrounding text kept", output)
	}
}

func TestFromHTMLDoesNotWrapLongParagraphs(t *testing.T) {
	t.Parallel()

	long := strings.TrimSpace(strings.Repeat("word ", 200))
	output, err := New().FromHTML("<p>" + long + "</p>")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if output != long {
		t.Fatalf("FromHTML() wrapped output: %q", output)
	}
}

func TestFromHTMLKeepsGlossExpansion(t *testing.T) {
	t.Parallel()

	output, err := New().FromHTML(`<html><head><title>t</title></head><body><p><span class="xref gxref" title="API--接口">API(API, 接口)</span></p></body></html>`)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if output != "API(API, 接口)" {
		t.Fatalf("FromHTML() = %q, want %q", output, "API(API, 接口)")
	}
}

func TestFromHTMLEmptyContentReturnsEmptyText(t *testing.T) {
	t.Parallel()

	output, err := New().FromHTML("<!doctype html><html><head><title>x</title></head><body></body></html>")
	if err != nil {
		t.Fatalf("FromHTML() error = %v, want nil", err)
	}
	if output != "" {
		t.Fatalf("FromHTML() output = %q, want empty", output)
	}
}

func TestFromHTMLKeepsTableCells(t *testing.T) {
	t.Parallel()

	output, err := New().FromHTML(`<table><tr><th>Term</th><th>含义</th></tr><tr><td>API</td><td>接口</td></tr></table>`)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	for _, want := range []string{"Term", "含义", "API", "接口"} {
		if !strings.Contains(output, want) {
			t.Fatalf("FromHTML() = %q, missing %q", output, want)
		}
	}
}

func TestFromHTMLLeavesMarkdownCharactersUnescaped(t *testing.T) {
	t.Parallel()

	output, err := New().FromHTML(`<p>s_c(snake_case, 蛇形) and Q([bad]*x*) C++(C++, C加加)</p><p>1. not a list</p><p>H(#tag)</p>`)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if strings.Contains(output, `\`) {
		t.Fatalf("FromHTML() = %q, want no escape backslashes", output)
	}
	for _, want := range []string{"s_c(snake_case, 蛇形)", "Q([bad]*x*)", "C++(C++, C加加)", "1. not a list", "H(#tag)"} {
		if !strings.Contains(output, want) {
			t.Fatalf("FromHTML() = %q, missing %q", output, want)
		}
	}
}
