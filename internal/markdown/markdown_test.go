package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBasic(t *testing.T) {
	got, err := ToHTML("# Heading\n\nSome *emphasis* here.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(got, "<h1") {
		t.Errorf("expected <h1> in output, got %q", got)
	}
	if !strings.Contains(got, "<em>emphasis</em>") {
		t.Errorf("expected emphasis markup, got %q", got)
	}
}

func TestToHTMLRawHTMLPassthrough(t *testing.T) {
	got, err := ToHTML(`<div class="legacy">old content</div>`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(got, `<div class="legacy">`) {
		t.Errorf("raw HTML must pass through unchanged, got %q", got)
	}
}

func TestToPlaintext(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "tags stripped",
			html: "<h1>Title</h1><p>Body text.</p>",
			want: "Title Body text.",
		},
		{
			name: "entities unescaped",
			html: "<p>Fish &amp; Chips</p>",
			want: "Fish & Chips",
		},
		{
			name: "whitespace collapsed",
			html: "<p>a</p>\n\n<p>  b   c </p>",
			want: "a b c",
		},
		{
			name: "empty input",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToPlaintext(tt.html); got != tt.want {
				t.Errorf("ToPlaintext(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	html, plain, err := Render("Hello **world**")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "<strong>world</strong>") {
		t.Errorf("expected strong markup in html, got %q", html)
	}
	if plain != "Hello world" {
		t.Errorf("plaintext = %q, want %q", plain, "Hello world")
	}
}
