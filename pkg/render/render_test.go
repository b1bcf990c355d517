package render

import (
	"strings"
	"testing"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		filename string
		expected Mode
	}{
		{"notes.md", ModeMarkdown},
		{"README.markdown", ModeMarkdown},
		{"page.html", ModeHTML},
		{"page.HTM", ModeHTML},
		{"main.go", ModeSource},
		{"script.py", ModeSource},
		{"no-extension", ModeSource},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := DetectMode(tt.filename); got != tt.expected {
				t.Errorf("DetectMode(%q) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestToHTML_Markdown(t *testing.T) {
	out, err := ToHTML("# Title\n\nSome **bold** text.", ModeMarkdown, Options{})
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}

	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Title") {
		t.Errorf("output %q lacks the rendered heading", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("output %q lacks the rendered bold span", out)
	}
}

func TestToHTML_MarkdownTable(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	out, err := ToHTML(src, ModeMarkdown, Options{})
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("GFM table did not render: %q", out)
	}
}

func TestToHTML_MarkdownRawHTMLPassThrough(t *testing.T) {
	out, err := ToHTML("before\n\n<video src=\"a.mp4\"></video>\n", ModeMarkdown, Options{})
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if !strings.Contains(out, "<video") {
		t.Errorf("raw HTML was stripped: %q", out)
	}
}

func TestToHTML_Source(t *testing.T) {
	out, err := ToHTML("package main\n\nfunc main() {}\n", ModeSource, Options{
		Filename:       "main.go",
		HighlightStyle: "github",
	})
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}

	if !strings.Contains(out, "<html") {
		t.Errorf("source mode should produce a standalone page, got %q", out[:min(len(out), 120)])
	}
	if !strings.Contains(out, "main") {
		t.Errorf("output lacks the source text")
	}
}

func TestToHTML_SourceUnknownStyleFallsBack(t *testing.T) {
	if _, err := ToHTML("x = 1\n", ModeSource, Options{Filename: "x.py", HighlightStyle: "no-such-style"}); err != nil {
		t.Errorf("ToHTML() error: %v", err)
	}
}

func TestToHTML_HTMLPassthrough(t *testing.T) {
	in := "<p>already rendered</p>"
	out, err := ToHTML(in, ModeHTML, Options{})
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if out != in {
		t.Errorf("ToHTML() = %q, want unchanged input", out)
	}
}

func TestToHTML_UnknownMode(t *testing.T) {
	if _, err := ToHTML("x", Mode("rtf"), Options{}); err == nil {
		t.Error("ToHTML() succeeded on an unsupported mode")
	}
}
