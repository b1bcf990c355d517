package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `# Notes

Inline math $a^2 + b^2$ sits here.
Display math $$\frac{1}{2}$$ sits here.
A picture: ![diagram](figures/diagram.png) inline.
An attachment: [scan](attachment:scan.png) inline.
A preview: <img src="/tmp/preview-1.png"> inline.
A web link: [site](https://example.com/page) inline.
`

func colOf(t *testing.T, line int, substr string) Position {
	t.Helper()
	lines := strings.Split(sample, "\n")
	idx := strings.Index(lines[line-1], substr)
	if idx < 0 {
		t.Fatalf("substring %q not on line %d", substr, line)
	}
	// Middle of the substring, 1-based.
	return Position{Line: line, Col: idx + len(substr)/2 + 1}
}

func TestElementAt(t *testing.T) {
	d := New(sample, "/home/u/notes.md", "")

	tests := []struct {
		name     string
		pos      Position
		kind     Kind
		value    string
	}{
		{"inline math", colOf(t, 3, "$a^2 + b^2$"), KindMath, "a^2 + b^2"},
		{"display math", colOf(t, 4, `$$\frac{1}{2}$$`), KindMath, `\frac{1}{2}`},
		{"image link", colOf(t, 5, "![diagram](figures/diagram.png)"), KindLink, "figures/diagram.png"},
		{"plain text", Position{Line: 1, Col: 2}, KindText, ""},
		{"line out of range", Position{Line: 99, Col: 1}, KindText, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := d.ElementAt(tt.pos)
			if el.Kind != tt.kind {
				t.Errorf("Kind = %d, want %d", el.Kind, tt.kind)
			}
			if el.Value != tt.value {
				t.Errorf("Value = %q, want %q", el.Value, tt.value)
			}
		})
	}
}

func TestLinkAt(t *testing.T) {
	d := New(sample, "/home/u/notes.md", "")

	tests := []struct {
		name   string
		pos    Position
		ok     bool
		scheme string
		target string
	}{
		{"direct image link", colOf(t, 5, "![diagram](figures/diagram.png)"), true, "", "figures/diagram.png"},
		{"attachment link", colOf(t, 6, "[scan](attachment:scan.png)"), true, "attachment", "scan.png"},
		{"https link", colOf(t, 8, "[site](https://example.com/page)"), true, "https", "example.com/page"},
		{"plain text", Position{Line: 3, Col: 2}, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, ok := d.LinkAt(tt.pos)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if link.Scheme != tt.scheme {
				t.Errorf("Scheme = %q, want %q", link.Scheme, tt.scheme)
			}
			if link.Target != tt.target {
				t.Errorf("Target = %q, want %q", link.Target, tt.target)
			}
		})
	}
}

func TestOverlayImageAt(t *testing.T) {
	d := New(sample, "/home/u/notes.md", "")

	path, ok := d.OverlayImageAt(colOf(t, 7, `<img src="/tmp/preview-1.png">`))
	if !ok {
		t.Fatal("OverlayImageAt() found nothing")
	}
	if path != "/tmp/preview-1.png" {
		t.Errorf("path = %q, want %q", path, "/tmp/preview-1.png")
	}

	if _, ok := d.OverlayImageAt(Position{Line: 3, Col: 2}); ok {
		t.Error("OverlayImageAt() matched plain text")
	}
}

func TestResolveAttachment(t *testing.T) {
	dir := t.TempDir()
	attachDir := filepath.Join(dir, "attachments")
	if err := os.MkdirAll(attachDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(attachDir, "scan.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(sample, filepath.Join(dir, "notes.md"), "")

	path, err := d.ResolveAttachment("scan.png")
	if err != nil {
		t.Fatalf("ResolveAttachment() error: %v", err)
	}
	if path != filepath.Join(attachDir, "scan.png") {
		t.Errorf("path = %q", path)
	}

	if _, err := d.ResolveAttachment("missing.png"); err == nil {
		t.Error("ResolveAttachment() succeeded for a missing file")
	}
}

func TestResolveAttachment_ExplicitDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scan.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(sample, "/elsewhere/notes.md", dir)
	path, err := d.ResolveAttachment("scan.png")
	if err != nil {
		t.Fatalf("ResolveAttachment() error: %v", err)
	}
	if path != filepath.Join(dir, "scan.png") {
		t.Errorf("path = %q", path)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if d.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", d.Dir(), dir)
	}

	if _, err := Load(filepath.Join(dir, "missing.md"), ""); err == nil {
		t.Error("Load() succeeded for a missing file")
	}
}
