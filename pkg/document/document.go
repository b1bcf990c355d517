// Package document gives position-addressed introspection over a structured
// text document. It answers the four queries the image locator needs:
// element at point, link at point, attachment resolution, and the inline
// rendered preview at point. The markdown implementation here is the
// default; the interface is small enough that other hosts can supply their
// own.
package document

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"richclip/pkg/errors"
)

// Position addresses a point in a document. Line is 1-based; Col is a
// 1-based byte column within the line.
type Position struct {
	Line int
	Col  int
}

// Kind classifies the element under a position.
type Kind int

const (
	KindText Kind = iota
	KindMath
	KindLink
)

// Element is the coarse classification of what sits at a position. For
// KindMath, Value is the formula body without delimiters; for KindLink it is
// the link target.
type Element struct {
	Kind  Kind
	Value string
}

// Link is a link under a position, split into scheme and target.
// Plain file paths have an empty scheme.
type Link struct {
	Scheme string
	Target string
}

// Context is the introspection surface the image locator runs against.
type Context interface {
	// ElementAt classifies the element under pos.
	ElementAt(pos Position) Element
	// LinkAt returns the link under pos, if any.
	LinkAt(pos Position) (Link, bool)
	// ResolveAttachment maps an attachment-scheme target to a file path.
	ResolveAttachment(target string) (string, error)
	// OverlayImageAt returns the file path shown by a rendered inline
	// preview under pos, if any.
	OverlayImageAt(pos Position) (string, bool)
	// Dir is the document's directory, the base for relative paths.
	Dir() string
}

// Document is a markdown document held in memory.
type Document struct {
	path          string
	lines         []string
	attachmentDir string
}

// Inline spans recognized at point. Display math is matched before inline
// math so that $$...$$ does not parse as two empty inline spans.
var (
	displayMathRe = regexp.MustCompile(`\$\$([^$]+)\$\$`)
	inlineMathRe  = regexp.MustCompile(`\$([^$]+)\$`)
	linkRe        = regexp.MustCompile(`!?\[[^\]]*\]\(([^)\s]+)[^)]*\)`)
	imgTagRe      = regexp.MustCompile(`<img[^>]*\ssrc="([^"]+)"`)
)

// Load reads a markdown document from disk. attachmentDir may be empty, in
// which case an "attachments" directory next to the document is assumed.
func Load(path, attachmentDir string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileError("failed to read document", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return New(string(data), abs, attachmentDir), nil
}

// New builds a document from content already in memory. path may be empty
// for unsaved buffers; relative resolution then uses the working directory.
func New(content, path, attachmentDir string) *Document {
	return &Document{
		path:          path,
		lines:         strings.Split(content, "\n"),
		attachmentDir: attachmentDir,
	}
}

func (d *Document) Dir() string {
	if d.path == "" {
		return "."
	}
	return filepath.Dir(d.path)
}

func (d *Document) line(pos Position) (string, bool) {
	if pos.Line < 1 || pos.Line > len(d.lines) {
		return "", false
	}
	return d.lines[pos.Line-1], true
}

// spanAt returns the first submatch of re whose full match covers the byte
// column.
func spanAt(re *regexp.Regexp, line string, col int) (string, bool) {
	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		// m[0],m[1] full match; m[2],m[3] first group.
		if col > m[0] && col <= m[1] {
			return line[m[2]:m[3]], true
		}
	}
	return "", false
}

func (d *Document) ElementAt(pos Position) Element {
	line, ok := d.line(pos)
	if !ok {
		return Element{Kind: KindText}
	}

	if formula, ok := spanAt(displayMathRe, line, pos.Col); ok {
		return Element{Kind: KindMath, Value: formula}
	}
	if formula, ok := spanAt(inlineMathRe, line, pos.Col); ok {
		return Element{Kind: KindMath, Value: formula}
	}
	if target, ok := spanAt(linkRe, line, pos.Col); ok {
		return Element{Kind: KindLink, Value: target}
	}
	return Element{Kind: KindText}
}

func (d *Document) LinkAt(pos Position) (Link, bool) {
	line, ok := d.line(pos)
	if !ok {
		return Link{}, false
	}

	target, ok := spanAt(linkRe, line, pos.Col)
	if !ok {
		return Link{}, false
	}

	return splitLink(target), true
}

// splitLink separates a URL-ish scheme from the target. Windows drive
// letters and bare paths stay scheme-less.
func splitLink(target string) Link {
	if i := strings.Index(target, ":"); i > 1 {
		scheme := target[:i]
		if isScheme(scheme) {
			rest := strings.TrimPrefix(target[i+1:], "//")
			return Link{Scheme: scheme, Target: rest}
		}
	}
	return Link{Target: target}
}

func isScheme(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return len(s) > 1
}

func (d *Document) ResolveAttachment(target string) (string, error) {
	dir := d.attachmentDir
	if dir == "" {
		dir = filepath.Join(d.Dir(), "attachments")
	}
	path := filepath.Join(dir, filepath.FromSlash(target))
	if _, err := os.Stat(path); err != nil {
		return "", errors.FileError("attachment not found: "+target, err)
	}
	return path, nil
}

func (d *Document) OverlayImageAt(pos Position) (string, bool) {
	line, ok := d.line(pos)
	if !ok {
		return "", false
	}
	return spanAt(imgTagRe, line, pos.Col)
}
