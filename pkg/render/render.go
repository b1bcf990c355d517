// Package render turns source documents into the HTML placed on the
// clipboard. Three modes exist: markdown documents render through goldmark,
// generic source buffers render through chroma as a syntax-highlighted
// standalone page, and HTML input passes through untouched.
package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"richclip/pkg/errors"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// Mode selects the renderer for a document.
type Mode string

const (
	// ModeMarkdown renders a Markdown document to HTML.
	ModeMarkdown Mode = "markdown"
	// ModeSource renders any text as a syntax-highlighted page.
	ModeSource Mode = "source"
	// ModeHTML passes already-rendered HTML through unchanged.
	ModeHTML Mode = "html"
)

// ValidModes returns the accepted --mode values.
func ValidModes() []string {
	return []string{string(ModeMarkdown), string(ModeSource), string(ModeHTML)}
}

// Options control rendering.
type Options struct {
	// HighlightStyle is the chroma style name for source mode and fenced
	// code blocks in markdown mode.
	HighlightStyle string
	// Filename hints the lexer for source mode and the mode itself when no
	// explicit mode is given.
	Filename string
}

// DetectMode infers the renderer from the file extension. Unknown
// extensions fall back to source mode, which renders anything.
func DetectMode(filename string) Mode {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown", ".mdown":
		return ModeMarkdown
	case ".html", ".htm":
		return ModeHTML
	default:
		return ModeSource
	}
}

// ToHTML renders source text in the given mode.
func ToHTML(source string, mode Mode, opts Options) (string, error) {
	switch mode {
	case ModeMarkdown:
		return markdownToHTML(source, opts)
	case ModeSource:
		return sourceToHTML(source, opts)
	case ModeHTML:
		return source, nil
	default:
		return "", errors.ValidationError(fmt.Sprintf("unsupported render mode: %s", mode))
	}
}

func markdownToHTML(source string, opts Options) (string, error) {
	style := opts.HighlightStyle
	if style == "" {
		style = "github"
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithUnsafe(), // pass embedded raw HTML through
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", errors.NewWithError(errors.ExitCodeGeneral, errors.ErrMsgRenderFailed, err)
	}
	return buf.String(), nil
}

func sourceToHTML(source string, opts Options) (string, error) {
	lexer := lexers.Match(opts.Filename)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get(opts.HighlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", errors.NewWithError(errors.ExitCodeGeneral, errors.ErrMsgRenderFailed, err)
	}

	formatter := html.New(html.Standalone(true), html.WithLineNumbers(false))
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", errors.NewWithError(errors.ExitCodeGeneral, errors.ErrMsgRenderFailed, err)
	}
	return buf.String(), nil
}
