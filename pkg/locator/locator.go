// Package locator resolves the image associated with a document position.
// Strategies run in a fixed priority order and the first hit wins: a math
// fragment rendered to a preview, a direct image link, an attachment link,
// then a rendered inline preview. Exhausting the cascade is not an error.
package locator

import (
	"os"
	"path/filepath"
	"strings"

	"richclip/pkg/document"
	"richclip/pkg/logger"

	"github.com/h2non/filetype"
)

// ImageRef is a resolved image: a path (relative to the document directory
// when derived from a link, absolute when derived from a rendered preview)
// and its lowercase format name.
type ImageRef struct {
	Path   string
	Format string
}

// MathRenderer renders a formula to a preview image and returns the
// absolute path of the rendered file.
type MathRenderer interface {
	Render(formula string) (string, error)
}

// Locator runs the strategy cascade. Math is optional; without a renderer
// the math strategy is skipped.
type Locator struct {
	Math MathRenderer
}

type strategy struct {
	name    string
	resolve func(l *Locator, ctx document.Context, pos document.Position) (ImageRef, bool, error)
}

// The cascade. Order is the contract: earlier strategies shadow later ones.
var strategies = []strategy{
	{"math-preview", (*Locator).fromMath},
	{"direct-link", (*Locator).fromDirectLink},
	{"attachment-link", (*Locator).fromAttachment},
	{"overlay-preview", (*Locator).fromOverlay},
}

// Locate tries each strategy at pos. ok is false when no strategy matched;
// that outcome is a user notice, not a failure.
func (l *Locator) Locate(ctx document.Context, pos document.Position) (ImageRef, bool, error) {
	for _, s := range strategies {
		ref, ok, err := s.resolve(l, ctx, pos)
		if err != nil {
			return ImageRef{}, false, err
		}
		if ok {
			logger.Debug().Str("strategy", s.name).Str("path", ref.Path).Msg("image resolved")
			return ref, true, nil
		}
	}
	return ImageRef{}, false, nil
}

func (l *Locator) fromMath(ctx document.Context, pos document.Position) (ImageRef, bool, error) {
	if l.Math == nil {
		return ImageRef{}, false, nil
	}
	el := ctx.ElementAt(pos)
	if el.Kind != document.KindMath {
		return ImageRef{}, false, nil
	}

	path, err := l.Math.Render(el.Value)
	if err != nil {
		return ImageRef{}, false, err
	}
	return ImageRef{Path: path, Format: Format(path)}, true, nil
}

func (l *Locator) fromDirectLink(ctx document.Context, pos document.Position) (ImageRef, bool, error) {
	link, ok := ctx.LinkAt(pos)
	if !ok || (link.Scheme != "" && link.Scheme != "file") {
		return ImageRef{}, false, nil
	}
	if !IsImagePath(link.Target) {
		return ImageRef{}, false, nil
	}
	// Link-derived paths stay relative to the document directory.
	return ImageRef{Path: link.Target, Format: formatOfIn(ctx.Dir(), link.Target)}, true, nil
}

func (l *Locator) fromAttachment(ctx document.Context, pos document.Position) (ImageRef, bool, error) {
	link, ok := ctx.LinkAt(pos)
	if !ok || link.Scheme != "attachment" {
		return ImageRef{}, false, nil
	}

	path, err := ctx.ResolveAttachment(link.Target)
	if err != nil {
		// An unresolvable attachment just falls through the cascade.
		logger.Debug().Err(err).Str("target", link.Target).Msg("attachment did not resolve")
		return ImageRef{}, false, nil
	}
	if !IsImagePath(path) {
		return ImageRef{}, false, nil
	}
	return ImageRef{Path: path, Format: formatOfIn(ctx.Dir(), path)}, true, nil
}

func (l *Locator) fromOverlay(ctx document.Context, pos document.Position) (ImageRef, bool, error) {
	path, ok := ctx.OverlayImageAt(pos)
	if !ok || !IsImagePath(path) {
		return ImageRef{}, false, nil
	}
	return ImageRef{Path: path, Format: formatOfIn(ctx.Dir(), path)}, true, nil
}

// imageExts maps recognized image file extensions to the format name used
// in clipboard MIME types.
var imageExts = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".webp": "webp",
	".tif":  "tiff",
	".tiff": "tiff",
	".svg":  "svg+xml",
}

// IsImagePath reports whether the path has a recognized image extension.
func IsImagePath(path string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Format infers the image format, preferring a content sniff of the file
// header over the extension when the file is readable.
func Format(path string) string {
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		head := make([]byte, 261)
		n, _ := f.Read(head)
		if kind, err := filetype.Match(head[:n]); err == nil && kind != filetype.Unknown && strings.HasPrefix(kind.MIME.Type, "image") {
			return kind.MIME.Subtype
		}
	}
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// formatOfIn resolves path against dir before sniffing, for link-derived
// relative paths.
func formatOfIn(dir, path string) string {
	if filepath.IsAbs(path) {
		return Format(path)
	}
	return Format(filepath.Join(dir, path))
}
