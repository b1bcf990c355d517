// Package clipboard delivers finished HTML payloads and image files to the
// OS clipboard. One Writer implementation exists per platform, selected once
// at construction from the running OS; rich-text apps (Teams, Slack, Word)
// then render pasted content as formatted text while plain-text editors get
// the plain fallback.
package clipboard

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"richclip/pkg/config"
	"richclip/pkg/errors"

	"github.com/google/uuid"
)

// Writer places content on the OS clipboard.
type Writer interface {
	// WriteHTML puts html on the clipboard in a form rich-text apps will
	// paste as formatted text. plain is the text/plain fallback served where
	// the platform supports multiple formats at once.
	WriteHTML(html, plain string) error
	// WriteImage puts the image file at path on the clipboard. format is the
	// lowercase image format name (png, jpeg, gif, ...).
	WriteImage(path, format string) error
}

// Options configure writer construction.
type Options struct {
	Config *config.Config
	// Wait makes the Linux path block on the external command and surface
	// its exit status instead of detaching fire-and-forget.
	Wait bool
	// SourceURL is recorded in the container header on platforms that encode
	// the native HTML Format (Windows).
	SourceURL string
	// Selection narrows the selection range inside the encoded container. It
	// must occur literally in the HTML payload. Empty means the whole
	// fragment.
	Selection string
}

// New selects the Writer for the running platform. The choice happens once
// here, never per call.
func New(opts Options) (Writer, error) {
	if opts.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		opts.Config = cfg
	}

	switch runtime.GOOS {
	case "linux":
		return &linuxWriter{cfg: opts.Config, wait: opts.Wait}, nil
	case "darwin":
		return &darwinWriter{cfg: opts.Config}, nil
	case "windows":
		return &windowsWriter{cfg: opts.Config, sourceURL: opts.SourceURL, selection: opts.Selection}, nil
	default:
		return nil, errors.UnsupportedPlatformError("clipboard access", runtime.GOOS)
	}
}

// renderCommand substitutes the template placeholders literally. Templates
// carry their own quoting where paths may contain spaces.
func renderCommand(template, input, format string) string {
	cmd := strings.ReplaceAll(template, config.InputPlaceholder, input)
	cmd = strings.ReplaceAll(cmd, config.FormatPlaceholder, format)
	return cmd
}

// newTempHTMLFile writes html to a uniquely named file under the OS temp
// directory and returns its path. The file is deliberately not removed: the
// clipboard utility may re-read it while it owns the selection, so it is
// left to the OS tmp lifecycle.
func newTempHTMLFile(html string) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("richclip-%s.html", uuid.NewString()))
	if err := os.WriteFile(path, []byte(html), 0600); err != nil {
		return "", errors.FileError("failed to write clipboard temp file", err)
	}
	return path, nil
}
