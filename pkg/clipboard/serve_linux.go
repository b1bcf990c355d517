//go:build linux

package clipboard

import (
	"richclip/pkg/clipboard/internal/wayland"
	"richclip/pkg/errors"
)

// Serve is called by the hidden __clipboard-serve command. It claims the
// Wayland clipboard and blocks, answering paste requests until another
// application takes ownership.
func Serve(payload ServePayload) error {
	formats := map[string][]byte{}

	if payload.HTML != "" {
		formats["text/html"] = []byte(payload.HTML)
	}
	if payload.Plain != "" {
		formats["text/plain;charset=utf-8"] = []byte(payload.Plain)
		formats["text/plain"] = []byte(payload.Plain)
		formats["UTF8_STRING"] = []byte(payload.Plain)
		formats["STRING"] = []byte(payload.Plain)
	}
	if len(payload.Image) > 0 && payload.ImageMIME != "" {
		formats[payload.ImageMIME] = payload.Image
	}

	if len(formats) == 0 {
		return errors.ValidationError("clipboard serve payload carries no content")
	}
	return wayland.Serve(formats)
}
