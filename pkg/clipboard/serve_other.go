//go:build !linux

package clipboard

import (
	"runtime"

	"richclip/pkg/errors"
)

// Serve only has a Wayland implementation.
func Serve(payload ServePayload) error {
	return errors.UnsupportedPlatformError("clipboard serving", runtime.GOOS)
}
