package clipboard

import (
	"bytes"
	"os/exec"
	"strings"

	"richclip/pkg/config"
	"richclip/pkg/errors"
	"richclip/pkg/logger"
)

// darwinWriter pipes HTML through textutil into pbcopy and sets image
// clipboards through an osascript file reference. Both paths block until the
// command completes.
type darwinWriter struct {
	cfg *config.Config
}

func (w *darwinWriter) WriteHTML(html, plain string) error {
	// The html-to-rtf conversion runs as a stdin filter; no placeholder.
	cmdline := w.cfg.Commands.DarwinHTML
	logger.Debug().Str("cmd", cmdline).Msg("running clipboard command")

	cmd := exec.Command("/bin/sh", "-c", cmdline)
	cmd.Stdin = strings.NewReader(html)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.ProcessError(cmdline, errors.NewWithError(errors.ExitCodeProcess, string(bytes.TrimSpace(out)), err))
	}
	return nil
}

func (w *darwinWriter) WriteImage(path, format string) error {
	cmdline := renderCommand(w.cfg.Commands.DarwinImage, path, format)
	logger.Debug().Str("cmd", cmdline).Msg("running clipboard command")

	cmd := exec.Command("/bin/sh", "-c", cmdline)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.ProcessError(cmdline, errors.NewWithError(errors.ExitCodeProcess, string(bytes.TrimSpace(out)), err))
	}
	return nil
}
