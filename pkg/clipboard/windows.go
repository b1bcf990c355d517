package clipboard

import (
	"bytes"
	"os/exec"

	"richclip/pkg/cfhtml"
	"richclip/pkg/config"
	"richclip/pkg/errors"
	"richclip/pkg/logger"
)

// windowsWriter encodes the native "HTML Format" container in-process and
// hands it to a PowerShell filter that performs the raw clipboard set. The
// call blocks until the helper exits. Image copy has no Windows
// implementation.
type windowsWriter struct {
	cfg       *config.Config
	sourceURL string
	selection string
}

func (w *windowsWriter) WriteHTML(html, plain string) error {
	container, err := cfhtml.EncodeFromFragment("", html, w.selection, w.sourceURL)
	if err != nil {
		return err
	}

	cmdline := w.cfg.Commands.WindowsHTML
	logger.Debug().Str("cmd", cmdline).Msg("running clipboard command")

	cmd := exec.Command("cmd", "/C", cmdline)
	cmd.Stdin = bytes.NewReader(container)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.ProcessError(cmdline, errors.NewWithError(errors.ExitCodeProcess, string(bytes.TrimSpace(out)), err))
	}
	return nil
}

func (w *windowsWriter) WriteImage(path, format string) error {
	return errors.UnsupportedPlatformError("image copy", "windows")
}
