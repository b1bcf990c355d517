package clipboard

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"

	"richclip/pkg/config"
	"richclip/pkg/errors"
	"richclip/pkg/logger"
)

// linuxWriter drives xclip on X11 and a daemonised clipboard owner on
// Wayland. The X11 path is fire-and-forget by default: the operation counts
// as complete once the process is launched, and failures in it are silent.
type linuxWriter struct {
	cfg  *config.Config
	wait bool
}

func (w *linuxWriter) WriteHTML(html, plain string) error {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return spawnClipboardServer(ServePayload{HTML: html, Plain: plain})
	}

	path, err := newTempHTMLFile(html)
	if err != nil {
		return err
	}
	cmdline := renderCommand(w.cfg.Commands.LinuxHTML, path, "")
	return w.launch(cmdline)
}

func (w *linuxWriter) WriteImage(path, format string) error {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.FileError("failed to read image file", err)
		}
		return spawnClipboardServer(ServePayload{Image: data, ImageMIME: "image/" + format})
	}

	cmdline := renderCommand(w.cfg.Commands.LinuxImage, path, format)
	return w.launch(cmdline)
}

// launch runs cmdline through the shell. Fire-and-forget detaches the child
// and never observes its exit; the wait variant blocks and reports a
// non-zero exit as a process error.
func (w *linuxWriter) launch(cmdline string) error {
	logger.Debug().Str("cmd", cmdline).Bool("wait", w.wait).Msg("launching clipboard command")

	cmd := exec.Command("/bin/sh", "-c", cmdline)
	if w.wait {
		if out, err := cmd.CombinedOutput(); err != nil {
			return errors.ProcessError(cmdline, errors.NewWithError(errors.ExitCodeProcess, string(bytes.TrimSpace(out)), err))
		}
		return nil
	}

	cmd.SysProcAttr = detachedSysProcAttr()
	if err := cmd.Start(); err != nil {
		// Launch failures are still observable even fire-and-forget.
		return errors.ProcessError(cmdline, err)
	}
	return nil // don't Wait — exit status is never observed on this path
}

// ServePayload is the JSON handed to the hidden __clipboard-serve command.
type ServePayload struct {
	HTML      string `json:"html,omitempty"`
	Plain     string `json:"plain,omitempty"`
	Image     []byte `json:"image,omitempty"`
	ImageMIME string `json:"image_mime,omitempty"`
}

// spawnClipboardServer re-execs this binary as a detached subprocess that
// owns the Wayland clipboard until another application takes it over.
func spawnClipboardServer(payload ServePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	cmd := exec.Command(os.Args[0], "__clipboard-serve")
	cmd.Stdin = bytes.NewReader(data)
	// Detach from the parent's process group so the child survives parent exit.
	cmd.SysProcAttr = detachedSysProcAttr()
	return cmd.Start() // don't Wait — parent returns immediately
}
