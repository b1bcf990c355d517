package clipboard

import (
	"os"
	"runtime"
	"strings"
	"testing"

	"richclip/pkg/config"
	"richclip/pkg/errors"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	return cfg
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		input    string
		format   string
		expected string
	}{
		{
			name:     "html template",
			template: "xclip -selection clipboard -t text/html -i {input}",
			input:    "/tmp/richclip-abc.html",
			expected: "xclip -selection clipboard -t text/html -i /tmp/richclip-abc.html",
		},
		{
			name:     "image template with format",
			template: "xclip -selection clipboard -t image/{format} -i {input}",
			input:    "/home/u/pic.png",
			format:   "png",
			expected: "xclip -selection clipboard -t image/png -i /home/u/pic.png",
		},
		{
			name:     "repeated placeholder",
			template: "cp {input} {input}.bak",
			input:    "a.html",
			expected: "cp a.html a.html.bak",
		},
		{
			name:     "no placeholder leaves template untouched",
			template: "pbcopy",
			input:    "ignored",
			expected: "pbcopy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderCommand(tt.template, tt.input, tt.format); got != tt.expected {
				t.Errorf("renderCommand() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewTempHTMLFile(t *testing.T) {
	first, err := newTempHTMLFile("<p>one</p>")
	if err != nil {
		t.Fatalf("newTempHTMLFile() error: %v", err)
	}
	defer os.Remove(first)
	second, err := newTempHTMLFile("<p>two</p>")
	if err != nil {
		t.Fatalf("newTempHTMLFile() error: %v", err)
	}
	defer os.Remove(second)

	if first == second {
		t.Error("two temp files share the same name")
	}
	if !strings.HasSuffix(first, ".html") {
		t.Errorf("temp file %q lacks .html suffix", first)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<p>one</p>" {
		t.Errorf("temp file content = %q", data)
	}
}

func TestNew_SelectsPlatformWriter(t *testing.T) {
	w, err := New(Options{Config: testConfig(t)})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	switch runtime.GOOS {
	case "linux":
		if _, ok := w.(*linuxWriter); !ok {
			t.Errorf("New() = %T, want *linuxWriter", w)
		}
	case "darwin":
		if _, ok := w.(*darwinWriter); !ok {
			t.Errorf("New() = %T, want *darwinWriter", w)
		}
	case "windows":
		if _, ok := w.(*windowsWriter); !ok {
			t.Errorf("New() = %T, want *windowsWriter", w)
		}
	}
}

func TestWindowsWriter_ImageUnsupported(t *testing.T) {
	w := &windowsWriter{cfg: testConfig(t)}
	err := w.WriteImage("/tmp/pic.png", "png")
	if !errors.IsExitCode(err, errors.ExitCodeUnsupported) {
		t.Errorf("WriteImage() error = %v, want Unsupported", err)
	}
}

func TestLinuxWriter_WaitSurfacesProcessError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell required")
	}
	t.Setenv("WAYLAND_DISPLAY", "")

	cfg := testConfig(t)
	cfg.Commands.LinuxHTML = "false {input}" // always exits 1
	w := &linuxWriter{cfg: cfg, wait: true}

	err := w.WriteHTML("<p>x</p>", "x")
	if !errors.IsExitCode(err, errors.ExitCodeProcess) {
		t.Errorf("WriteHTML() error = %v, want Process", err)
	}
}

func TestLinuxWriter_FireAndForgetSwallowsExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell required")
	}
	t.Setenv("WAYLAND_DISPLAY", "")

	cfg := testConfig(t)
	cfg.Commands.LinuxHTML = "false {input}"
	w := &linuxWriter{cfg: cfg, wait: false}

	if err := w.WriteHTML("<p>x</p>", "x"); err != nil {
		t.Errorf("WriteHTML() error = %v, want nil on the fire-and-forget path", err)
	}
}
