package mathpreview

import (
	"os"
	"runtime"
	"strings"
	"testing"

	"richclip/pkg/config"
	"richclip/pkg/errors"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 4">
<rect x="0" y="0" width="10" height="4" fill="#000000"/>
</svg>`

func TestRasterize_ScalesViewBox(t *testing.T) {
	img, err := rasterize([]byte(sampleSVG), 3)
	if err != nil {
		t.Fatalf("rasterize() error: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 12 {
		t.Errorf("bounds = %dx%d, want 30x12 (viewBox times scale)", bounds.Dx(), bounds.Dy())
	}
}

func TestRasterize_ClampsHugeDimensions(t *testing.T) {
	huge := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100000 100000"></svg>`
	img, err := rasterize([]byte(huge), 3)
	if err != nil {
		t.Fatalf("rasterize() error: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxRasterDim || bounds.Dy() > maxRasterDim {
		t.Errorf("bounds = %dx%d exceed the raster cap", bounds.Dx(), bounds.Dy())
	}
}

func TestRasterize_InvalidSVG(t *testing.T) {
	if _, err := rasterize([]byte("not svg at all <<<"), 3); err == nil {
		t.Error("rasterize() accepted invalid SVG")
	}
}

func TestRasterize_WhiteBackground(t *testing.T) {
	empty := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4 4"></svg>`
	img, err := rasterize([]byte(empty), 1)
	if err != nil {
		t.Fatalf("rasterize() error: %v", err)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("background = %v,%v,%v, want white", r, g, b)
	}
}

func TestRender_WithCatConverter(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell required")
	}

	cfg := &config.Config{
		Math: config.MathConfig{
			// The "formula" below is already SVG, so cat acts as the
			// identity converter.
			Converter: "cat {input}",
			Scale:     3,
		},
	}

	r := New(cfg)
	path, err := r.Render(sampleSVG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	defer os.Remove(path)

	if !strings.HasSuffix(path, ".png") {
		t.Errorf("preview path %q is not a PNG", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat preview: %v", err)
	}
	if info.Size() == 0 {
		t.Error("preview file is empty")
	}
}

func TestRender_ConverterFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell required")
	}

	cfg := &config.Config{
		Math: config.MathConfig{
			Converter: "false {input}",
			Scale:     3,
		},
	}

	_, err := New(cfg).Render("x")
	if !errors.IsExitCode(err, errors.ExitCodeProcess) {
		t.Errorf("Render() error = %v, want Process", err)
	}
}

func TestRender_EmptyConverterOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell required")
	}

	cfg := &config.Config{
		Math: config.MathConfig{
			Converter: "true {input}",
			Scale:     3,
		},
	}

	_, err := New(cfg).Render("x")
	if !errors.IsExitCode(err, errors.ExitCodeProcess) {
		t.Errorf("Render() error = %v, want Process", err)
	}
}
