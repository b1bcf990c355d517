// Package mathpreview renders TeX math fragments to preview images. An
// external converter produces SVG, which is rasterized at a configurable
// scale and saved as PNG so that clipboards and chat clients can take it.
package mathpreview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"richclip/pkg/config"
	"richclip/pkg/errors"
	"richclip/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// defaultSVGSize stands in when the converter emits an SVG without viewBox
// dimensions.
const defaultSVGSize = 256

// maxRasterDim caps either pixel dimension of the rasterized preview. A
// runaway viewBox times the scale factor would otherwise allocate an
// arbitrarily large RGBA buffer.
const maxRasterDim = 8192

// Renderer rasterizes math previews. The zero value is not usable; build it
// with New.
type Renderer struct {
	converter string
	scale     int
}

func New(cfg *config.Config) *Renderer {
	scale := cfg.Math.Scale
	if scale <= 0 {
		scale = config.DefaultMathScale
	}
	return &Renderer{
		converter: cfg.Math.Converter,
		scale:     scale,
	}
}

// Render converts a formula to a PNG preview and returns its absolute path.
// The formula is passed to the converter as a file; the converter writes SVG
// to stdout.
func (r *Renderer) Render(formula string) (string, error) {
	svg, err := r.convert(formula)
	if err != nil {
		return "", err
	}

	img, err := rasterize(svg, r.scale)
	if err != nil {
		return "", errors.NewWithError(errors.ExitCodeGeneral, "failed to rasterize math preview", err)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("richclip-math-%s.png", uuid.NewString()))
	if err := imaging.Save(img, path); err != nil {
		return "", errors.FileError("failed to save math preview", err)
	}
	logger.Debug().Str("path", path).Int("scale", r.scale).Msg("math preview rendered")
	return path, nil
}

// convert shells out to the configured TeX-to-SVG converter.
func (r *Renderer) convert(formula string) ([]byte, error) {
	input := filepath.Join(os.TempDir(), fmt.Sprintf("richclip-math-%s.tex", uuid.NewString()))
	if err := os.WriteFile(input, []byte(formula), 0600); err != nil {
		return nil, errors.FileError("failed to write formula file", err)
	}
	defer os.Remove(input)

	cmdline := renderConverter(r.converter, input)
	logger.Debug().Str("cmd", cmdline).Msg("running math converter")

	cmd := exec.Command("/bin/sh", "-c", cmdline)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.ProcessError(cmdline, errors.NewWithError(errors.ExitCodeProcess, string(bytes.TrimSpace(stderr.Bytes())), err))
	}
	if out.Len() == 0 {
		return nil, errors.ProcessError(cmdline, errors.New(errors.ExitCodeProcess, "converter produced no SVG output"))
	}
	return out.Bytes(), nil
}

func renderConverter(template, input string) string {
	return strings.ReplaceAll(template, config.InputPlaceholder, input)
}

// rasterize draws the SVG onto a white canvas scaled by the given factor.
func rasterize(svg []byte, scale int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}

	w := int(math.Ceil(icon.ViewBox.W)) * scale
	h := int(math.Ceil(icon.ViewBox.H)) * scale
	if w <= 0 {
		w = defaultSVGSize * scale
	}
	if h <= 0 {
		h = defaultSVGSize * scale
	}

	// Clamp preserving aspect ratio.
	if w > maxRasterDim || h > maxRasterDim {
		s := math.Min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}
