package cmd

import (
	"fmt"
	"path/filepath"

	"richclip/pkg/clipboard"
	"richclip/pkg/config"
	"richclip/pkg/document"
	"richclip/pkg/errors"
	"richclip/pkg/locator"
	"richclip/pkg/mathpreview"
	"richclip/pkg/progress"

	"github.com/spf13/cobra"
)

var (
	imageLine int
	imageCol  int
	imageWait bool
)

var imageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Copy the image referenced at a document position",
	Long: `Resolve the image associated with a position in the document and place
it on the clipboard. A math fragment under the cursor renders to a preview
image; otherwise a direct image link, an attachment link, or an inline
rendered preview at the position is used, in that order. Passing an image
file directly copies it without looking inside.`,
	Example: `  # Copy the image linked at line 12, column 30
  richclip image notes.md --line 12 --col 30

  # Copy an image file directly
  richclip image diagram.png`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func runImage(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	writer, err := clipboard.New(clipboard.Options{Config: cfg, Wait: imageWait})
	if err != nil {
		return err
	}

	path := args[0]

	// A bare image file skips the document lookup entirely.
	if locator.IsImagePath(path) {
		if err := writer.WriteImage(path, locator.Format(path)); err != nil {
			return err
		}
		errors.Notice("Copied image to clipboard")
		return nil
	}

	if imageLine <= 0 || imageCol <= 0 {
		return errors.ValidationError("--line and --col are required for document positions (1-based)")
	}

	doc, err := document.Load(path, cfg.Attachments.Dir)
	if err != nil {
		return err
	}

	loc := &locator.Locator{Math: mathpreview.New(cfg)}
	pos := document.Position{Line: imageLine, Col: imageCol}

	var ref locator.ImageRef
	var found bool
	err = progress.WithSpinner("Resolving image...", func() error {
		var lerr error
		ref, found, lerr = loc.Locate(doc, pos)
		return lerr
	})
	if err != nil {
		return err
	}
	if !found {
		errors.Notice(fmt.Sprintf("No image found at %d:%d", imageLine, imageCol))
		return nil
	}

	// Link-derived paths are document-relative.
	if !filepath.IsAbs(ref.Path) {
		ref.Path = filepath.Join(doc.Dir(), ref.Path)
	}

	if err := writer.WriteImage(ref.Path, ref.Format); err != nil {
		return err
	}

	errors.Notice("Copied image to clipboard")
	return nil
}

func init() {
	imageCmd.Flags().IntVar(&imageLine, "line", 0, "Cursor line in the document (1-based)")
	imageCmd.Flags().IntVar(&imageCol, "col", 0, "Cursor column in the document (1-based, bytes)")
	imageCmd.Flags().BoolVar(&imageWait, "wait", false, "Wait for the clipboard command and surface its exit status (Linux/X11)")
}
