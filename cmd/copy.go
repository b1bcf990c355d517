package cmd

import (
	"richclip/pkg/clipboard"
	"richclip/pkg/config"
	"richclip/pkg/errors"
	"richclip/pkg/logger"
	"richclip/pkg/render"

	"github.com/spf13/cobra"
)

var (
	copyMode      string
	copyStyle     string
	copySelection string
	copyWait      bool
)

var copyCmd = &cobra.Command{
	Use:   "copy [file]",
	Short: "Render a document and copy it to the clipboard as rich text",
	Long: `Render the given file (or stdin) to HTML and place it on the clipboard
together with a plain-text fallback. Markdown files render through the
Markdown pipeline, HTML files pass through unchanged, and everything else
becomes a syntax-highlighted page. Rich-text apps paste the formatted
version; plain editors paste the original text.`,
	Example: `  # Copy a rendered markdown document
  richclip copy notes.md

  # Copy a source file as a highlighted page
  richclip copy main.go --style monokai

  # Render stdin as markdown
  git log -5 --oneline | richclip copy --mode markdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	source, filename, err := readInput(args)
	if err != nil {
		return err
	}

	mode := render.Mode(copyMode)
	if copyMode == "" {
		mode = render.DetectMode(filename)
	}

	style := copyStyle
	if style == "" {
		style = cfg.Render.HighlightStyle
	}

	html, err := render.ToHTML(source, mode, render.Options{
		HighlightStyle: style,
		Filename:       filename,
	})
	if err != nil {
		return err
	}
	logger.Debug().Str("mode", string(mode)).Int("html_bytes", len(html)).Msg("document rendered")

	writer, err := clipboard.New(clipboard.Options{
		Config:    cfg,
		Wait:      copyWait,
		SourceURL: sourceURL,
		Selection: copySelection,
	})
	if err != nil {
		return err
	}

	if err := writer.WriteHTML(html, source); err != nil {
		return err
	}

	errors.Notice("Copied rich text to clipboard")
	return nil
}

func init() {
	copyCmd.Flags().StringVar(&copyMode, "mode", "", "Render mode (markdown, source, html); detected from the extension when empty")
	copyCmd.Flags().StringVar(&copyStyle, "style", "", "Syntax highlighting style (chroma style name)")
	copyCmd.Flags().StringVar(&copySelection, "selection", "", "Selection substring recorded in the container (must occur in the rendered HTML)")
	copyCmd.Flags().BoolVar(&copyWait, "wait", false, "Wait for the clipboard command and surface its exit status (Linux/X11)")
}
