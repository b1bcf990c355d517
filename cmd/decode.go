package cmd

import (
	"fmt"

	"richclip/pkg/cfhtml"
	"richclip/pkg/errors"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"
)

var decodeCopy bool

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a clipboard container into its fields",
	Long: `Parse a Windows "HTML Format" clipboard container from the given file
(or stdin) and print its fields. The default table format shows the header
metadata and the fragment; json and yaml emit the full structure; markdown
converts the fragment back to Markdown.`,
	Example: `  # Inspect a container saved from the clipboard
  richclip decode container.txt

  # Recover the fragment as Markdown
  richclip decode container.txt --format markdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(args)
	if err != nil {
		return err
	}

	container, err := cfhtml.Decode(input)
	if err != nil {
		return err
	}

	writer := NewOutputWriter(outputFormat)
	switch writer.GetFormat() {
	case FormatJSON, FormatYAML:
		if err := writer.Write(container); err != nil {
			return err
		}
	case FormatMarkdown:
		md, err := htmltomarkdown.ConvertString(container.Fragment)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeGeneral, errors.ErrMsgDecodeFailed, err)
		}
		fmt.Println(md)
	default:
		printContainerTable(container)
	}

	if decodeCopy {
		if err := CopyToClipboard(container.Fragment); err != nil {
			return errors.NewWithError(errors.ExitCodeProcess, errors.ErrMsgClipboardFailed, err)
		}
		errors.Notice("Copied fragment to clipboard")
	}

	return nil
}

func printContainerTable(c *cfhtml.Container) {
	fmt.Printf("Version:    %s\n", c.Version)
	fmt.Printf("Source URL: %s\n", orNone(c.SourceURL))
	fmt.Printf("HTML:       %d bytes\n", len(c.HTML))
	fmt.Println()
	fmt.Println("Fragment:")
	fmt.Println(c.Fragment)
	if c.Selection != c.Fragment {
		fmt.Println()
		fmt.Println("Selection:")
		fmt.Println(c.Selection)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeCopy, "copy", false, "Also copy the decoded fragment to the clipboard as plain text")
}
