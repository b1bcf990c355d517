package cmd

import (
	"os"

	"richclip/pkg/cfhtml"

	"github.com/spf13/cobra"
)

var encodeSelection string

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode an HTML fragment as a clipboard container",
	Long: `Read an HTML fragment from the given file (or stdin) and write the
Windows "HTML Format" clipboard container to stdout. The fragment is
embedded in a minimal HTML document and the header carries byte offsets
into the result.`,
	Example: `  # Encode a fragment from stdin
  echo '<p>hello</p>' | richclip encode --source-url https://example.com

  # Encode a file, marking a selection inside it
  richclip encode fragment.html --selection '<b>key</b>'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fragment, _, err := readInput(args)
		if err != nil {
			return err
		}

		container, err := cfhtml.EncodeFromFragment("", fragment, encodeSelection, sourceURL)
		if err != nil {
			return err
		}

		_, err = os.Stdout.Write(container)
		return err
	},
}

func init() {
	encodeCmd.Flags().StringVar(&encodeSelection, "selection", "", "Selection substring inside the fragment")
}
