package cmd

import "github.com/spf13/cobra"

func RegisterCommands(root *cobra.Command) {
	root.AddCommand(versionCmd)
	root.AddCommand(clipboardServeCmd)

	root.AddCommand(copyCmd)
	root.AddCommand(imageCmd)
	root.AddCommand(encodeCmd)
	root.AddCommand(decodeCmd)
	root.AddCommand(configCmd)
}
