package cmd

import (
	"fmt"
	"os"

	"richclip/pkg/completions"
	"richclip/pkg/errors"
	"richclip/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"
)

var (
	Version   string
	BuildTime string
	GitCommit string
)

var outputFormat string
var sourceURL string
var logLevel string

var rootCmd = &cobra.Command{
	Use:   "richclip",
	Short: "Rich text and image clipboard tool",
	Long: `CLI tool that places rendered documents on the system clipboard as rich
text. Markdown and source files render to HTML before the copy, so pasting
into rich-text apps (Teams, Slack, Word) keeps the formatting. Also copies
images referenced at a document position, and encodes/decodes the Windows
"HTML Format" clipboard container.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set log level: explicit flag takes precedence over env var
		level := logLevel
		if !cmd.Flags().Changed("log-level") {
			if envLevel := os.Getenv("RICHCLIP_LOG_LEVEL"); envLevel != "" {
				level = envLevel
			}
		}
		logger.SetLevel(level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		ver := Version
		if ver == "" {
			ver = "dev"
		}
		bt := BuildTime
		if bt == "" {
			bt = unknownValue
		}
		gc := GitCommit
		if gc == "" {
			gc = unknownValue
		}

		fmt.Printf("richclip version %s\n", ver)
		fmt.Printf("Built: %s\n", bt)
		fmt.Printf("Git commit: %s\n", gc)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

func init() {
	RegisterCommands(rootCmd)

	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format for decode (table, json, yaml, markdown)")
	rootCmd.PersistentFlags().StringVar(&sourceURL, "source-url", "", "Source URL recorded in the clipboard container header")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error, fatal, panic)")

	completions.RegisterCompletions(rootCmd)
}
