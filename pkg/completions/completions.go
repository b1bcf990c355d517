package completions

import (
	"fmt"
	"strings"

	"richclip/pkg/render"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"
)

func CompleteMode(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	modes := render.ValidModes()
	results := filterPrefix(modes, toComplete)

	for i, mode := range results {
		results[i] = fmt.Sprintf("%s\t%s", mode, getModeDescription(mode))
	}

	return results, cobra.ShellCompDirectiveNoFileComp
}

func CompleteOutputFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []string{"table", "json", "yaml", "markdown"}
	results := filterPrefix(formats, toComplete)

	for i, format := range results {
		results[i] = fmt.Sprintf("%s\t%s", format, getFormatDescription(format))
	}

	return results, cobra.ShellCompDirectiveNoFileComp
}

func CompleteHighlightStyle(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(styles.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func getModeDescription(mode string) string {
	switch mode {
	case "markdown":
		return "Render Markdown to HTML"
	case "source":
		return "Syntax-highlighted source page"
	case "html":
		return "Pass HTML through unchanged"
	default:
		return ""
	}
}

func getFormatDescription(format string) string {
	switch format {
	case "table":
		return "Human-readable field table"
	case "json":
		return "JSON object"
	case "yaml":
		return "YAML document"
	case "markdown":
		return "Fragment converted to Markdown"
	default:
		return ""
	}
}

func RegisterCompletions(rootCmd *cobra.Command) {
	rootCmd.RegisterFlagCompletionFunc("format", CompleteOutputFormat)

	copyCmd, _, _ := rootCmd.Find([]string{"copy"})
	if copyCmd != nil {
		copyCmd.RegisterFlagCompletionFunc("mode", CompleteMode)
		copyCmd.RegisterFlagCompletionFunc("style", CompleteHighlightStyle)
	}
}
