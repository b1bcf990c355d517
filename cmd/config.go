package cmd

import (
	"fmt"

	"richclip/pkg/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage richclip configuration",
	Long:  `Inspect and initialize the richclip configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after file and environment overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Println("Current Configuration:")
		fmt.Println("======================")
		fmt.Println("Commands:")
		fmt.Printf("  linux_html:   %s\n", cfg.Commands.LinuxHTML)
		fmt.Printf("  linux_image:  %s\n", cfg.Commands.LinuxImage)
		fmt.Printf("  darwin_html:  %s\n", cfg.Commands.DarwinHTML)
		fmt.Printf("  darwin_image: %s\n", cfg.Commands.DarwinImage)
		fmt.Printf("  windows_html: %s\n", cfg.Commands.WindowsHTML)
		fmt.Println()
		fmt.Printf("Math converter: %s\n", cfg.Math.Converter)
		fmt.Printf("Math scale: %d\n", cfg.Math.Scale)
		fmt.Printf("Highlight style: %s\n", cfg.Render.HighlightStyle)
		fmt.Printf("Attachment dir: %s\n", func() string {
			if cfg.Attachments.Dir == "" {
				return "(attachments/ next to the document)"
			}
			return cfg.Attachments.Dir
		}())

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long:  `Write the built-in defaults to the configuration path so they can be edited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
