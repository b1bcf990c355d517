package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"richclip/pkg/errors"

	"gopkg.in/yaml.v3"
)

// DefaultMathScale is the rasterization scale used for math previews when
// the config does not set one.
const DefaultMathScale = 3

// InputPlaceholder is the token every file-taking command template must
// contain; it is replaced with the input file path at invocation time.
const InputPlaceholder = "{input}"

// FormatPlaceholder is replaced with the image format (png, jpeg, ...) in
// image command templates.
const FormatPlaceholder = "{format}"

// Config holds the complete configuration.
type Config struct {
	Commands    CommandsConfig    `yaml:"commands"`
	Math        MathConfig        `yaml:"math"`
	Render      RenderConfig      `yaml:"render"`
	Attachments AttachmentsConfig `yaml:"attachments"`
}

// CommandsConfig carries the per-platform clipboard command templates.
// The darwin_html and windows_html commands are stdin filters and take no
// placeholder; every other template must contain {input}.
type CommandsConfig struct {
	LinuxHTML   string `yaml:"linux_html"`
	LinuxImage  string `yaml:"linux_image"`
	DarwinHTML  string `yaml:"darwin_html"`
	DarwinImage string `yaml:"darwin_image"`
	WindowsHTML string `yaml:"windows_html"`
}

type MathConfig struct {
	// Converter renders a TeX fragment file to SVG on stdout.
	Converter string `yaml:"converter"`
	Scale     int    `yaml:"scale"`
}

type RenderConfig struct {
	HighlightStyle string `yaml:"highlight_style"`
}

type AttachmentsConfig struct {
	// Dir resolves attachment: scheme links. Empty means a "attachments"
	// directory next to the document.
	Dir string `yaml:"dir"`
}

func defaults() *Config {
	return &Config{
		Commands: CommandsConfig{
			LinuxHTML:   "xclip -selection clipboard -t text/html -i {input}",
			LinuxImage:  "xclip -selection clipboard -t image/{format} -i {input}",
			DarwinHTML:  "textutil -inputencoding UTF-8 -stdin -format html -convert rtf -stdout | pbcopy",
			DarwinImage: `osascript -e 'set the clipboard to POSIX file "{input}"'`,
			WindowsHTML: `powershell -NoProfile -Command "Add-Type -AssemblyName System.Windows.Forms; [System.Windows.Forms.Clipboard]::SetData('HTML Format', [Console]::In.ReadToEnd())"`,
		},
		Math: MathConfig{
			Converter: "tex2svg {input}",
			Scale:     DefaultMathScale,
		},
		Render: RenderConfig{
			HighlightStyle: "github",
		},
	}
}

// Load reads the config file, applies environment overrides and validates
// the command templates. A missing config file is not an error; defaults
// apply.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return loadFromPath(configPath)
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "richclip", "config.yaml"), nil
}

// Save saves the configuration to file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to write config file", err)
	}

	return nil
}

func loadFromPath(configPath string) (*Config, error) {
	cfg := defaults()

	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile reads and parses the config file from the given path.
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		// File doesn't exist, that's okay - defaults and env vars apply.
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}

	return nil
}

// applyEnvironmentOverrides applies environment variable overrides.
func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("RICHCLIP_MATH_CONVERTER"); v != "" {
		cfg.Math.Converter = v
	}
	if v := os.Getenv("RICHCLIP_MATH_SCALE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Math.Scale = parsed
		}
	}
	if v := os.Getenv("RICHCLIP_HIGHLIGHT_STYLE"); v != "" {
		cfg.Render.HighlightStyle = v
	}
	if v := os.Getenv("RICHCLIP_ATTACHMENT_DIR"); v != "" {
		cfg.Attachments.Dir = v
	}
}

// validateConfig ensures the file-taking command templates carry the input
// placeholder; running a template without it would silently ignore the file.
func validateConfig(cfg *Config) error {
	templates := map[string]string{
		"commands.linux_html":   cfg.Commands.LinuxHTML,
		"commands.linux_image":  cfg.Commands.LinuxImage,
		"commands.darwin_image": cfg.Commands.DarwinImage,
		"math.converter":        cfg.Math.Converter,
	}
	for name, tmpl := range templates {
		if !strings.Contains(tmpl, InputPlaceholder) {
			return errors.ConfigError(name + " template must contain the " + InputPlaceholder + " placeholder")
		}
	}
	if cfg.Math.Scale <= 0 {
		return errors.ConfigError("math.scale must be a positive integer")
	}
	return nil
}
