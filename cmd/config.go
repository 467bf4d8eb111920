package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jed/internal/ui"
	"github.com/oakwood-commons/jed/pkg/settings"
)

// FileConfig is the optional YAML configuration file. All fields are
// pointers so absent keys are distinguishable from zero values and never
// override an explicit flag.
type FileConfig struct {
	Indent   *int         `yaml:"indent,omitempty"`
	NoColor  *bool        `yaml:"no_color,omitempty"`
	LogLevel *int         `yaml:"log_level,omitempty"`
	LogFile  *string      `yaml:"log_file,omitempty"`
	Theme    *ThemeConfig `yaml:"theme,omitempty"`
}

// ThemeConfig overrides individual palette entries. Values are lipgloss
// color tokens (ANSI numbers or hex strings).
type ThemeConfig struct {
	KeyColor      string `yaml:"key_color,omitempty"`
	ValueColor    string `yaml:"value_color,omitempty"`
	HeaderFG      string `yaml:"header_fg,omitempty"`
	HeaderBG      string `yaml:"header_bg,omitempty"`
	SelectedFG    string `yaml:"selected_fg,omitempty"`
	SelectedBG    string `yaml:"selected_bg,omitempty"`
	StatusError   string `yaml:"status_error,omitempty"`
	StatusSuccess string `yaml:"status_success,omitempty"`
	FooterFG      string `yaml:"footer_fg,omitempty"`
	FooterBG      string `yaml:"footer_bg,omitempty"`
}

// resolveConfigPath returns the explicit path if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/jed/config.yaml) or ~/.config/jed/config.yaml if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

func loadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyThemeConfig merges configured colors over the default palette.
func applyThemeConfig(cfg *ThemeConfig) {
	if cfg == nil {
		return
	}
	th := ui.DefaultTheme()
	if cfg.KeyColor != "" {
		th.KeyColor = lipgloss.Color(cfg.KeyColor)
	}
	if cfg.ValueColor != "" {
		th.ValueColor = lipgloss.Color(cfg.ValueColor)
	}
	if cfg.HeaderFG != "" {
		th.HeaderFG = lipgloss.Color(cfg.HeaderFG)
	}
	if cfg.HeaderBG != "" {
		th.HeaderBG = lipgloss.Color(cfg.HeaderBG)
	}
	if cfg.SelectedFG != "" {
		th.SelectedFG = lipgloss.Color(cfg.SelectedFG)
	}
	if cfg.SelectedBG != "" {
		th.SelectedBG = lipgloss.Color(cfg.SelectedBG)
	}
	if cfg.StatusError != "" {
		th.StatusError = lipgloss.Color(cfg.StatusError)
	}
	if cfg.StatusSuccess != "" {
		th.StatusSuccess = lipgloss.Color(cfg.StatusSuccess)
	}
	if cfg.FooterFG != "" {
		th.FooterFG = lipgloss.Color(cfg.FooterFG)
	}
	if cfg.FooterBG != "" {
		th.FooterBG = lipgloss.Color(cfg.FooterBG)
	}
	ui.SetTheme(th)
}
