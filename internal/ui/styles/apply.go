package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid a circular import.
type ThemeConfig struct {
	Highlight string
	Subtle    string
	Error     string
	Success   string
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ApplyTheme replaces the color variables from the config and rebuilds all
// Style objects. Empty fields keep their current color.
func ApplyTheme(cfg ThemeConfig) error {
	assign := func(name, hex string, dst *lipgloss.AdaptiveColor) error {
		if hex == "" {
			return nil
		}
		if !hexColorRe.MatchString(hex) {
			return fmt.Errorf("invalid hex color for %s: %s", name, hex)
		}
		*dst = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		return nil
	}

	if err := assign("highlight", cfg.Highlight, &HighlightColor); err != nil {
		return err
	}
	if err := assign("subtle", cfg.Subtle, &SubtleColor); err != nil {
		return err
	}
	if err := assign("error", cfg.Error, &ErrorColor); err != nil {
		return err
	}
	if err := assign("success", cfg.Success, &SuccessColor); err != nil {
		return err
	}

	rebuild()
	return nil
}
