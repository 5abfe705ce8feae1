// Package styles holds the color themes and shared lipgloss styles for
// the TUI.
package styles

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects the registry and current-theme state.
var themeMu sync.RWMutex

// ColorPalette holds all theme colors.
type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`

	Success string `json:"success"`
	Warning string `json:"warning"`
	Error   string `json:"error"`

	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextMuted     string `json:"textMuted"`

	BgPrimary   string `json:"bgPrimary"`
	BgSecondary string `json:"bgSecondary"`

	BorderNormal string `json:"borderNormal"`
	BorderActive string `json:"borderActive"`

	// MarkdownTheme names the glamour style used for assistant bodies.
	MarkdownTheme string `json:"markdownTheme"`
}

// Theme represents a complete theme configuration.
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary:       "#7C3AED",
			Secondary:     "#3B82F6",
			Accent:        "#F59E0B",
			Success:       "#10B981",
			Warning:       "#F59E0B",
			Error:         "#EF4444",
			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
			TextMuted:     "#6B7280",
			BgPrimary:     "#111827",
			BgSecondary:   "#1F2937",
			BorderNormal:  "#374151",
			BorderActive:  "#7C3AED",
			MarkdownTheme: "dark",
		},
	}

	DraculaTheme = Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: ColorPalette{
			Primary:       "#BD93F9",
			Secondary:     "#8BE9FD",
			Accent:        "#FFB86C",
			Success:       "#50FA7B",
			Warning:       "#FFB86C",
			Error:         "#FF5555",
			TextPrimary:   "#F8F8F2",
			TextSecondary: "#BFBFBF",
			TextMuted:     "#6272A4",
			BgPrimary:     "#282A36",
			BgSecondary:   "#44475A",
			BorderNormal:  "#44475A",
			BorderActive:  "#BD93F9",
			MarkdownTheme: "dracula",
		},
	}

	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary:       "#6D28D9",
			Secondary:     "#2563EB",
			Accent:        "#D97706",
			Success:       "#059669",
			Warning:       "#D97706",
			Error:         "#DC2626",
			TextPrimary:   "#111827",
			TextSecondary: "#4B5563",
			TextMuted:     "#9CA3AF",
			BgPrimary:     "#FFFFFF",
			BgSecondary:   "#F3F4F6",
			BorderNormal:  "#D1D5DB",
			BorderActive:  "#6D28D9",
			MarkdownTheme: "light",
		},
	}
)

// themeRegistry holds all available themes.
var themeRegistry = map[string]Theme{
	"default": DefaultTheme,
	"dracula": DraculaTheme,
	"light":   LightTheme,
}

var (
	currentTheme         = "default"
	currentMarkdownTheme = "dark"
)

// Color variables, rebuilt whenever a theme is applied.
var (
	Primary   = lipgloss.Color(DefaultTheme.Colors.Primary)
	Secondary = lipgloss.Color(DefaultTheme.Colors.Secondary)
	Accent    = lipgloss.Color(DefaultTheme.Colors.Accent)

	Success = lipgloss.Color(DefaultTheme.Colors.Success)
	Warning = lipgloss.Color(DefaultTheme.Colors.Warning)
	Error   = lipgloss.Color(DefaultTheme.Colors.Error)

	TextPrimary   = lipgloss.Color(DefaultTheme.Colors.TextPrimary)
	TextSecondary = lipgloss.Color(DefaultTheme.Colors.TextSecondary)
	TextMuted     = lipgloss.Color(DefaultTheme.Colors.TextMuted)

	BgPrimary   = lipgloss.Color(DefaultTheme.Colors.BgPrimary)
	BgSecondary = lipgloss.Color(DefaultTheme.Colors.BgSecondary)

	BorderNormal = lipgloss.Color(DefaultTheme.Colors.BorderNormal)
	BorderActive = lipgloss.Color(DefaultTheme.Colors.BorderActive)
)

// IsValidTheme checks if a theme name exists in the registry.
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found.
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the currently active theme.
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order.
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name, updating all color variables.
func ApplyTheme(name string) {
	theme := GetTheme(name)
	c := theme.Colors

	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	themeMu.Lock()
	currentTheme = theme.Name
	currentMarkdownTheme = c.MarkdownTheme
	themeMu.Unlock()
}

// GetMarkdownTheme returns the current markdown rendering theme name.
func GetMarkdownTheme() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentMarkdownTheme
}
