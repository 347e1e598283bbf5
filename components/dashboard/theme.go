package dashboard

import (
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ThemeSelection carries the resolved presentation details for a theme.
type ThemeSelection struct {
	Name       Theme
	BodyClass  string
	Tokens     map[string]string
	ChartTheme string
}

var themeTokens = map[Theme]map[string]string{
	ThemeLight: {
		"surface":        "#f4f5f7",
		"surface-raised": "#ffffff",
		"text":           "#1f2937",
		"text-muted":     "#6b7280",
		"accent":         "#2563eb",
		"warn":           "#dc2626",
		"border":         "#e5e7eb",
	},
	ThemeDark: {
		"surface":        "#111827",
		"surface-raised": "#1f2937",
		"text":           "#f9fafb",
		"text-muted":     "#9ca3af",
		"accent":         "#60a5fa",
		"warn":           "#f87171",
		"border":         "#374151",
	},
}

// SelectionFor returns a fresh selection for the theme.
func SelectionFor(theme Theme) *ThemeSelection {
	theme = ParseTheme(string(theme))
	selection := &ThemeSelection{
		Name:       theme,
		BodyClass:  string(theme) + "-theme",
		ChartTheme: types.ThemeWesteros,
	}
	if theme == ThemeDark {
		selection.ChartTheme = types.ThemeChalk
	}
	return cloneThemeSelection(selection, themeTokens[theme])
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variables as a style attribute, sorted
// by name so the output is stable.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

func cloneThemeSelection(selection *ThemeSelection, tokens map[string]string) *ThemeSelection {
	cloned := *selection
	if len(tokens) > 0 {
		cloned.Tokens = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cloned.Tokens[key] = value
		}
	}
	return &cloned
}
