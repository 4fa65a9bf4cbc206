package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR}, ${VAR:-default} and $VAR references.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv expands environment variable references in s using os.Getenv.
// ${VAR:-default} yields default when VAR is unset or empty. Unset
// variables without a default expand to the empty string.
func ExpandEnv(s string) string {
	return expandWith(s, os.Getenv)
}

func expandWith(s string, getenv func(string) string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if !strings.HasPrefix(match, "${") {
			return getenv(match[1:])
		}
		inner := match[2 : len(match)-1]
		if name, def, ok := strings.Cut(inner, ":-"); ok {
			if val := getenv(name); val != "" {
				return val
			}
			return def
		}
		return getenv(inner)
	})
}

// ExpandEnvConfig expands environment variables in every string value of
// cfg in place.
func ExpandEnvConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	for _, p := range cfg.Window.strings() {
		*p = ExpandEnv(*p)
	}
	for i := range cfg.Widgets {
		for _, p := range cfg.Widgets[i].strings() {
			*p = ExpandEnv(*p)
		}
	}
}

func (w *WindowConfig) strings() []*string {
	return []*string{
		&w.Title, &w.Background, &w.BackColor, &w.Color1, &w.Color2,
		&w.BorderColor, &w.Image, &w.Layout, &w.RightToLeft,
	}
}

func (w *WidgetConfig) strings() []*string {
	return []*string{
		&w.Name, &w.Kind, &w.Text, &w.BackColor, &w.ForeColor, &w.Color1,
		&w.Color2, &w.Image, &w.Layout, &w.RightToLeft, &w.Parent,
	}
}
