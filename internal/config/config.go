package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/kobzarvs/pen/internal/logger"
)

type EditorOptions struct {
	Class       string `toml:"class"`
	Target      string `toml:"target"`
	Debug       bool   `toml:"debug"`
	Stay        *bool  `toml:"stay"`
	StayMessage string `toml:"stay-message"`
	Placeholder string `toml:"placeholder"`
}

type ToolbarOptions struct {
	List           []string `toml:"list"`
	Padding        int      `toml:"padding"`
	ToggleDelayMS  int      `toml:"toggle-delay-ms"`
	KeyDelayMS     int      `toml:"key-delay-ms"`
	MouseUpDelayMS int      `toml:"mouse-up-delay-ms"`
}

type CleanOptions struct {
	Attrs []string `toml:"attrs"`
	Tags  []string `toml:"tags"`
}

// Theme holds the terminal toolbar colors.
type Theme struct {
	Theme             string `toml:"theme"`
	ToolbarForeground string `toml:"toolbar-foreground"`
	ToolbarBackground string `toml:"toolbar-background"`
	ActiveForeground  string `toml:"active-foreground"`
	ActiveBackground  string `toml:"active-background"`
	InputForeground   string `toml:"input-foreground"`
	InputBackground   string `toml:"input-background"`
	PointerForeground string `toml:"pointer-foreground"`
}

type Config struct {
	Editor  EditorOptions  `toml:"editor"`
	Toolbar ToolbarOptions `toml:"toolbar"`
	Clean   CleanOptions   `toml:"clean"`
	Theme   Theme          `toml:"theme"`
}

var (
	ErrNegativePadding = errors.New("config: toolbar padding must not be negative")
	ErrNegativeDelay   = errors.New("config: toolbar delay must not be negative")
	ErrEmptyAction     = errors.New("config: toolbar action name is empty")
)

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Class:       "pen",
			StayMessage: "Are you going to leave here?",
		},
		Toolbar: ToolbarOptions{
			List: []string{
				"blockquote", "h2", "h3", "p", "code", "insertorderedlist", "insertunorderedlist",
				"inserthorizontalrule", "indent", "outdent", "bold", "italic", "underline", "createlink",
			},
			Padding:        10,
			ToggleDelayMS:  1,
			KeyDelayMS:     400,
			MouseUpDelayMS: 0,
		},
		Clean: CleanOptions{
			Attrs: []string{"id", "class", "style", "name"},
			Tags:  []string{"script"},
		},
		Theme: Theme{
			ToolbarForeground: "#B3B1AD",
			ToolbarBackground: "#0F1419",
			ActiveForeground:  "#0A0E14",
			ActiveBackground:  "#1ABF89",
			InputForeground:   "#B3B1AD",
			InputBackground:   "#27425A",
			PointerForeground: "#0F1419",
		},
	}
}

// StayEnabled reports whether the page-leave guard is on. Unset means on unless debugging.
func (c Config) StayEnabled() bool {
	if c.Editor.Stay != nil {
		return *c.Editor.Stay
	}
	return !c.Editor.Debug
}

func (t ToolbarOptions) ToggleDelay() time.Duration {
	return time.Duration(t.ToggleDelayMS) * time.Millisecond
}

func (t ToolbarOptions) KeyDelay() time.Duration {
	return time.Duration(t.KeyDelayMS) * time.Millisecond
}

func (t ToolbarOptions) MouseUpDelay() time.Duration {
	return time.Duration(t.MouseUpDelayMS) * time.Millisecond
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.Toolbar.Padding < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %d", ErrNegativePadding, c.Toolbar.Padding))
	}
	delays := []struct {
		name string
		ms   int
	}{
		{"toggle-delay-ms", c.Toolbar.ToggleDelayMS},
		{"key-delay-ms", c.Toolbar.KeyDelayMS},
		{"mouse-up-delay-ms", c.Toolbar.MouseUpDelayMS},
	}
	for _, d := range delays {
		if d.ms < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s = %d", ErrNegativeDelay, d.name, d.ms))
		}
	}
	for i, name := range c.Toolbar.List {
		if strings.TrimSpace(name) == "" {
			err = multierr.Append(err, fmt.Errorf("%w: position %d", ErrEmptyAction, i))
		}
	}
	return err
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	return Decode(string(data))
}

// Decode merges a TOML document over the defaults. Unknown keys are ignored.
func Decode(data string) (Config, error) {
	cfg := Default()

	var userCfg Config
	md, err := toml.Decode(data, &userCfg)
	if err != nil {
		return cfg, err
	}
	for _, key := range md.Undecoded() {
		logger.Debug("ignoring unknown config key", "key", key.String())
	}

	if userCfg.Editor.Class != "" {
		cfg.Editor.Class = userCfg.Editor.Class
	}
	if userCfg.Editor.Target != "" {
		cfg.Editor.Target = userCfg.Editor.Target
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = userCfg.Editor.Debug
	}
	if userCfg.Editor.Stay != nil {
		stay := *userCfg.Editor.Stay
		cfg.Editor.Stay = &stay
	}
	if userCfg.Editor.StayMessage != "" {
		cfg.Editor.StayMessage = userCfg.Editor.StayMessage
	}
	if userCfg.Editor.Placeholder != "" {
		cfg.Editor.Placeholder = userCfg.Editor.Placeholder
	}
	if md.IsDefined("toolbar", "list") {
		cfg.Toolbar.List = append([]string(nil), userCfg.Toolbar.List...)
	}
	if md.IsDefined("toolbar", "padding") {
		cfg.Toolbar.Padding = userCfg.Toolbar.Padding
	}
	if md.IsDefined("toolbar", "toggle-delay-ms") {
		cfg.Toolbar.ToggleDelayMS = userCfg.Toolbar.ToggleDelayMS
	}
	if md.IsDefined("toolbar", "key-delay-ms") {
		cfg.Toolbar.KeyDelayMS = userCfg.Toolbar.KeyDelayMS
	}
	if md.IsDefined("toolbar", "mouse-up-delay-ms") {
		cfg.Toolbar.MouseUpDelayMS = userCfg.Toolbar.MouseUpDelayMS
	}
	if md.IsDefined("clean", "attrs") {
		cfg.Clean.Attrs = append([]string(nil), userCfg.Clean.Attrs...)
	}
	if md.IsDefined("clean", "tags") {
		cfg.Clean.Tags = append([]string(nil), userCfg.Clean.Tags...)
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	return cfg, cfg.Validate()
}

func mergeTheme(dst *Theme, src Theme) {
	if src.ToolbarForeground != "" {
		dst.ToolbarForeground = src.ToolbarForeground
	}
	if src.ToolbarBackground != "" {
		dst.ToolbarBackground = src.ToolbarBackground
	}
	if src.ActiveForeground != "" {
		dst.ActiveForeground = src.ActiveForeground
	}
	if src.ActiveBackground != "" {
		dst.ActiveBackground = src.ActiveBackground
	}
	if src.InputForeground != "" {
		dst.InputForeground = src.InputForeground
	}
	if src.InputBackground != "" {
		dst.InputBackground = src.InputBackground
	}
	if src.PointerForeground != "" {
		dst.PointerForeground = src.PointerForeground
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil && t != (Theme{}) {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("PEN_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "pen"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pen"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
