package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	Title        string        `toml:"title"`
	TabWidth     int           `toml:"tab-width"`
	PollInterval time.Duration `toml:"poll-interval"`
}

type Theme struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Border     string `toml:"border"`
	Title      string `toml:"title"`
	Hint       string `toml:"hint"`
}

type Log struct {
	File  string `toml:"file"`
	Debug bool   `toml:"debug"`
}

type Config struct {
	Editor EditorOptions     `toml:"editor"`
	Theme  Theme             `toml:"theme"`
	Keymap map[string]string `toml:"keymap"`
	Log    Log               `toml:"log"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Title:        "Text Editor",
			TabWidth:     4,
			PollInterval: 250 * time.Millisecond,
		},
		Theme: Theme{
			Foreground: "yellow",
			Background: "default",
			Border:     "default",
			Title:      "default",
			Hint:       "gray",
		},
		Keymap: map[string]string{
			"ctrl+s":    "save",
			"esc":       "cancel",
			"enter":     "newline",
			"backspace": "backspace",
			"left":      "move_left",
			"right":     "move_right",
			"up":        "move_up",
			"down":      "move_down",
		},
	}
}

// Load reads config.toml from ConfigDir. A missing file, or a config
// directory that cannot be resolved, yields Default.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}
	merge(&cfg, userCfg)
	return cfg, nil
}

func merge(cfg *Config, user Config) {
	if user.Editor.Title != "" {
		cfg.Editor.Title = user.Editor.Title
	}
	if user.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = user.Editor.TabWidth
	}
	if user.Editor.PollInterval > 0 {
		cfg.Editor.PollInterval = user.Editor.PollInterval
	}
	if user.Theme.Foreground != "" {
		cfg.Theme.Foreground = user.Theme.Foreground
	}
	if user.Theme.Background != "" {
		cfg.Theme.Background = user.Theme.Background
	}
	if user.Theme.Border != "" {
		cfg.Theme.Border = user.Theme.Border
	}
	if user.Theme.Title != "" {
		cfg.Theme.Title = user.Theme.Title
	}
	if user.Theme.Hint != "" {
		cfg.Theme.Hint = user.Theme.Hint
	}
	for k, v := range user.Keymap {
		cfg.Keymap[k] = v
	}
	if user.Log.File != "" {
		cfg.Log.File = user.Log.File
	}
	if user.Log.Debug {
		cfg.Log.Debug = true
	}
}

func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "boxedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
