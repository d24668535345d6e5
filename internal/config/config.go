package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName      = "adfind"
	envPrefix    = "ADFIND"
	configFormat = "toml"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	History HistoryConfig `mapstructure:"history"`
	Browser BrowserConfig `mapstructure:"browser"`
	Keys    KeyConfig     `mapstructure:"keys"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type UIConfig struct {
	Colors    UIColors `mapstructure:"colors"`
	Locale    string   `mapstructure:"locale"`
	Currency  string   `mapstructure:"currency"`
	CardWidth int      `mapstructure:"card_width"`
	Semantic  bool     `mapstructure:"semantic"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Highlight string `mapstructure:"highlight"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Limit   int    `mapstructure:"limit"`
}

type BrowserConfig struct {
	// Command overrides the platform opener (xdg-open, open, ...).
	Command string `mapstructure:"command"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit       string `mapstructure:"quit"`
	ToggleMode string `mapstructure:"toggle_mode"`
	Clear      string `mapstructure:"clear"`
	Open       string `mapstructure:"open"`
	History    string `mapstructure:"history"`
	Back       string `mapstructure:"back"`
	Help       string `mapstructure:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:   "http://127.0.0.1:8000",
			Timeout:   30 * time.Second,
			UserAgent: "adfind/1.0 (https://github.com/pders01/adfind)",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Highlight: "#FFE66D",
				Error:     "#EF4444",
				Success:   "#10B981",
			},
			Locale:    "ru",
			Currency:  "сом",
			CardWidth: 38,
			Semantic:  false,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(homeDir, "."+appName, "history.db"),
			Limit:   200,
		},
		Browser: BrowserConfig{
			Command: "",
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:       "c",
				ToggleMode: "t",
				Clear:      "l",
				Open:       "o",
				History:    "r",
				Back:       "esc",
				Help:       "?",
			},
		},
		Log: LogConfig{
			Level: "off",
			File:  "",
		},
	}
}

// DefaultConfigPath is where Load looks when no explicit path is given.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config."+configFormat)
}

func configDir() string {
	homeDir, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, appName)
		}
	}
	return filepath.Join(homeDir, ".config", appName)
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType(configFormat)
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	// ADFIND_API_BASE_URL, ADFIND_LOG_LEVEL, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// setDefaults registers every leaf key so partial config files and env
// variables override single values without dropping their siblings.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)

	v.SetDefault("ui.locale", cfg.UI.Locale)
	v.SetDefault("ui.currency", cfg.UI.Currency)
	v.SetDefault("ui.card_width", cfg.UI.CardWidth)
	v.SetDefault("ui.semantic", cfg.UI.Semantic)
	v.SetDefault("ui.colors.primary", cfg.UI.Colors.Primary)
	v.SetDefault("ui.colors.secondary", cfg.UI.Colors.Secondary)
	v.SetDefault("ui.colors.accent", cfg.UI.Colors.Accent)
	v.SetDefault("ui.colors.text", cfg.UI.Colors.Text)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.highlight", cfg.UI.Colors.Highlight)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)
	v.SetDefault("ui.colors.success", cfg.UI.Colors.Success)

	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.path", cfg.History.Path)
	v.SetDefault("history.limit", cfg.History.Limit)

	v.SetDefault("browser.command", cfg.Browser.Command)

	v.SetDefault("keys.modifier", cfg.Keys.Modifier)
	v.SetDefault("keys.bindings.quit", cfg.Keys.Bindings.Quit)
	v.SetDefault("keys.bindings.toggle_mode", cfg.Keys.Bindings.ToggleMode)
	v.SetDefault("keys.bindings.clear", cfg.Keys.Bindings.Clear)
	v.SetDefault("keys.bindings.open", cfg.Keys.Bindings.Open)
	v.SetDefault("keys.bindings.history", cfg.Keys.Bindings.History)
	v.SetDefault("keys.bindings.back", cfg.Keys.Bindings.Back)
	v.SetDefault("keys.bindings.help", cfg.Keys.Bindings.Help)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.History.Path = expandPath(cfg.History.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Explicit maps keep the snake_case keys Load expects; durations are
	// written as strings for readability.
	v.Set("api", map[string]interface{}{
		"base_url":   config.API.BaseURL,
		"timeout":    config.API.Timeout.String(),
		"user_agent": config.API.UserAgent,
	})
	v.Set("ui", map[string]interface{}{
		"locale":     config.UI.Locale,
		"currency":   config.UI.Currency,
		"card_width": config.UI.CardWidth,
		"semantic":   config.UI.Semantic,
		"colors": map[string]interface{}{
			"primary":   config.UI.Colors.Primary,
			"secondary": config.UI.Colors.Secondary,
			"accent":    config.UI.Colors.Accent,
			"text":      config.UI.Colors.Text,
			"muted":     config.UI.Colors.Muted,
			"highlight": config.UI.Colors.Highlight,
			"error":     config.UI.Colors.Error,
			"success":   config.UI.Colors.Success,
		},
	})
	v.Set("history", map[string]interface{}{
		"enabled": config.History.Enabled,
		"path":    config.History.Path,
		"limit":   config.History.Limit,
	})
	v.Set("browser", map[string]interface{}{
		"command": config.Browser.Command,
	})
	v.Set("keys", map[string]interface{}{
		"modifier": config.Keys.Modifier,
		"bindings": map[string]interface{}{
			"quit":        config.Keys.Bindings.Quit,
			"toggle_mode": config.Keys.Bindings.ToggleMode,
			"clear":       config.Keys.Bindings.Clear,
			"open":        config.Keys.Bindings.Open,
			"history":     config.Keys.Bindings.History,
			"back":        config.Keys.Bindings.Back,
			"help":        config.Keys.Bindings.Help,
		},
	})
	v.Set("log", map[string]interface{}{
		"level": config.Log.Level,
		"file":  config.Log.File,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
