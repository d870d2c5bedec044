// Package config loads the application configuration for the CLI, bot and
// server front ends.
//
// Configuration is layered: built-in GOST defaults, then an optional TOML
// file, then environment variables (a .env file is honored when present).
// Secrets such as the bot token are environment-only.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/gost-tools/gostdoc/model"
	"github.com/gost-tools/gostdoc/style"
)

// Environment variable names recognized by Load.
const (
	EnvBotToken   = "GOSTDOC_BOT_TOKEN"
	EnvServerAddr = "GOSTDOC_SERVER_ADDR"
	EnvLogLevel   = "GOSTDOC_LOG_LEVEL"
	EnvTempDir    = "GOSTDOC_TEMP_DIR"
)

// Config is the full application configuration.
type Config struct {
	Style  Style  `toml:"style"`
	Bot    Bot    `toml:"bot"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Style holds the formatting parameters. Distances are in centimeters,
// font sizes in points.
type Style struct {
	FontName        string  `toml:"font_name"`
	FontSize        float64 `toml:"font_size"`
	HeadingFontSize float64 `toml:"heading_font_size"`
	LineSpacing     float64 `toml:"line_spacing"`
	FirstLineIndent float64 `toml:"first_line_indent"`
	MarginLeft      float64 `toml:"margin_left"`
	MarginRight     float64 `toml:"margin_right"`
	MarginTop       float64 `toml:"margin_top"`
	MarginBottom    float64 `toml:"margin_bottom"`
}

// Bot holds the Telegram front end settings. The token comes from the
// environment, never from the file.
type Bot struct {
	Token         string `toml:"-"`
	TempDir       string `toml:"temp_dir"`
	MaxFileSizeMB int64  `toml:"max_file_size_mb"`
}

// Server holds the HTTP front end settings.
type Server struct {
	Addr           string `toml:"addr"`
	MaxConnections int    `toml:"max_connections"`
	MaxUploadMB    int64  `toml:"max_upload_mb"`
}

// Log holds the logging settings. Level is one of debug, info, warn, error.
type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the built-in configuration: GOST 7.32 formatting defaults
// and conservative transport limits.
func Default() Config {
	s := style.DefaultConfig()
	return Config{
		Style: Style{
			FontName:        s.FontName,
			FontSize:        s.FontSize,
			HeadingFontSize: s.HeadingFontSize,
			LineSpacing:     s.LineSpacing,
			FirstLineIndent: s.FirstLineIndent,
			MarginLeft:      s.Margins.Left,
			MarginRight:     s.Margins.Right,
			MarginTop:       s.Margins.Top,
			MarginBottom:    s.Margins.Bottom,
		},
		Bot: Bot{
			TempDir:       os.TempDir(),
			MaxFileSizeMB: 20,
		},
		Server: Server{
			Addr:           ":8080",
			MaxConnections: 64,
			MaxUploadMB:    20,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path when
// path is non-empty, then environment variables. A .env file in the working
// directory is loaded first when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvBotToken); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvTempDir); v != "" {
		cfg.Bot.TempDir = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline or front ends cannot work
// with.
func (c Config) Validate() error {
	if c.Style.FontName == "" {
		return fmt.Errorf("style.font_name must not be empty")
	}
	if c.Style.FontSize <= 0 {
		return fmt.Errorf("style.font_size must be positive, got %v", c.Style.FontSize)
	}
	if c.Style.HeadingFontSize <= 0 {
		return fmt.Errorf("style.heading_font_size must be positive, got %v", c.Style.HeadingFontSize)
	}
	if c.Style.LineSpacing <= 0 {
		return fmt.Errorf("style.line_spacing must be positive, got %v", c.Style.LineSpacing)
	}
	if c.Style.FirstLineIndent < 0 {
		return fmt.Errorf("style.first_line_indent must not be negative, got %v", c.Style.FirstLineIndent)
	}
	for name, v := range map[string]float64{
		"margin_left":   c.Style.MarginLeft,
		"margin_right":  c.Style.MarginRight,
		"margin_top":    c.Style.MarginTop,
		"margin_bottom": c.Style.MarginBottom,
	} {
		if v < 0 {
			return fmt.Errorf("style.%s must not be negative, got %v", name, v)
		}
	}
	if c.Server.MaxConnections <= 0 {
		return fmt.Errorf("server.max_connections must be positive, got %d", c.Server.MaxConnections)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Bot.MaxFileSizeMB <= 0 {
		return fmt.Errorf("bot.max_file_size_mb must be positive, got %d", c.Bot.MaxFileSizeMB)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// StyleConfig converts the loaded settings into the pipeline's formatting
// configuration.
func (c Config) StyleConfig() style.Config {
	return style.Config{
		FontName:        c.Style.FontName,
		FontSize:        c.Style.FontSize,
		HeadingFontSize: c.Style.HeadingFontSize,
		LineSpacing:     c.Style.LineSpacing,
		FirstLineIndent: c.Style.FirstLineIndent,
		Margins: model.Margins{
			Left:   c.Style.MarginLeft,
			Right:  c.Style.MarginRight,
			Top:    c.Style.MarginTop,
			Bottom: c.Style.MarginBottom,
		},
	}
}

// Save writes the configuration to a TOML file. Useful for generating a
// starting point with the defaults filled in.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
