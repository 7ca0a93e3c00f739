package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Date line styles for the label layout.
const (
	DateStyleSeparate = "separate" // legacy: "Best: ..." / "Purchased: ..." lines
	DateStyleCombined = "combined" // localized range / single-date lines
)

type PrinterConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (p PrinterConfig) Addr() string { return fmt.Sprintf("%s:%d", p.Host, p.Port) }

type LabelConfig struct {
	WidthPx   int    `yaml:"width_px"`
	Language  string `yaml:"language"`
	DateStyle string `yaml:"date_style"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // dev | release
}

func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty: console only
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Printer  PrinterConfig  `yaml:"printer"`
	Label    LabelConfig    `yaml:"label"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

func defaults() *Config {
	return &Config{
		Server:  ServerConfig{Host: "0.0.0.0", Port: 5000, Mode: "release"},
		Printer: PrinterConfig{Host: "192.168.1.100", Port: 9100},
		Label:   LabelConfig{WidthPx: 384, Language: "en", DateStyle: DateStyleCombined},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the yaml config file and applies environment overrides.
// A missing file is not an error: the service boots on defaults alone.
func Load(path string) (*Config, error) {
	cfg := defaults()

	buf, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv maps the original deployment's environment keys onto the config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PRINTER_HOST"); v != "" {
		cfg.Printer.Host = v
	}
	if v := envInt("PRINTER_PORT"); v != 0 {
		cfg.Printer.Port = v
	}
	if v := envInt("LABEL_WIDTH"); v != 0 {
		cfg.Label.WidthPx = v
	}
	if v := os.Getenv("LABEL_LANG"); v != "" {
		cfg.Label.Language = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := envInt("SERVER_PORT"); v != 0 {
		cfg.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
