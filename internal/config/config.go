// Package config loads cardsmith application settings from an env file,
// the environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CARDSMITH_THEME.
const EnvPrefix = "CARDSMITH"

type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT"`
	PixelsPerInch     int           `mapstructure:"PIXELS_PER_INCH"`
	Theme             string        `mapstructure:"THEME"`
	IconDir           string        `mapstructure:"ICON_DIR"`
	OutputDir         string        `mapstructure:"OUTPUT_DIR"`
	Workers           int           `mapstructure:"WORKERS"`
	HTTPServerAddress string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	RenderTimeout     time.Duration `mapstructure:"RENDER_TIMEOUT"`
	PDFPageSize       string        `mapstructure:"PDF_PAGE_SIZE"`
	PDFCutMarks       bool          `mapstructure:"PDF_CUT_MARKS"`
}

var defaults = map[string]any{
	"ENVIRONMENT":         "production",
	"PIXELS_PER_INCH":     100,
	"THEME":               "default",
	"ICON_DIR":            "",
	"OUTPUT_DIR":          "out",
	"WORKERS":             4,
	"HTTP_SERVER_ADDRESS": "127.0.0.1:8080",
	"RENDER_TIMEOUT":      10 * time.Second,
	"PDF_PAGE_SIZE":       "A4",
	"PDF_CUT_MARKS":       false,
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"ppi":           "PIXELS_PER_INCH",
	"theme":         "THEME",
	"icons":         "ICON_DIR",
	"output":        "OUTPUT_DIR",
	"workers":       "WORKERS",
	"addr":          "HTTP_SERVER_ADDRESS",
	"pdf-page-size": "PDF_PAGE_SIZE",
	"pdf-cut-marks": "PDF_CUT_MARKS",
}

// LoadConfig reads cardsmith.env from path if present, then the
// environment, then any flags in fs that the user set explicitly. A
// missing config file is not an error.
func LoadConfig(path string, fs *pflag.FlagSet) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("cardsmith")
	v.SetConfigType("env")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
		err = nil
	}

	if fs != nil {
		for name, key := range FlagKeys {
			flag := fs.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err = v.BindPFlag(key, flag); err != nil {
				return config, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks ranges viper cannot express.
func (c Config) Validate() error {
	if c.PixelsPerInch < 10 || c.PixelsPerInch > 1200 {
		return fmt.Errorf("pixels per inch must be between 10 and 1200, got %d", c.PixelsPerInch)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("render timeout must be positive, got %s", c.RenderTimeout)
	}
	return nil
}

// IsDevelopment reports whether human-readable console logging is wanted.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
