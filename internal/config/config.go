package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "KIOSK"

const (
	KeyAPIBaseURL  = "api_base_url"
	KeyHTTPTimeout = "http_timeout"
	KeyExportDir   = "export_dir"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyNoColor     = "no_color"
)

type Config struct {
	APIBaseURL  string        `mapstructure:"api_base_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	ExportDir   string        `mapstructure:"export_dir"`
	LogLevel    string        `mapstructure:"log_level"`
	LogFormat   string        `mapstructure:"log_format"`
	NoColor     bool          `mapstructure:"no_color"`
}

// New returns a viper instance with defaults and KIOSK_* environment
// bindings. A .env file in the working directory is loaded when present.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIBaseURL, "http://localhost:5000")
	v.SetDefault(KeyHTTPTimeout, 10*time.Second)
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyNoColor, false)
	return v
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("%s must not be empty", envPrefix+"_API_BASE_URL")
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", envPrefix+"_HTTP_TIMEOUT", cfg.HTTPTimeout)
	}
	return cfg, nil
}

// NewLogger builds the process logger. Logs go to out, never to the screen
// the kiosk draws on.
func (c *Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)

	switch strings.ToLower(c.LogFormat) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: c.NoColor})
	default:
		return nil, fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	return log, nil
}
