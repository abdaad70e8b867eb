// Package config loads hotsquiz settings from an optional YAML file,
// .env files and HOTSQUIZ_* environment variables.
//
// Precedence, highest first: command-line flags (applied by the caller),
// environment, config file, defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/hotsquiz/internal/llm"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Quiz   QuizConfig   `yaml:"quiz"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`

	// DB is the SQLite database path. Empty means the default location.
	DB string `yaml:"db"`
}

// QuizConfig holds defaults for new quizzes.
type QuizConfig struct {
	Subject    string `yaml:"subject"`
	Level      string `yaml:"level"`
	Aspiration string `yaml:"aspiration"`
	Count      int    `yaml:"count"`
}

// LogConfig selects the diagnostic logger.
type LogConfig struct {
	Mode  string `yaml:"mode"`  // dev or prod
	Level string `yaml:"level"` // debug, info, warn, error
}

// ServerConfig configures `hotsquiz serve`.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LLMConfig overrides the provider selection.
type LLMConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Quiz: QuizConfig{
			Subject: "biology",
			Level:   "upper-secondary",
			Count:   5,
		},
		Log: LogConfig{
			Mode:  "dev",
			Level: "warn",
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hotsquiz/config.yaml, falling back
// to ~/.config/hotsquiz/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "hotsquiz", "config.yaml"), nil
}

// Parse decodes a YAML document over the defaults. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads the config file at path. An empty path means DefaultPath,
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are skipped; variables already set are not overridden. With no
// arguments it loads ./.env.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays HOTSQUIZ_* variables onto c.
func (c *Config) ApplyEnv() error {
	setString(&c.Quiz.Subject, "HOTSQUIZ_SUBJECT")
	setString(&c.Quiz.Level, "HOTSQUIZ_LEVEL")
	setString(&c.Quiz.Aspiration, "HOTSQUIZ_ASPIRATION")
	setString(&c.Log.Mode, "HOTSQUIZ_LOG_MODE")
	setString(&c.Log.Level, "HOTSQUIZ_LOG_LEVEL")
	setString(&c.Server.Addr, "HOTSQUIZ_ADDR")
	setString(&c.DB, "HOTSQUIZ_DB")
	setString(&c.LLM.Provider, "HOTSQUIZ_LLM_PROVIDER")
	setString(&c.LLM.Model, "HOTSQUIZ_LLM_MODEL")

	if v := os.Getenv("HOTSQUIZ_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}

	if v := os.Getenv("HOTSQUIZ_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HOTSQUIZ_COUNT: %w", err)
		}
		c.Quiz.Count = n
	}
	if v := os.Getenv("HOTSQUIZ_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HOTSQUIZ_LLM_TIMEOUT: %w", err)
		}
		c.LLM.Timeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Resolve loads .env files, the config file and the environment, in that
// order of increasing precedence.
func Resolve(path string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LLMProviderConfig builds the llm.Config: defaults, then the file's
// provider, model and timeout, then the provider-specific HOTSQUIZ_*
// variables. When the selected provider still has no key, the first
// vendor key found in the environment picks the provider.
func (c Config) LLMProviderConfig() llm.Config {
	cfg := llm.DefaultConfig()
	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if c.LLM.Model != "" {
		cfg.SetModel(c.LLM.Model)
	}
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	llm.ApplyEnv(&cfg)

	if cfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Timeout = cfg.Timeout
			cfg = discovered
		}
	}
	return cfg
}
