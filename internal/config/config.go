// Package config loads the designer's settings from YAML, JSON, TOML or INI files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	GridSize int           `mapstructure:"grid_size" validate:"min=1"`
	Log      LogConfig     `mapstructure:"log"`
	Server   ServerConfig  `mapstructure:"server"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"startswith=/"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		GridSize: domain.DefaultGridSize,
		Log:      LogConfig{Level: "info", Format: "text"},
		Server:   ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		Metrics:  MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Load reads path over the defaults. The parser is chosen by extension.
// An empty path or a missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw, err := parse(strings.ToLower(filepath.Ext(path)), data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	for i, o := range cfg.Server.AllowedOrigins {
		cfg.Server.AllowedOrigins[i] = strings.TrimSpace(o)
	}
	return cfg, nil
}

func parse(ext string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".ini":
		return parseINI(data)
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
	return raw, nil
}

// parseINI maps keys of the default section to the top level and each named
// section to a nested map.
func parseINI(data []byte) (map[string]any, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, err
	}

	raw := map[string]any{}
	for _, section := range file.Sections() {
		target := raw
		if section.Name() != ini.DefaultSection {
			nested := map[string]any{}
			raw[strings.ToLower(section.Name())] = nested
			target = nested
		}
		for _, key := range section.Keys() {
			target[key.Name()] = key.Value()
		}
	}
	return raw, nil
}

// Validate checks that the configuration can start the application.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	if _, err := domain.NewSpace(c.GridSize); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Namespace()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", name, fe.Tag())
	}
}
