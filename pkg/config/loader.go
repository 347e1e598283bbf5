package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix scopes environment overrides; "__" separates nesting levels,
	// so DISPATCH_API__BASE_URL sets api.base_url.
	EnvPrefix = "DISPATCH_"
	// DefaultFile is read when present and no explicit file is given.
	DefaultFile = "dispatch.yaml"
	// DefaultEnvFile is read when present and no explicit env file is given.
	DefaultEnvFile = ".env"
)

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// File is an explicit YAML config path; missing explicit files are errors.
	File string
	// EnvFile is an explicit dotenv path; missing explicit files are errors.
	EnvFile string
	// Overrides are applied last, keyed by dotted path.
	Overrides map[string]any
	// Environ replaces os.Environ, mostly for tests.
	Environ func() []string
}

// Load resolves configuration with precedence
// overrides > env vars > .env > YAML file > defaults.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	path, err := resolveFile(opts.File, DefaultFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	envPath, err := resolveFile(opts.EnvFile, DefaultEnvFile)
	if err != nil {
		return nil, err
	}
	if envPath != "" {
		values, err := godotenv.Read(envPath)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", envPath, err)
		}
		if err := k.Load(confmap.Provider(dotenvKeys(values), "."), nil); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	}

	if opts.Environ != nil {
		if err := k.Load(confmap.Provider(environKeys(opts.Environ()), "."), nil); err != nil {
			return nil, fmt.Errorf("config: load environment: %w", err)
		}
	} else if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("config: load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveFile(explicit, fallback string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		return explicit, nil
	}
	if _, err := os.Stat(fallback); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("config: %w", err)
	}
	return fallback, nil
}

// envKey maps DISPATCH_VIEWS__ORDERS_LIMIT to views.orders_limit.
func envKey(name string) string {
	name = strings.TrimPrefix(name, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(name), "__", ".")
}

func dotenvKeys(values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for name, value := range values {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		out[envKey(name)] = value
	}
	return out
}

func environKeys(environ []string) map[string]any {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if ok {
			values[name] = value
		}
	}
	return dotenvKeys(values)
}
