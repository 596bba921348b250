package location

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is a places file:
//
//	default: home
//	places:
//	  home:
//	    lat: 52.2167
//	    lon: 5.9667
//	    tz: Europe/Amsterdam
type Config struct {
	Default string           `yaml:"default"`
	Places  map[string]Place `yaml:"places"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/daylight/places.yaml (or the
// platform equivalent).
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "daylight", "places.yaml"), nil
}

// LoadConfig reads and validates a places file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read places file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates places YAML. Places without a name
// take their map key.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse places: %w", err)
	}

	for key, p := range cfg.Places {
		if p.Name == "" {
			p.Name = key
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		cfg.Places[key] = p
	}

	if cfg.Default != "" {
		if _, ok := cfg.Places[cfg.Default]; !ok {
			return nil, fmt.Errorf("default place %q: %w", cfg.Default, ErrNotFound)
		}
	}

	return &cfg, nil
}

// Lookup returns the named place. An empty name selects the default.
func (c *Config) Lookup(name string) (Place, error) {
	if name == "" {
		name = c.Default
	}
	if name == "" {
		return Place{}, fmt.Errorf("no default place: %w", ErrNotFound)
	}
	p, ok := c.Places[name]
	if !ok {
		return Place{}, fmt.Errorf("place %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// Names returns the place names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Places))
	for name := range c.Places {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Provider returns a provider for the named place; "" means the default.
func (c *Config) Provider(name string) Provider {
	return configPlace{cfg: c, name: name}
}

type configPlace struct {
	cfg  *Config
	name string
}

func (p configPlace) Name() string {
	if p.name == "" {
		return "config"
	}
	return "config:" + p.name
}

func (p configPlace) Locate(context.Context) (Place, error) {
	return p.cfg.Lookup(p.name)
}
