package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// Logging controls the zap logger built by the CLI.
type Logging struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // console or json
}

// Config holds conversion and batch settings.
type Config struct {
	TargetVersion         string   `yaml:"target_version" toml:"target_version"`
	OutputSuffix          string   `yaml:"output_suffix" toml:"output_suffix"`
	Exclude               []string `yaml:"exclude" toml:"exclude"`
	ElideDefaultTimelines bool     `yaml:"elide_default_timelines" toml:"elide_default_timelines"`
	Indent                string   `yaml:"indent" toml:"indent"`
	Workers               int      `yaml:"workers" toml:"workers"`
	ImageExtensions       []string `yaml:"image_extensions" toml:"image_extensions"`
	InjectAtlasSize       bool     `yaml:"inject_atlas_size" toml:"inject_atlas_size"`
	RewriteAtlasRefs      bool     `yaml:"rewrite_atlas_references" toml:"rewrite_atlas_references"`
	Logging               Logging  `yaml:"log" toml:"log"`
}

// Load reads path on top of Default. The format follows the file extension
// (.toml, otherwise YAML). An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		if err := cfg.decode(data, filepath.Ext(path)); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) decode(data []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	default:
		return yaml.UnmarshalStrict(data, c)
	}
}

func (c *Config) normalize() {
	c.TargetVersion = strings.TrimSpace(c.TargetVersion)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	for i, ext := range c.ImageExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.ImageExtensions[i] = ext
	}
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
