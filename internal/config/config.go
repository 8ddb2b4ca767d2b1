package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kamusis/skilldex/internal/extract"
)

// Source is one configured root scanned by the builder.
type Source struct {
	Root    string   `yaml:"root" mapstructure:"root"`
	Glob    string   `yaml:"glob" mapstructure:"glob"`
	Type    string   `yaml:"type" mapstructure:"type"`
	Prefix  string   `yaml:"prefix" mapstructure:"prefix"`
	Exclude []string `yaml:"exclude,omitempty" mapstructure:"exclude"`
}

// Config is the in-memory representation of ~/.skilldex/skilldex.yaml.
type Config struct {
	WorkspacePath         string        `yaml:"workspace_path" mapstructure:"workspace_path"`
	Output                string        `yaml:"output" mapstructure:"output"`
	Name                  string        `yaml:"name" mapstructure:"name"`
	Version               string        `yaml:"version" mapstructure:"version"`
	DescriptionCap        int           `yaml:"description_cap" mapstructure:"description_cap"`
	IncludeFallbackTitles bool          `yaml:"include_fallback_titles" mapstructure:"include_fallback_titles"`
	LockTimeout           time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout"`
	LogLevel              string        `yaml:"log_level" mapstructure:"log_level"`
	LogFormat             string        `yaml:"log_format" mapstructure:"log_format"`
	Sources               []Source      `yaml:"sources" mapstructure:"sources"`
}

const envPrefix = "SKILLDEX"

// scalarKeys are the settings that can be overridden from the environment.
var scalarKeys = []string{
	"workspace_path", "output", "name", "version", "description_cap",
	"include_fallback_titles", "lock_timeout", "log_level", "log_format",
}

// OverrideKeys returns the SKILLDEX_* variable names Load consults.
func OverrideKeys() []string {
	out := make([]string, 0, len(scalarKeys))
	for _, k := range scalarKeys {
		out = append(out, envPrefix+"_"+strings.ToUpper(k))
	}
	return out
}

// Dir returns the absolute path to ~/.skilldex/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot determine home directory")
	}
	return filepath.Join(home, ".skilldex"), nil
}

// ConfigPath returns the absolute path to ~/.skilldex/skilldex.yaml.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skilldex.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot expand ~")
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the configuration used when no file is present and
// written by skilldex init.
func DefaultConfig() *Config {
	return &Config{
		WorkspacePath:  filepath.Join("~", ".openclaw", "workspace", "workspace"),
		Output:         filepath.Join("collections", "optimized_openclaw_collection.json"),
		Name:           "OpenClaw完整文档与技能集合",
		Version:        "3.0.0",
		DescriptionCap: 200,
		LockTimeout:    10 * time.Second,
		LogLevel:       "warn",
		LogFormat:      "text",
		Sources: []Source{
			{Root: "skills", Glob: "*/SKILL.md", Type: "skill", Prefix: "local_skill"},
			{Root: filepath.Join("skills", "openclaw-skills", "skills"), Glob: "*/SKILL.md", Type: "skill", Prefix: "openclaw_skill"},
			{Root: "docs", Glob: "**/*.md", Type: "document", Prefix: "doc", Exclude: []string{"README.md"}},
		},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("workspace_path", d.WorkspacePath)
	v.SetDefault("output", d.Output)
	v.SetDefault("name", d.Name)
	v.SetDefault("version", d.Version)
	v.SetDefault("description_cap", d.DescriptionCap)
	v.SetDefault("include_fallback_titles", d.IncludeFallbackTitles)
	v.SetDefault("lock_timeout", d.LockTimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("sources", d.Sources)
}

// Load builds the effective configuration from defaults, the config file,
// ~/.skilldex/.env and SKILLDEX_* environment variables, in increasing order
// of precedence.
//
// An empty path means the default location, which may be absent. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	if err := ExportDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "invalid YAML in %s", path)
		}
	} else if explicit || !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "cannot read config %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot decode config %s", path)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, cfg.Validate()
}

// resolve expands ~ and anchors relative roots and the output path at the
// workspace.
func (c *Config) resolve() error {
	ws, err := ExpandPath(c.WorkspacePath)
	if err != nil {
		return err
	}
	c.WorkspacePath = ws
	if c.Output, err = c.ResolvePath(c.Output); err != nil {
		return err
	}
	for i := range c.Sources {
		if c.Sources[i].Root, err = c.ResolvePath(c.Sources[i].Root); err != nil {
			return err
		}
	}
	return nil
}

// ResolvePath expands ~ in p and joins relative paths onto the workspace.
func (c *Config) ResolvePath(p string) (string, error) {
	p, err := ExpandPath(p)
	if err != nil {
		return "", err
	}
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(c.WorkspacePath, p), nil
}

// Validate reports the first setting the builder cannot work with.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	if c.DescriptionCap <= 0 {
		return errors.Errorf("description_cap must be positive, got %d", c.DescriptionCap)
	}
	for i, s := range c.Sources {
		if s.Root == "" || s.Glob == "" || s.Prefix == "" {
			return errors.Errorf("sources[%d]: root, glob and prefix are required", i)
		}
		if _, ok := extract.ParseKind(s.Type); !ok {
			return errors.Errorf("sources[%d]: type must be skill or document, got %q", i, s.Type)
		}
	}
	return nil
}

// Save marshals cfg and writes it to path, or to ~/.skilldex/skilldex.yaml
// when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "cannot marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create config dir %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "cannot write config %s", path)
	}
	return nil
}
