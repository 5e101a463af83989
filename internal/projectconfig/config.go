// Package projectconfig provides the ProjectConfig struct and loader for
// .cgpa.yaml configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up from the working directory upward.
const FileName = ".cgpa.yaml"

// Default values for project configuration, applied by New().
const (
	DefaultPolicy = "cui"
	DefaultFormat = "table"

	DefaultExportDir    = "results/"
	DefaultExportFormat = "csv"

	DefaultServerPort = 3000
	DefaultRateLimit  = 20.0

	// DefaultMaxSemesters caps interactive entry, matching an 8-semester degree.
	DefaultMaxSemesters = 8
)

// DefaultsConfig holds default calculation parameters.
type DefaultsConfig struct {
	Policy         string `yaml:"policy,omitempty"`
	Strict         *bool  `yaml:"strict,omitempty"`
	AllowOverMarks *bool  `yaml:"allow_over_marks,omitempty"`
	Format         string `yaml:"format,omitempty"`
	MaxSemesters   int    `yaml:"max_semesters,omitempty"`
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Dir        string `yaml:"dir,omitempty"`
	Format     string `yaml:"format,omitempty"`
	Compress   *bool  `yaml:"compress,omitempty"`
	AccountURL string `yaml:"account_url,omitempty"`
	Container  string `yaml:"container,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port int `yaml:"port,omitempty"`
	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit *float64 `yaml:"rate_limit,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .cgpa.yaml.
type ProjectConfig struct {
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Export   ExportConfig   `yaml:"export,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`

	// Policies holds custom grading scales keyed by name; each value is
	// decoded by the gradetable package.
	Policies map[string]map[string]any `yaml:"policies,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Defaults: DefaultsConfig{
			Policy:         DefaultPolicy,
			Strict:         boolPtr(false),
			AllowOverMarks: boolPtr(false),
			Format:         DefaultFormat,
			MaxSemesters:   DefaultMaxSemesters,
		},
		Export: ExportConfig{
			Dir:      DefaultExportDir,
			Format:   DefaultExportFormat,
			Compress: boolPtr(false),
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			RateLimit: floatPtr(DefaultRateLimit),
		},
	}
}

// Load finds .cgpa.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// findConfigFile walks up from dir looking for .cgpa.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) (string, []byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Defaults
	if src.Defaults.Policy != "" {
		dst.Defaults.Policy = src.Defaults.Policy
	}
	if src.Defaults.Strict != nil {
		dst.Defaults.Strict = src.Defaults.Strict
	}
	if src.Defaults.AllowOverMarks != nil {
		dst.Defaults.AllowOverMarks = src.Defaults.AllowOverMarks
	}
	if src.Defaults.Format != "" {
		dst.Defaults.Format = src.Defaults.Format
	}
	if src.Defaults.MaxSemesters != 0 {
		dst.Defaults.MaxSemesters = src.Defaults.MaxSemesters
	}

	// Export
	if src.Export.Dir != "" {
		dst.Export.Dir = src.Export.Dir
	}
	if src.Export.Format != "" {
		dst.Export.Format = src.Export.Format
	}
	if src.Export.Compress != nil {
		dst.Export.Compress = src.Export.Compress
	}
	if src.Export.AccountURL != "" {
		dst.Export.AccountURL = src.Export.AccountURL
	}
	if src.Export.Container != "" {
		dst.Export.Container = src.Export.Container
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.RateLimit != nil {
		dst.Server.RateLimit = src.Server.RateLimit
	}

	if len(src.Policies) > 0 {
		dst.Policies = src.Policies
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}
