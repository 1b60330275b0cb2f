package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".arxiv-daily"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file structure.
// Every field is optional; CLI flags take precedence over file values.
type File struct {
	// Categories overrides the default arXiv category list.
	Categories []string `yaml:"categories"`

	// Model overrides the default summarization model.
	Model string `yaml:"model"`

	// MaxResults overrides the per-category result cap.
	MaxResults int `yaml:"max_results"`

	// Timeout overrides the retrieval HTTP timeout.
	Timeout time.Duration `yaml:"timeout"`

	// OutputDir overrides the report output directory.
	OutputDir string `yaml:"output_dir"`

	// Classifiers overrides the classifier list given to the summarizer.
	Classifiers []string `yaml:"classifiers"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error based on whether the config file
// path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .arxiv-daily in the current directory
// 3. Look for .arxiv-daily in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges file values into the config.
// Only fields actually set in the file override the current values,
// so flag-provided settings survive.
func (c *Config) Apply(file *File) {
	if file == nil {
		return
	}
	c.File = file

	if len(file.Categories) > 0 {
		c.Categories = file.Categories
	}
	if file.Model != "" {
		c.Model = file.Model
	}
	if file.MaxResults > 0 {
		c.MaxResults = file.MaxResults
	}
	if file.Timeout > 0 {
		c.Timeout = file.Timeout
	}
	if file.OutputDir != "" {
		c.OutputDir = file.OutputDir
	}
}
