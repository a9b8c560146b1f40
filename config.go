package docmerge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied to empty Config fields.
const (
	DefaultOutputName     = "output"
	DefaultDataFolder     = "./data"
	DefaultTemplateFolder = "templates"
	DefaultOutputFolder   = "output"

	// DocumentExt is the extension of both templates and rendered documents.
	DocumentExt = "docx"
)

// Config is fixed at construction time.
type Config struct {
	ExcelPath         string `yaml:"excel_path"`
	TemplateColumn    string `yaml:"template_column"`     // required, selects the template per row
	OutputColumn      string `yaml:"output_column"`       // optional, names the output file per row
	DefaultOutputName string `yaml:"default_output_name"` // base name when OutputColumn yields nothing
	DataFolder        string `yaml:"data_folder"`
	TemplateFolder    string `yaml:"template_folder"` // subfolder of DataFolder
	OutputFolder      string `yaml:"output_folder"`   // subfolder of DataFolder
}

// DefaultConfig returns a Config with every optional field set to its default.
func DefaultConfig() Config {
	return Config{
		DefaultOutputName: DefaultOutputName,
		DataFolder:        DefaultDataFolder,
		TemplateFolder:    DefaultTemplateFolder,
		OutputFolder:      DefaultOutputFolder,
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that the required fields are set.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ExcelPath) == "" {
		errs = append(errs, errors.New("excel_path is required"))
	}
	if strings.TrimSpace(c.TemplateColumn) == "" {
		errs = append(errs, errors.New("template_column is required"))
	}
	return errors.Join(errs...)
}

func (c Config) withDefaults() Config {
	if c.DefaultOutputName == "" {
		c.DefaultOutputName = DefaultOutputName
	}
	if c.DataFolder == "" {
		c.DataFolder = DefaultDataFolder
	}
	if c.TemplateFolder == "" {
		c.TemplateFolder = DefaultTemplateFolder
	}
	if c.OutputFolder == "" {
		c.OutputFolder = DefaultOutputFolder
	}
	return c
}

// TemplateDir is the folder templates are resolved from.
func (c Config) TemplateDir() string {
	c = c.withDefaults()
	return filepath.Join(c.DataFolder, c.TemplateFolder)
}

// OutputDir is the folder rendered documents are written to.
func (c Config) OutputDir() string {
	c = c.withDefaults()
	return filepath.Join(c.DataFolder, c.OutputFolder)
}
