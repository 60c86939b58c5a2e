package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/mdbundle/internal/convert"
	"github.com/gorewood/mdbundle/internal/output"
	"github.com/gorewood/mdbundle/internal/summary"
)

// ProjectFile is the per-project config file, looked up in the working directory.
const ProjectFile = ".mdbundle.yaml"

// DefaultOutput is the combined document written when none is configured.
const DefaultOutput = "combined_documentation.docx"

// Environment variables that override file configuration.
const (
	EnvSummary   = "MDBUNDLE_SUMMARY"
	EnvOutput    = "MDBUNDLE_OUTPUT"
	EnvConverter = "MDBUNDLE_CONVERTER"
	EnvPDFEngine = "MDBUNDLE_PDF_ENGINE"
)

// Config is everything a bundle run needs.
type Config struct {
	// Summary is the index file whose links name the documents to combine.
	Summary string `yaml:"summary" json:"summary"`
	// Output is the combined document the converter writes.
	Output string `yaml:"output" json:"output"`
	// Converter is the converter program name or path.
	Converter string `yaml:"converter" json:"converter"`
	// PDFEngine is passed to the converter as --pdf-engine.
	PDFEngine string `yaml:"pdf_engine" json:"pdf_engine"`
	// Strict turns a nonzero converter exit into an error.
	Strict bool `yaml:"strict" json:"strict"`
	// DryRun prints the converter command without running it.
	DryRun bool `yaml:"-" json:"dry_run"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Summary:   summary.DefaultFile,
		Output:    DefaultOutput,
		Converter: convert.DefaultProgram,
		PDFEngine: convert.DefaultEngine,
	}
}

// Load resolves configuration from, in increasing priority: defaults, the
// global config file, the project config file and the environment.
func Load() (Config, error) {
	cfg := Default()
	for _, path := range []string{GlobalFile(), ProjectFile} {
		if err := cfg.MergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// MergeFile overlays the keys present in the YAML file at path onto c.
// A missing file (or empty path) is not an error.
func (c *Config) MergeFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return output.NewSystemErrorWithCause(fmt.Sprintf("reading config %s: %v", path, err), err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &output.ExitError{
			Code:    output.ExitUserError,
			Message: fmt.Sprintf("parsing config %s: %v", path, err),
			Cause:   err,
		}
	}
	return nil
}

// ApplyEnv overrides fields from MDBUNDLE_* variables that are set and non-empty.
func (c *Config) ApplyEnv(getenv func(string) string) {
	overrides := []struct {
		key   string
		field *string
	}{
		{EnvSummary, &c.Summary},
		{EnvOutput, &c.Output},
		{EnvConverter, &c.Converter},
		{EnvPDFEngine, &c.PDFEngine},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(getenv(o.key)); v != "" {
			*o.field = v
		}
	}
}

// Validate checks that every required field is set.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"summary", c.Summary},
		{"output", c.Output},
		{"converter", c.Converter},
		{"pdf engine", c.PDFEngine},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return output.NewUserError(r.name + " must not be empty")
		}
	}
	return nil
}
