package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "markup.json"

	// DefaultIndent is the default document body indentation.
	DefaultIndent = render.DefaultIndent

	// DefaultOutputDir is the default document output directory.
	DefaultOutputDir = "."

	// DefaultSink is the default document sink.
	DefaultSink = "disk"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "markup"
)

// Config represents the complete markup.json configuration.
type Config struct {
	// Render contains text rendering configuration.
	Render RenderConfig `json:"render"`

	// Output contains document output configuration.
	Output OutputConfig `json:"output"`

	// S3 configures the s3 sink.
	S3 S3Config `json:"s3,omitempty"`

	// Clone contains clone policy configuration.
	Clone CloneConfig `json:"clone"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains rendering settings.
type RenderConfig struct {
	// Indent is the number of spaces before the document body.
	Indent *int `json:"indent,omitempty"`
}

// OutputConfig contains document output settings.
type OutputConfig struct {
	// Dir is the directory the disk sink writes into.
	Dir string `json:"dir,omitempty"`

	// File is the document file name.
	File string `json:"file,omitempty"`

	// Sink is "disk" or "s3".
	Sink string `json:"sink,omitempty"`
}

// S3Config contains S3 sink settings.
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// CloneConfig contains clone settings.
type CloneConfig struct {
	// Policy is "ids" or "all".
	Policy string `json:"policy,omitempty"`

	// SuffixMax is the upper bound of random clone suffixes.
	SuffixMax int `json:"suffixMax,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Namespace is the Prometheus namespace.
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	indent := DefaultIndent
	return &Config{
		Render: RenderConfig{
			Indent: &indent,
		},
		Output: OutputConfig{
			Dir:  DefaultOutputDir,
			File: render.DocumentName,
			Sink: DefaultSink,
		},
		Clone: CloneConfig{
			Policy:    string(markup.CloneIDs),
			SuffixMax: markup.DefaultSuffixMax,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for markup.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M020").
				WithDetail("No markup.json found in " + filepath.Dir(path)).
				WithSuggestion("Create markup.json or run without --config to use defaults").
				Wrap(err)
		}
		return nil, errors.New("M020").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("M020").
			WithDetail("Failed to parse markup.json: " + err.Error()).
			WithSuggestion("Check that markup.json is valid JSON").
			WithPath(path).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads markup.json from dir, or returns the defaults when
// the directory has none.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("M020").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M020").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Render.Indent == nil {
		indent := DefaultIndent
		c.Render.Indent = &indent
	}

	// Output
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.File == "" {
		c.Output.File = render.DocumentName
	}
	if c.Output.Sink == "" {
		c.Output.Sink = DefaultSink
	}

	// Clone
	if c.Clone.Policy == "" {
		c.Clone.Policy = string(markup.CloneIDs)
	}
	if c.Clone.SuffixMax == 0 {
		c.Clone.SuffixMax = markup.DefaultSuffixMax
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if indent := c.IndentValue(); indent < 0 || indent > 64 {
		return invalid("render.indent", "Indent must be between 0 and 64")
	}

	switch c.Output.Sink {
	case "disk":
	case "s3":
		if c.S3.Bucket == "" {
			return invalid("s3.bucket", "The s3 sink needs a bucket").
				WithSuggestion(`Set "s3": {"bucket": "..."} or use "sink": "disk"`)
		}
	default:
		return invalid("output.sink", "Sink must be \"disk\" or \"s3\", got "+quote(c.Output.Sink))
	}

	if c.Output.File == "" || strings.ContainsAny(c.Output.File, `/\`) {
		return invalid("output.file", "File must be a plain file name, got "+quote(c.Output.File))
	}

	switch markup.ClonePolicy(c.Clone.Policy) {
	case markup.CloneIDs, markup.CloneAll:
	default:
		return invalid("clone.policy", "Policy must be \"ids\" or \"all\", got "+quote(c.Clone.Policy))
	}
	if c.Clone.SuffixMax < 1 {
		return invalid("clone.suffixMax", "SuffixMax must be at least 1")
	}
	return nil
}

func invalid(field, detail string) *errors.MarkupError {
	return errors.New("M021").WithDetail(detail).WithPath(field)
}

func quote(s string) string {
	return `"` + s + `"`
}

// IndentValue returns the configured body indentation.
func (c *Config) IndentValue() int {
	if c.Render.Indent == nil {
		return DefaultIndent
	}
	return *c.Render.Indent
}

// OutputPath returns the absolute path to the document output directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Output.Dir) {
		return c.Output.Dir
	}
	return filepath.Join(c.Dir(), c.Output.Dir)
}

// ArenaOptions returns the arena options implied by the clone settings.
func (c *Config) ArenaOptions() []markup.Option {
	return []markup.Option{
		markup.WithClonePolicy(markup.ClonePolicy(c.Clone.Policy)),
		markup.WithSuffixMax(c.Clone.SuffixMax),
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing markup.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("M020").
				WithDetail("No markup.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
