package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	"github.com/KaramelBytes/revlens-cli/internal/parser"
	"github.com/KaramelBytes/revlens-cli/internal/utils"
)

// DirName is the per-user directory holding config.yaml and sessions.
const DirName = ".revlens"

// Global configuration structure.
type Global struct {
	SessionsDir string `mapstructure:"sessions_dir" yaml:"sessions_dir"`
	// Delimiter forces the CSV separator: "", ",", ";" or "tab".
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Word-frequency settings
	WordLimit     int                 `mapstructure:"word_limit" yaml:"word_limit"`
	MinWordLength int                 `mapstructure:"min_word_length" yaml:"min_word_length"`
	ExcludedWords []string            `mapstructure:"excluded_words" yaml:"excluded_words"`
	WordPolicy    string              `mapstructure:"word_policy" yaml:"word_policy"`
	WordStemming  bool                `mapstructure:"word_stemming" yaml:"word_stemming"`
	Categories    []analysis.Category `mapstructure:"categories" yaml:"categories,omitempty"`

	DefaultSortField     string `mapstructure:"default_sort_field" yaml:"default_sort_field"`
	DefaultSortDirection string `mapstructure:"default_sort_direction" yaml:"default_sort_direction"`

	// Export sink defaults
	ExportDriver string `mapstructure:"export_driver" yaml:"export_driver"`
	ExportDSN    string `mapstructure:"export_dsn" yaml:"export_dsn"`
}

// Dir returns ~/.revlens.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.revlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory is applied to the environment first.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("REVLENS")
	v.AutomaticEnv()

	wo := analysis.DefaultWordOptions()
	v.SetDefault("sessions_dir", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("word_limit", wo.Limit)
	v.SetDefault("min_word_length", wo.MinLength)
	v.SetDefault("excluded_words", wo.Excluded)
	v.SetDefault("word_policy", string(analysis.PolicyCarryOver))
	v.SetDefault("word_stemming", false)
	v.SetDefault("categories", []analysis.Category{})
	v.SetDefault("default_sort_field", string(analysis.SortDate))
	v.SetDefault("default_sort_direction", string(analysis.Desc))
	v.SetDefault("export_driver", "sqlite")
	v.SetDefault("export_dsn", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.SessionsDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.SessionsDir = filepath.Join(dir, "sessions")
	} else {
		p, err := utils.ExpandHome(c.SessionsDir)
		if err != nil {
			return nil, err
		}
		c.SessionsDir = p
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the enumerated keys.
func (c *Global) Validate() error {
	if _, err := analysis.ParseWordPolicy(c.WordPolicy); err != nil {
		return fmt.Errorf("word_policy: %w", err)
	}
	if _, err := c.DefaultSort(); err != nil {
		return err
	}
	if _, err := parser.ParseDelimiter(c.Delimiter); err != nil {
		return fmt.Errorf("delimiter: %w", err)
	}
	return nil
}

// WordOptions maps the word settings onto the analyzer options.
func (c *Global) WordOptions() analysis.WordOptions {
	return analysis.WordOptions{
		Limit:     c.WordLimit,
		MinLength: c.MinWordLength,
		Excluded:  c.ExcludedWords,
		Stem:      c.WordStemming,
	}
}

// CategoryTable returns the configured keyword table, or the built-in one.
func (c *Global) CategoryTable() analysis.Categories {
	if len(c.Categories) == 0 {
		return analysis.DefaultCategories()
	}
	return analysis.Categories(c.Categories).Normalized()
}

// Policy returns the configured word policy.
func (c *Global) Policy() analysis.WordPolicy {
	p, err := analysis.ParseWordPolicy(c.WordPolicy)
	if err != nil {
		return analysis.PolicyCarryOver
	}
	return p
}

// DefaultSort returns the configured initial sort.
func (c *Global) DefaultSort() (analysis.SortSpec, error) {
	s := analysis.DefaultSort()
	if c.DefaultSortField != "" {
		f, err := analysis.ParseSortField(c.DefaultSortField)
		if err != nil {
			return s, fmt.Errorf("default_sort_field: %w", err)
		}
		s.Field = f
	}
	if c.DefaultSortDirection != "" {
		d, err := analysis.ParseDirection(c.DefaultSortDirection)
		if err != nil {
			return s, fmt.Errorf("default_sort_direction: %w", err)
		}
		s.Direction = d
	}
	return s, nil
}

// Pipeline builds an analysis pipeline from the configuration.
func (c *Global) Pipeline() *analysis.Pipeline {
	return analysis.NewPipeline(c.CategoryTable(), c.WordOptions(), c.Policy())
}
