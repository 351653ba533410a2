// Package config loads CLI settings from defaults, a YAML config file,
// CSV2JSON_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"csv2json/utils"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "CSV2JSON_"

// FileNames are looked up in the working directory when no config file is
// given explicitly.
var FileNames = []string{"csv2json.yaml", "csv2json.yml"}

const (
	DefaultDelimiter = ";"
	DefaultEncoding  = "utf-8"
	DefaultIndent    = 4
	DefaultParallel  = 4
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds all CLI settings.
type Config struct {
	Delimiter   string   `koanf:"delimiter"`
	Encoding    string   `koanf:"encoding"`
	SkipRows    int      `koanf:"skip_rows"`
	Sheet       string   `koanf:"sheet"`
	StripNulls  bool     `koanf:"strip_nulls"`
	InferTypes  bool     `koanf:"infer_types"`
	DeepNesting bool     `koanf:"deep_nesting"`
	Indent      int      `koanf:"indent"`
	SchemaDirs  []string `koanf:"schema_dirs"`
	Parallel    int      `koanf:"parallel"`
	LogLevel    string   `koanf:"log_level"`
	LogFormat   string   `koanf:"log_format"`

	// File is the config file that was read, empty when none was found.
	File string `koanf:"-"`
}

func defaults() map[string]any {
	return map[string]any{
		"delimiter":    DefaultDelimiter,
		"encoding":     DefaultEncoding,
		"skip_rows":    0,
		"sheet":        "",
		"strip_nulls":  false,
		"infer_types":  true,
		"deep_nesting": false,
		"indent":       DefaultIndent,
		"schema_dirs":  []string{"."},
		"parallel":     DefaultParallel,
		"log_level":    DefaultLogLevel,
		"log_format":   DefaultLogFormat,
	}
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(defaults(), "."), nil)

	var cfg Config
	_ = k.Unmarshal("", &cfg)

	return &cfg
}

// findConfigFile returns explicit, or the first of FileNames present in
// the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	for _, name := range FileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	return ""
}

// Load builds the configuration. Only flags the user actually set override
// lower layers. Flag names are kebab-case versions of the config keys;
// --no-infer negates infer_types, --verbose and --debug set log_level.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// CSV2JSON_SKIP_ROWS -> skip_rows
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}

			switch f.Name {
			case "no-infer":
				on, _ := flags.GetBool(f.Name)
				return "infer_types", !on
			case "debug", "verbose":
				level := map[string]string{"debug": "debug", "verbose": "info"}[f.Name]
				debug, _ := flags.GetBool("debug")
				if on, _ := flags.GetBool(f.Name); on && (f.Name == "debug" || !debug) {
					return "log_level", level
				}

				return "", nil
			}

			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.File = used
	cfg.SchemaDirs = splitList(cfg.SchemaDirs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// splitList expands comma or path-list separated entries, as they arrive
// from environment variables.
func splitList(in []string) []string {
	var out []string

	for _, entry := range in {
		for _, part := range strings.FieldsFunc(entry, func(r rune) bool {
			return r == ',' || r == filepath.ListSeparator
		}) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		errs = append(errs, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter))
	}

	if !utils.IsInRange(0, c.Indent, 8) {
		errs = append(errs, fmt.Errorf("indent must be between 0 and 8, got %d", c.Indent))
	}

	if !utils.IsInRange(1, c.Parallel, 64) {
		errs = append(errs, fmt.Errorf("parallel must be between 1 and 64, got %d", c.Parallel))
	}

	if c.SkipRows < 0 {
		errs = append(errs, fmt.Errorf("skip_rows must not be negative, got %d", c.SkipRows))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
