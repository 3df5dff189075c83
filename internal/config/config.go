package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

// EnvPrefix is the prefix for environment overrides, e.g. AIC_TEMPLATE.
const EnvPrefix = "AIC"

// Global configuration structure.
type Global struct {
	Template     string `mapstructure:"template" yaml:"template"`
	TemplatesDir string `mapstructure:"templates_dir" yaml:"templates_dir"`

	// Recommendation thresholds, in estimated tokens
	ArchiveThreshold   int `mapstructure:"archive_threshold" yaml:"archive_threshold"`
	SplitThreshold     int `mapstructure:"split_threshold" yaml:"split_threshold"`
	LargeFileThreshold int `mapstructure:"large_file_threshold" yaml:"large_file_threshold"`

	// JSON file merged over the built-in model catalog
	ModelsCatalog string `mapstructure:"models_catalog" yaml:"models_catalog"`

	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"template",
	"templates_dir",
	"archive_threshold",
	"split_threshold",
	"large_file_threshold",
	"models_catalog",
	"no_color",
}

// Dir returns ~/.aic.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".aic"), nil
}

// Path resolves the config file location. An explicit cfgFile wins.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		Template:           "default",
		ArchiveThreshold:   50000,
		SplitThreshold:     100000,
		LargeFileThreshold: 10000,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("template", d.Template)
	v.SetDefault("templates_dir", d.TemplatesDir)
	v.SetDefault("archive_threshold", d.ArchiveThreshold)
	v.SetDefault("split_threshold", d.SplitThreshold)
	v.SetDefault("large_file_threshold", d.LargeFileThreshold)
	v.SetDefault("models_catalog", d.ModelsCatalog)
	v.SetDefault("no_color", d.NoColor)
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.aic/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
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
// Precedence: env > config file > defaults. A missing config file is not an error.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

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
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns a single key from its string form, validating numeric and boolean keys.
func (c *Global) Set(key, value string) error {
	switch key {
	case "template":
		c.Template = value
	case "templates_dir":
		c.TemplatesDir = value
	case "models_catalog":
		c.ModelsCatalog = value
	case "archive_threshold", "split_threshold", "large_file_threshold":
		n, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		switch key {
		case "archive_threshold":
			c.ArchiveThreshold = n
		case "split_threshold":
			c.SplitThreshold = n
		default:
			c.LargeFileThreshold = n
		}
	case "no_color":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.NoColor = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Get returns the string form of a key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "template":
		return c.Template, nil
	case "templates_dir":
		return c.TemplatesDir, nil
	case "archive_threshold":
		return fmt.Sprint(c.ArchiveThreshold), nil
	case "split_threshold":
		return fmt.Sprint(c.SplitThreshold), nil
	case "large_file_threshold":
		return fmt.Sprint(c.LargeFileThreshold), nil
	case "models_catalog":
		return c.ModelsCatalog, nil
	case "no_color":
		return fmt.Sprint(c.NoColor), nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}

func parseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", value)
	}
	return b, nil
}
