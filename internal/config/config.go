package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/corrgraph/internal/utils"
)

const (
	envPrefix = "CORRGRAPH"
	dirName   = ".corrgraph"
)

// Global configuration structure.
type Global struct {
	// Presentation defaults for network builds.
	NodeSize             string  `mapstructure:"node_size" yaml:"node_size" validate:"oneof=small medium large"`
	Layout               string  `mapstructure:"layout" yaml:"layout" validate:"oneof=force circle grid"`
	ShowLabels           bool    `mapstructure:"show_labels" yaml:"show_labels"`
	CorrelationThreshold float64 `mapstructure:"correlation_threshold" yaml:"correlation_threshold" validate:"gte=0,lte=1"`
	CanvasWidth          int     `mapstructure:"canvas_width" yaml:"canvas_width" validate:"min=50,max=10000"`
	CanvasHeight         int     `mapstructure:"canvas_height" yaml:"canvas_height" validate:"min=50,max=10000"`
	OutputFormat         string  `mapstructure:"output_format" yaml:"output_format" validate:"oneof=svg html json"`

	// Rows kept from each dataset; 0 keeps all.
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows" validate:"gte=0"`

	WorkspacesDir string `mapstructure:"workspaces_dir" yaml:"workspaces_dir"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"node_size", "layout", "show_labels", "correlation_threshold",
	"canvas_width", "canvas_height", "output_format", "sample_rows",
	"workspaces_dir", "log_level",
}

// Defaults returns the built-in configuration. WorkspacesDir is resolved
// by Load.
func Defaults() Global {
	return Global{
		NodeSize:             "medium",
		Layout:               "force",
		ShowLabels:           true,
		CorrelationThreshold: 0.3,
		CanvasWidth:          400,
		CanvasHeight:         400,
		OutputFormat:         "svg",
		SampleRows:           50,
		LogLevel:             "warn",
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("node_size", d.NodeSize)
	v.SetDefault("layout", d.Layout)
	v.SetDefault("show_labels", d.ShowLabels)
	v.SetDefault("correlation_threshold", d.CorrelationThreshold)
	v.SetDefault("canvas_width", d.CanvasWidth)
	v.SetDefault("canvas_height", d.CanvasHeight)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("workspaces_dir", d.WorkspacesDir)
	v.SetDefault("log_level", d.LogLevel)
}

// Validate checks value ranges and enumerations.
func (c *Global) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Get returns the string form of a key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "node_size":
		return c.NodeSize, nil
	case "layout":
		return c.Layout, nil
	case "show_labels":
		return strconv.FormatBool(c.ShowLabels), nil
	case "correlation_threshold":
		return strconv.FormatFloat(c.CorrelationThreshold, 'f', -1, 64), nil
	case "canvas_width":
		return strconv.Itoa(c.CanvasWidth), nil
	case "canvas_height":
		return strconv.Itoa(c.CanvasHeight), nil
	case "output_format":
		return c.OutputFormat, nil
	case "sample_rows":
		return strconv.Itoa(c.SampleRows), nil
	case "workspaces_dir":
		return c.WorkspacesDir, nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val into key and validates the result. c is unchanged on error.
func (c *Global) Set(key, val string) error {
	next := *c
	val = strings.TrimSpace(val)
	switch key {
	case "node_size":
		next.NodeSize = strings.ToLower(val)
	case "layout":
		next.Layout = strings.ToLower(val)
	case "output_format":
		next.OutputFormat = strings.ToLower(val)
	case "log_level":
		next.LogLevel = strings.ToLower(val)
	case "workspaces_dir":
		next.WorkspacesDir = val
	case "show_labels":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %q", key, val)
		}
		next.ShowLabels = b
	case "correlation_threshold":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid float for %s: %w", key, err)
		}
		next.CorrelationThreshold = f
	case "canvas_width", "canvas_height", "sample_rows":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %w", key, err)
		}
		switch key {
		case "canvas_width":
			next.CanvasWidth = i
		case "canvas_height":
			next.CanvasHeight = i
		default:
			next.SampleRows = i
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the configuration as YAML to cfgFile, or to
// ~/.corrgraph/config.yaml when cfgFile is empty.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// A missing file is fine; a file that exists but does not parse is not.
	if err := v.ReadInConfig(); err != nil {
		if used := v.ConfigFileUsed(); used != "" {
			if _, statErr := os.Stat(used); statErr == nil {
				return nil, fmt.Errorf("read config %s: %w", used, err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.WorkspacesDir == "" {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		c.WorkspacesDir = filepath.Join(dir, "workspaces")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
