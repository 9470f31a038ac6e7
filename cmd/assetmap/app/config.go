package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/assetmap/pkg/config"
	"github.com/agentstation/assetmap/pkg/constants"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/logging"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// explicitLevel is set when --log-level was given
	explicitLevel bool

	// Run holds the reconciliation settings
	Run *config.Run
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables (ASSETMAP_ prefix)
//  3. .env files
//  4. Config file (configFile, or .assetmap.yaml in the working or home directory)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v, config.Default())

	if configFile == "" {
		configFile = os.Getenv(constants.EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(".assetmap")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicitly named file must exist
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, &errors.ConfigError{Component: "config file", Message: err.Error(), Err: err}
		}
	}

	run := &config.Run{}
	if err := v.Unmarshal(run); err != nil {
		return nil, &errors.ConfigError{Component: "config", Message: "failed to decode settings", Err: err}
	}

	logEnv := logging.ConfigFromEnv()
	return &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color") || logEnv.NoColor,
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),
		LogLevel:   logEnv.Level,
		LogFormat:  logEnv.Format,
		LogOutput:  logEnv.Output,
		Run:        run,
	}, nil
}

// setDefaults registers every run setting with viper so environment
// variables can override keys that no config file mentions.
func setDefaults(v *viper.Viper, d *config.Run) {
	v.SetDefault("input_dir", d.InputDir)
	v.SetDefault("master", d.MasterPath)
	v.SetDefault("output", d.OutputPath)
	v.SetDefault("precedence", d.Precedence)
	v.SetDefault("purge_policy", d.PurgePolicy)
	v.SetDefault("purge_pattern", d.PurgePattern)
	v.SetDefault("summary_file", d.SummaryFile)
	v.SetDefault("summary_title", d.SummaryTitle)
	v.SetDefault("history_db", d.HistoryDB)
	v.SetDefault("dry_run", d.DryRun)

	for name, s := range map[string]config.Source{
		"vmware":   d.Sources.VMware,
		"proxmox":  d.Sources.Proxmox,
		"coverage": d.Sources.Coverage,
	} {
		prefix := "sources." + name + "."
		v.SetDefault(prefix+"enabled", s.Enabled)
		v.SetDefault(prefix+"path", s.Path)
		v.SetDefault(prefix+"patterns", s.Patterns)
		v.SetDefault(prefix+"skip_rows", s.SkipRows)
		v.SetDefault(prefix+"sheet", s.Sheet)
		v.SetDefault(prefix+"delimiter", s.Delimiter)
		v.SetDefault(prefix+"name_column", s.NameColumn)
		v.SetDefault(prefix+"location_passthrough", s.LocationPassthrough)
		v.SetDefault(prefix+"client_os_pattern", s.ClientOSPattern)
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		c.explicitLevel = true
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden, and
// .env.local is loaded first so its values take precedence over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
