package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string `validate:"omitempty,oneof=table json yaml wide"`

	// Config file
	ConfigFile string

	// File locations. Empty paths default to the standard names inside DataDir.
	DataDir           string `validate:"required"`
	DatasetPath       string
	SchemaPath        string
	TagsPath          string
	TypesPath         string
	IssueTemplatePath string
	ReadmePath        string

	// Submission handling
	Label   string `validate:"required"`
	Matcher string `validate:"required,oneof=field strict"`

	// Logging configuration
	LogLevel  string
	LogFormat string `validate:"required,oneof=auto json console"`
	LogOutput string `validate:"required"`
}

var configValidator = validator.New()

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. CURATOR_* environment variables
// 3. .env files
// 4. Config file (.curator.yaml in the working or home directory)
// 5. Defaults
//
// A non-empty configFile replaces the CURATOR_CONFIG lookup and the search
// of the standard locations.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", constants.DefaultDataDir)
	v.SetDefault("label", constants.SubmissionLabel)
	v.SetDefault("matcher", "field")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".curator")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:           v.GetString("data_dir"),
		DatasetPath:       v.GetString("dataset"),
		SchemaPath:        v.GetString("schema"),
		TagsPath:          v.GetString("tags"),
		TypesPath:         v.GetString("types"),
		IssueTemplatePath: v.GetString("issue_template"),
		ReadmePath:        v.GetString("readme"),

		Label:   v.GetString("label"),
		Matcher: strings.ToLower(v.GetString("matcher")),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

// Validate checks the configuration and reports every invalid field.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.NewConfigError("config", err.Error(), err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return errors.NewConfigError("config", strings.Join(msgs, "; "), err)
}

// Paths resolves the file locations, filling unset ones from DataDir.
func (c *Config) Paths() application.Paths {
	p := application.PathsIn(c.DataDir)
	set := func(dst *string, src string) {
		if src != "" {
			*dst = filepath.Clean(src)
		}
	}
	set(&p.Dataset, c.DatasetPath)
	set(&p.Schema, c.SchemaPath)
	set(&p.Tags, c.TagsPath)
	set(&p.Types, c.TypesPath)
	set(&p.IssueTemplate, c.IssueTemplatePath)
	set(&p.Readme, c.ReadmePath)
	return p
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, dataDir string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win; godotenv never
// overrides a variable that is already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
