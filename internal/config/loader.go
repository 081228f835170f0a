package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable prefix for coursebuild configuration.
const envPrefix = "COURSE"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v       *viper.Viper
	envFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	setDefaults(v, DefaultConfig())

	// Set up environment variable bindings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind the short environment names
	_ = v.BindEnv("course.modulesDir", "COURSE_MODULES_DIR")
	_ = v.BindEnv("course.outputDir", "COURSE_OUTPUT_DIR")
	_ = v.BindEnv("course.tempDir", "COURSE_TEMP_DIR")
	_ = v.BindEnv("latex.compiler", "COURSE_COMPILER")
	_ = v.BindEnv("pdf.backend", "COURSE_PDF_BACKEND")
	_ = v.BindEnv("log.level", "COURSE_LOG_LEVEL")

	return &Loader{v: v, envFile: DefaultEnvFile}
}

// WithEnvFile sets the dotenv file loaded before environment lookup.
// An empty path disables dotenv loading.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("course.title", d.Course.Title)
	v.SetDefault("course.author", d.Course.Author)
	v.SetDefault("course.modulesDir", d.Course.ModulesDir)
	v.SetDefault("course.outputDir", d.Course.OutputDir)
	v.SetDefault("course.tempDir", d.Course.TempDir)

	v.SetDefault("latex.compiler", d.Latex.Compiler)
	v.SetDefault("latex.documentClass", d.Latex.DocumentClass)
	v.SetDefault("latex.packages", d.Latex.Packages)
	v.SetDefault("latex.passes", d.Latex.Passes)
	v.SetDefault("latex.timeout", d.Latex.Timeout)
	v.SetDefault("latex.probeTimeout", d.Latex.ProbeTimeout)

	v.SetDefault("build.cleanupTemp", d.Build.CleanupTemp)
	v.SetDefault("build.mergePdfs", d.Build.MergePDFs)
	v.SetDefault("build.combinedName", d.Build.CombinedName)

	v.SetDefault("pdf.backend", d.PDF.Backend)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values; a missing file
// yields the defaults.
func (l *Loader) Load(configFile string) (*Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	if configFile == "" {
		configFile = GetConfigFile()
	}

	// Expand ~ in path
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults + env vars
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile pre-loads the dotenv file. Existing variables are not overridden.
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if _, err := os.Stat(l.envFile); err != nil {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		return fmt.Errorf("loading %s: %w", l.envFile, err)
	}
	return nil
}
