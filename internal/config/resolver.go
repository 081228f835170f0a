package config

import (
	"os"

	"github.com/lbcm/coursebuild/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value and where it came from.
type ResolvedValue struct {
	// Key is the configuration key.
	Key string
	// Value is the resolved value.
	Value string
	// Source indicates where the value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions contains the raw inputs for resolution.
type ResolveOptions struct {
	// ConfigFlag is the --config flag value.
	ConfigFlag string
	// ModulesDirFlag is the --modules-dir flag value.
	ModulesDirFlag string
	// OutputDirFlag is the --output-dir flag value.
	OutputDirFlag string
	// Config is the loaded configuration; nil means defaults only.
	Config *Config
}

// ResolvedConfig holds every value resolved by ResolveAll.
type ResolvedConfig struct {
	ConfigPath ResolvedValue
	ModulesDir ResolvedValue
	OutputDir  ResolvedValue
}

// Values returns the resolved values in a stable order.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.ConfigPath, r.ModulesDir, r.OutputDir}
}

// resolveString applies the precedence flag > env > config > default.
// configValue equal to the default is reported as SourceDefault.
func resolveString(key, flagValue, envVar, configValue, defaultValue string) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := ""
	if envVar != "" {
		envValue = os.Getenv(envVar)
	}
	fileValue := ""
	if configValue != "" && configValue != defaultValue && configValue != envValue {
		fileValue = configValue
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, envValue},
		{SourceConfig, fileValue},
		{SourceDefault, defaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) COURSE_CONFIG env, (3) ./config.yaml default
func ResolveConfigPath(flagValue string) ResolvedValue {
	return resolveString("config", flagValue, "COURSE_CONFIG", "", DefaultConfigFile)
}

// ResolveAll resolves the directory settings that commands can override.
func ResolveAll(opts ResolveOptions) *ResolvedConfig {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaults := DefaultConfig()

	return &ResolvedConfig{
		ConfigPath: ResolveConfigPath(opts.ConfigFlag),
		ModulesDir: resolveString("modulesDir", opts.ModulesDirFlag, "COURSE_MODULES_DIR",
			cfg.Course.ModulesDir, defaults.Course.ModulesDir),
		OutputDir: resolveString("outputDir", opts.OutputDirFlag, "COURSE_OUTPUT_DIR",
			cfg.Course.OutputDir, defaults.Course.OutputDir),
	}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
