package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/logger"
)

// DefaultEnvPrefix is the prefix of environment variables read by LoadConfig.
const DefaultEnvPrefix = "LINQ"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a tool.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(toolName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.first(configSearchPaths(toolName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.first(envSearchPaths(toolName))
	}

	return resolved
}

func (cr *Resolver) first(paths []string) string {
	for _, path := range paths {
		if cr.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// configSearchPaths lists the config.yml locations checked for a tool.
func configSearchPaths(toolName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", toolName),
		fmt.Sprintf("../cmd/%s/config.yml", toolName),
		fmt.Sprintf("../../cmd/%s/config.yml", toolName),
		"./config/config.yml",
		"../config/config.yml",
		"./config.yml",
	}
}

// envSearchPaths lists the .env locations checked for a tool.
func envSearchPaths(toolName string) []string {
	var paths []string
	for _, name := range []string{".env." + toolName, ".env"} {
		paths = append(paths,
			fmt.Sprintf("./cmd/%s/%s", toolName, name),
			fmt.Sprintf("./config/%s", name),
			"./"+name,
			"../"+name,
		)
	}
	return paths
}

// LoaderConfig holds dependencies and optional overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	EnvPrefix  string
	Flags      *pflag.FlagSet
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix overrides DefaultEnvPrefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// WithFlags applies parsed command-line flags on top of file and
// environment values. Flag names map to config keys through FlagKey.
func WithFlags(fs *pflag.FlagSet) LoaderOption {
	return func(lc *LoaderConfig) { lc.Flags = fs }
}

// LoadConfig loads configuration for a tool into the provided cfg struct.
// It searches for config.yml and .env files in standard locations, binds
// environment variables and flags, and unmarshals the result into cfg.
func LoadConfig(toolName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{EnvPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(toolName, lc)

	return loadFromResolvedFiles(toolName, cfg, files, lc)
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(toolName string, cfg interface{}, files ResolvedFiles, lc LoaderConfig) error {
	v := viper.New()
	log := logger.Get("config")

	// 1. YAML config is the base layer
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.InvalidFormat(files.ConfigFile, err)
		}
		log.Debug("config file loaded", logger.Fields(logger.FieldSource, files.ConfigFile))
	}

	// 2. .env values are exported before environment binding
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load .env file", logger.Fields(logger.FieldSource, files.EnvFile, logger.FieldError, err.Error()))
		}
	}

	// 3. Prefixed environment variables
	autoBindEnvVars(v, lc.EnvPrefix)

	// 4. Flags set on the command line win over everything else
	if lc.Flags != nil {
		if err := bindFlags(v, lc.Flags); err != nil {
			return fmt.Errorf("failed to bind flags for %s: %w", toolName, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for %s: %w", toolName, err)
	}

	return nil
}

// flagKeys maps flag names whose config key differs from the flag name.
var flagKeys = map[string]string{
	"input":         "query.input",
	"recipe":        "query.recipe",
	"pretty":        "query.pretty",
	"limit":         "query.limit",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
	"telemetry":     "telemetry.enabled",
	"otlp-endpoint": "telemetry.endpoint",
}

// FlagKey returns the config key a flag is bound to.
func FlagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// bindFlags binds every flag so its default is visible to Unmarshal, and
// sets the flags changed on the command line so they override env values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		key := FlagKey(f.Name)
		if f.Changed {
			v.Set(key, f.Value.String())
			return
		}
		if v.IsSet(key) {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	return bindErr
}

// autoBindEnvVars binds PREFIX_* environment variables to Viper by converting
// the rest of the name to the possible nested key formats.
func autoBindEnvVars(v *viper.Viper, prefix string) {
	want := strings.ToUpper(prefix) + "_"
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, want) {
			continue
		}
		for _, variant := range generateEnvKeyVariants(strings.TrimPrefix(key, want)) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	LOGGING_LEVEL -> [logging_level, logging.level]
//	TELEMETRY_SAMPLE_RATE -> [telemetry_sample_rate, telemetry.sample.rate, telemetry.sample_rate]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Progressive nesting: a.b_c, a.b.c_d, ...
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
