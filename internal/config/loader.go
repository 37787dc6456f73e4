package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".codegauge"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for codegauge settings.
const envPrefix = "CODEGAUGE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Default threshold values.
const (
	DefaultCyclomaticThreshold = 15
	DefaultCognitiveThreshold  = 20
	DefaultScoreGate           = 70
	DefaultMaintainabilityGate = 65
	DefaultConfidence          = 0.5
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or overrides exist.
func Default() *Config {
	viperCfg := viper.New()
	applyDefaults(viperCfg)

	var cfg Config

	// Defaults are statically valid; Unmarshal over them cannot fail.
	_ = viperCfg.Unmarshal(&cfg)

	return &cfg
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("enable_ai", true)
	viperCfg.SetDefault("enable_security_scan", true)
	viperCfg.SetDefault("enable_performance_analysis", true)
	viperCfg.SetDefault("enable_documentation_analysis", true)
	viperCfg.SetDefault("enable_test_analysis", true)
	viperCfg.SetDefault("exclude", []string{})

	viperCfg.SetDefault("thresholds.cyclomatic", DefaultCyclomaticThreshold)
	viperCfg.SetDefault("thresholds.cognitive", DefaultCognitiveThreshold)
	viperCfg.SetDefault("thresholds.maintainability", DefaultMaintainabilityGate)
	viperCfg.SetDefault("thresholds.test_coverage", DefaultScoreGate)
	viperCfg.SetDefault("thresholds.documentation_coverage", DefaultScoreGate)
	viperCfg.SetDefault("thresholds.security_score", DefaultScoreGate)
	viperCfg.SetDefault("thresholds.performance_score", DefaultScoreGate)

	viperCfg.SetDefault("model.confidence_threshold", DefaultConfidence)
	viperCfg.SetDefault("model.cache_results", true)
	viperCfg.SetDefault("model.update_frequency", FrequencyBatch)

	viperCfg.SetDefault("output.format", FormatTerminal)
	viperCfg.SetDefault("output.include_recommendations", true)
	viperCfg.SetDefault("output.include_metrics", true)
	viperCfg.SetDefault("output.verbosity", VerbosityNormal)

	viperCfg.SetDefault("cache.dir", "")

	viperCfg.SetDefault("metrics.enabled", false)
	viperCfg.SetDefault("metrics.listen", "127.0.0.1:9418")
}
