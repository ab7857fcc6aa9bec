package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Groq   GroqConfig   `yaml:"groq" mapstructure:"groq"`
	Gemini GeminiConfig `yaml:"gemini" mapstructure:"gemini"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GroqConfig holds Groq API settings. Models are tried in listed order;
// fastest/highest-limit tiers go first.
type GroqConfig struct {
	Key                string   `yaml:"key" mapstructure:"key"`
	BaseURL            string   `yaml:"base_url" mapstructure:"base_url"`
	Models             []string `yaml:"models" mapstructure:"models"`
	MaxTranscriptChars int      `yaml:"max_transcript_chars" mapstructure:"max_transcript_chars"`
	RequestsPerSecond  float64  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	Key                string   `yaml:"key" mapstructure:"key"`
	BaseURL            string   `yaml:"base_url" mapstructure:"base_url"`
	Models             []string `yaml:"models" mapstructure:"models"`
	MaxTranscriptChars int      `yaml:"max_transcript_chars" mapstructure:"max_transcript_chars"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BatchConfig configures batch extraction.
type BatchConfig struct {
	MaxConcurrentTranscripts int `yaml:"max_concurrent_transcripts" mapstructure:"max_concurrent_transcripts"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment, then resolves provider
// credentials (environment first, secrets file second).
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EARNINGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.path", "earnings.db")
	v.SetDefault("batch.max_concurrent_transcripts", 4)
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.models", []string{
		"llama-3.1-8b-instant",
		"llama-3.3-70b-versatile",
		"mixtral-8x7b-32768",
	})
	v.SetDefault("groq.max_transcript_chars", 12000)
	v.SetDefault("groq.requests_per_second", 0.5)
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.models", []string{
		"gemini-1.5-flash-8b",
		"gemini-1.5-flash",
		"gemini-2.0-flash",
	})
	v.SetDefault("gemini.max_transcript_chars", 15000)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.resolveCredentials(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
