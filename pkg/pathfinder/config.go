package pathfinder

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
)

// Config manages engine configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Graph parameters
	v.SetDefault("graph.weighted", false)
	v.SetDefault("graph.reference_year", bipartite.DefaultReferenceYear)

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.enable_progress", true)

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for graph parameters
func (c *Config) Weighted() bool     { return c.v.GetBool("graph.weighted") }
func (c *Config) ReferenceYear() int { return c.v.GetInt("graph.reference_year") }

func (c *Config) LogLevel() string     { return c.v.GetString("logging.level") }
func (c *Config) EnableProgress() bool { return c.v.GetBool("logging.enable_progress") }

// LoadOptions returns the loader options implied by the config
func (c *Config) LoadOptions() bipartite.LoadOptions {
	return bipartite.LoadOptions{
		Weighted:      c.Weighted(),
		ReferenceYear: c.ReferenceYear(),
	}
}

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "pathfinder").Logger()
}
