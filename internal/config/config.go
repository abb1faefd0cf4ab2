// Package config loads server and engine settings from YAML and environment.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Location LocationConfig `mapstructure:"location"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// WeatherConfig points at the directory of cloud cover CSV files. Each file
// becomes a named weather record (file name without extension).
type WeatherConfig struct {
	Dir string `mapstructure:"dir"`
}

type EngineConfig struct {
	// Workers bounds the per-day fan-out of yearly aggregation.
	Workers int `mapstructure:"workers"`
}

// LocationConfig is the default site for time correction queries and the
// report tool.
type LocationConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	UTCOffset float64 `mapstructure:"utc_offset"`
}

type LoggingConfig struct {
	Debug bool `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("weather.dir", "input/weather")
	v.SetDefault("engine.workers", runtime.GOMAXPROCS(0))
	v.SetDefault("location.latitude", 52.0)
	v.SetDefault("location.longitude", 21.0)
	v.SetDefault("location.utc_offset", 1.0)
	v.SetDefault("logging.debug", false)
}

// Load reads configuration from file (or config.yaml in . and ./configs when
// file is empty) and SOLAR_* environment variables. A missing config file is
// not an error; defaults and environment still apply.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("SOLAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Engine.Workers < 1 {
		cfg.Engine.Workers = 1
	}
	return &cfg, nil
}
