package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Weather  WeatherConfig  `mapstructure:"weather"`
	Report   ReportConfig   `mapstructure:"report"`
	Database DatabaseConfig `mapstructure:"database"`
}

type WeatherConfig struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	City     string `mapstructure:"city"`
	Country  string `mapstructure:"country"`
	Units    string `mapstructure:"units"`
}

type ReportConfig struct {
	Output      string `mapstructure:"output"`
	PanelWidth  int    `mapstructure:"panel_width"`
	PanelHeight int    `mapstructure:"panel_height"`
}

type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; it only feeds the env fallback below.
	_ = godotenv.Load()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/weather-report")
	}

	// Set defaults
	viper.SetDefault("weather.provider", "sample")
	viper.SetDefault("weather.api_key", "")
	viper.SetDefault("weather.city", "London")
	viper.SetDefault("weather.country", "")
	viper.SetDefault("weather.units", "metric")
	viper.SetDefault("report.output", "weather_analysis.png")
	viper.SetDefault("report.panel_width", 1200)
	viper.SetDefault("report.panel_height", 400)
	viper.SetDefault("database.enabled", true)
	viper.SetDefault("database.path", "./weather-report.db")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Weather.APIKey == "" {
		cfg.Weather.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	}

	return &cfg, nil
}
