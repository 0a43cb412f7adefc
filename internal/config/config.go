package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	PayMongo PayMongoConfig
	Draw     DrawConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// PayMongoConfig holds payment-gateway configuration
type PayMongoConfig struct {
	SecretKey string
	BaseURL   string
	ServerURL string // public URL redirected to after checkout
	// ContributionAmount is the fixed monthly contribution in minor units
	// (centavos).
	ContributionAmount int64
}

// DrawConfig holds recipient-selection configuration
type DrawConfig struct {
	// Day of month the selection runs on.
	Day int
	// ClampToMonthEnd draws on the last day of months shorter than Day.
	// When false those cycles are skipped.
	ClampToMonthEnd bool
	// Schedule is the cron expression for the selection trigger.
	Schedule string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; environment variables take over.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "paluwagan")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("PayMongo.BaseURL", "https://api.paymongo.com/v1")
	viper.SetDefault("PayMongo.ServerURL", "http://localhost:3000")
	viper.SetDefault("PayMongo.ContributionAmount", 100000) // PHP 1000.00
	viper.SetDefault("Draw.Day", 30)
	viper.SetDefault("Draw.ClampToMonthEnd", true)
	viper.SetDefault("Draw.Schedule", "0 12 * * *") // daily at noon
	viper.SetDefault("LogLevel", "info")
}
