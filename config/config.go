package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/macrolens/nutrilog/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	USDA    USDAConfig
	Storage StorageConfig
	Tracker TrackerConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// USDAConfig holds USDA API configuration
type USDAConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	PageSize        int           `mapstructure:"page_size"`
	MaxRetries      int           `mapstructure:"max_retries"`
	BackoffBase     time.Duration `mapstructure:"backoff_base"`
	RequestsPerHour int           `mapstructure:"requests_per_hour"`
}

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Type string `mapstructure:"type"` // "memory" or "sqlite"
	Path string `mapstructure:"path"`
}

// TrackerConfig holds log and report settings
type TrackerConfig struct {
	AppID          string  `mapstructure:"app_id"`
	CalorieGoal    float64 `mapstructure:"calorie_goal"`
	DefaultProfile string  `mapstructure:"default_profile"`
}

// Load loads configuration from a .env file, environment variables and
// config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.nutrilog")

	// Environment variable settings
	v.SetEnvPrefix("NUTRILOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	config.Storage.Path = expandHome(config.Storage.Path)

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory. Variables that are
// already set win over the file.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// USDA defaults
	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.page_size", 15)
	v.SetDefault("usda.max_retries", 2)
	v.SetDefault("usda.backoff_base", "500ms")
	v.SetDefault("usda.requests_per_hour", 1000)

	// Storage defaults
	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.path", "~/.nutrilog/nutrilog.db")

	// Tracker defaults
	v.SetDefault("tracker.app_id", "nutrilog")
	v.SetDefault("tracker.calorie_goal", 2000)
	v.SetDefault("tracker.default_profile", string(domain.ProfileAdult))
}

// validate validates the configuration
func validate(config *Config) error {
	if config.USDA.APIKey == "" {
		return fmt.Errorf("USDA API key is required (set NUTRILOG_USDA_API_KEY)")
	}

	if config.USDA.PageSize <= 0 {
		return fmt.Errorf("usda page size must be positive, got: %d", config.USDA.PageSize)
	}

	if config.USDA.MaxRetries < 0 {
		return fmt.Errorf("usda max retries cannot be negative, got: %d", config.USDA.MaxRetries)
	}

	if config.Storage.Type != "memory" && config.Storage.Type != "sqlite" {
		return fmt.Errorf("storage type must be 'memory' or 'sqlite', got: %s", config.Storage.Type)
	}

	if config.Storage.Type == "sqlite" && config.Storage.Path == "" {
		return fmt.Errorf("storage path is required when storage type is 'sqlite'")
	}

	if config.Tracker.AppID == "" {
		return fmt.Errorf("tracker app id is required")
	}

	if config.Tracker.CalorieGoal <= 0 {
		return fmt.Errorf("calorie goal must be positive, got: %v", config.Tracker.CalorieGoal)
	}

	if !domain.Profile(config.Tracker.DefaultProfile).Valid() {
		return fmt.Errorf("unknown default profile: %s", config.Tracker.DefaultProfile)
	}

	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
