package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	LogLevel    string           `mapstructure:"log_level"`
	Server      ServerConfig     `mapstructure:"server"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Zerion      ZerionConfig     `mapstructure:"zerion"`
	ImageCache  ImageCacheConfig `mapstructure:"image_cache"`
	Chart       ChartConfig      `mapstructure:"chart"`
	Portfolio   PortfolioConfig  `mapstructure:"portfolio"`
	Workers     WorkerConfig     `mapstructure:"workers"`
}

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	Host            string   `mapstructure:"host"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	RateLimitPerMin int      `mapstructure:"rate_limit_per_min"`
}

type RedisConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	MaxRetries int    `mapstructure:"max_retries"`
	PoolSize   int    `mapstructure:"pool_size"`
}

// ZerionConfig contains upstream portfolio API configuration
type ZerionConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Currency   string `mapstructure:"currency"`
	Timeout    int    `mapstructure:"timeout"`     // Request timeout in seconds
	MaxRetries int    `mapstructure:"max_retries"` // Attempts per request
}

// ImageCacheConfig contains rendered-image cache configuration
type ImageCacheConfig struct {
	TTLDays          int    `mapstructure:"ttl_days"`
	MaxDocumentBytes int    `mapstructure:"max_document_bytes"`
	FallbackImageURL string `mapstructure:"fallback_image_url"`
}

// ChartConfig contains donut chart rendering configuration
type ChartConfig struct {
	Size        int    `mapstructure:"size"`         // Pixel diameter of the chart
	StrokeWidth int    `mapstructure:"stroke_width"` // Donut ring thickness
	TopN        int    `mapstructure:"top_n"`        // Positions kept before grouping into Others
	Theme       string `mapstructure:"theme"`        // "light" or "dark"
}

// PortfolioConfig contains portfolio snapshot configuration
type PortfolioConfig struct {
	SnapshotTTLSeconds int `mapstructure:"snapshot_ttl_seconds"`
}

// WorkerConfig contains background worker configuration
type WorkerConfig struct {
	CacheStatsSchedule string `mapstructure:"cache_stats_schedule"` // cron spec
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults()

	// Read from config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Override specific environment variables
	overrideFromEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("server.rate_limit_per_min", 100)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)

	// Zerion defaults
	viper.SetDefault("zerion.base_url", "https://api.zerion.io")
	viper.SetDefault("zerion.currency", "usd")
	viper.SetDefault("zerion.timeout", 10)
	viper.SetDefault("zerion.max_retries", 3)

	// Image cache defaults
	viper.SetDefault("image_cache.ttl_days", 14)
	viper.SetDefault("image_cache.max_document_bytes", 1<<20)
	viper.SetDefault("image_cache.fallback_image_url", "https://dtech.vision/miniapp.png")

	// Chart defaults
	viper.SetDefault("chart.size", 280)
	viper.SetDefault("chart.stroke_width", 45)
	viper.SetDefault("chart.top_n", 6)
	viper.SetDefault("chart.theme", "light")

	// Portfolio defaults
	viper.SetDefault("portfolio.snapshot_ttl_seconds", 60)

	// Worker defaults
	viper.SetDefault("workers.cache_stats_schedule", "@every 5m")
}

func overrideFromEnv() {
	// Server
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			viper.Set("server.port", p)
		}
	}

	// Redis
	if redisURL := os.Getenv("REDIS_HOST"); redisURL != "" {
		viper.Set("redis.host", redisURL)
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		viper.Set("redis.password", redisPassword)
	}

	// Zerion API
	if apiKey := os.Getenv("ZERION_API_KEY"); apiKey != "" {
		viper.Set("zerion.api_key", apiKey)
	}
	if baseURL := os.Getenv("ZERION_BASE_URL"); baseURL != "" {
		viper.Set("zerion.base_url", baseURL)
	}

	// Image cache
	if fallbackURL := os.Getenv("FALLBACK_IMAGE_URL"); fallbackURL != "" {
		viper.Set("image_cache.fallback_image_url", fallbackURL)
	}
}

func validate(config *Config) error {
	if config.Zerion.APIKey == "" {
		return fmt.Errorf("zerion API key is required")
	}

	if config.Zerion.BaseURL == "" {
		return fmt.Errorf("zerion base URL is required")
	}

	if config.ImageCache.MaxDocumentBytes <= 0 {
		return fmt.Errorf("image cache max document size must be positive")
	}

	if config.Chart.TopN <= 0 {
		return fmt.Errorf("chart top_n must be positive")
	}

	if config.Chart.Theme != "light" && config.Chart.Theme != "dark" {
		return fmt.Errorf("chart theme must be %q or %q", "light", "dark")
	}

	return nil
}
