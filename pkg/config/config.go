package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// FPL API
	FPLBaseURL     string        `mapstructure:"FPL_BASE_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	MaxRetries     int           `mapstructure:"MAX_RETRIES"`
	RequestDelay   time.Duration `mapstructure:"REQUEST_DELAY"`
	FPLRateLimit   int           `mapstructure:"FPL_RATE_LIMIT"`

	// League
	LeagueID     int    `mapstructure:"LEAGUE_ID"`
	Phase        int    `mapstructure:"PHASE"`
	MonthMapping string `mapstructure:"MONTH_MAPPING"`
	MaxEntries   int    `mapstructure:"MAX_ENTRIES"`

	// Worker pool
	MaxWorkers int `mapstructure:"MAX_WORKERS"`

	// Prizes and ranking
	WeeklyPrize    float64 `mapstructure:"WEEKLY_PRIZE"`
	MonthlyPrize   float64 `mapstructure:"MONTHLY_PRIZE"`
	TiebreakPolicy string  `mapstructure:"TIEBREAK_POLICY"`

	// Cache TTLs
	BootstrapCacheTTL time.Duration `mapstructure:"BOOTSTRAP_CACHE_TTL"`
	LeagueCacheTTL    time.Duration `mapstructure:"LEAGUE_CACHE_TTL"`
	GwDataCacheTTL    time.Duration `mapstructure:"GW_DATA_CACHE_TTL"`

	// Player points memoization
	PlayerPointsCacheSize int `mapstructure:"PLAYER_POINTS_CACHE_SIZE"`

	// Background refresh
	EnableBackgroundRefresh bool          `mapstructure:"ENABLE_BACKGROUND_REFRESH"`
	RefreshInterval         time.Duration `mapstructure:"REFRESH_INTERVAL"`

	// Upstream resilience
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	viper.SetDefault("FPL_BASE_URL", "https://fantasy.premierleague.com/api")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("MAX_RETRIES", 3)
	viper.SetDefault("REQUEST_DELAY", "300ms")
	viper.SetDefault("FPL_RATE_LIMIT", 10) // requests per second

	viper.SetDefault("LEAGUE_ID", 1042917)
	viper.SetDefault("PHASE", 1)
	viper.SetDefault("MONTH_MAPPING", "1-4,5-8,9-12,13-16,17-20,21-24,25-28,29-32,33-36,37-38")
	viper.SetDefault("MAX_ENTRIES", 0) // 0 = no cap

	viper.SetDefault("MAX_WORKERS", 6)

	viper.SetDefault("WEEKLY_PRIZE", 300000.0)
	viper.SetDefault("MONTHLY_PRIZE", 500000.0)
	viper.SetDefault("TIEBREAK_POLICY", "net_score") // net_score or two_key

	viper.SetDefault("BOOTSTRAP_CACHE_TTL", "24h")
	viper.SetDefault("LEAGUE_CACHE_TTL", "1h")
	viper.SetDefault("GW_DATA_CACHE_TTL", "15m")

	viper.SetDefault("PLAYER_POINTS_CACHE_SIZE", 1024)

	viper.SetDefault("ENABLE_BACKGROUND_REFRESH", false)
	viper.SetDefault("REFRESH_INTERVAL", "15m")

	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
