package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Gemini   GeminiConfig
	Exchange ExchangeConfig
	Trip     TripConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	RatesCacheTTL   time.Duration
	CatalogCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// GeminiConfig - параметры генеративного сервиса
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float64
	TopP            float64
	MaxOutputTokens int
	RequestTimeout  time.Duration
}

// ExchangeConfig - параметры сервиса курсов валют
type ExchangeConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
}

// TripConfig - параметры поездок по умолчанию
type TripConfig struct {
	HomeCurrency   string
	CandidateLimit int
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	AlertStream       string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			RatesCacheTTL:   time.Duration(viper.GetInt("RATES_CACHE_TTL")) * time.Second,
			CatalogCacheTTL: time.Duration(viper.GetInt("CATALOG_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Gemini: GeminiConfig{
			APIKey:          viper.GetString("GEMINI_API_KEY"),
			Model:           viper.GetString("GEMINI_MODEL"),
			Temperature:     viper.GetFloat64("GEMINI_TEMPERATURE"),
			TopP:            viper.GetFloat64("GEMINI_TOP_P"),
			MaxOutputTokens: viper.GetInt("GEMINI_MAX_OUTPUT_TOKENS"),
			RequestTimeout:  time.Duration(viper.GetInt("GEMINI_REQUEST_TIMEOUT")) * time.Second,
		},
		Exchange: ExchangeConfig{
			APIKey:         viper.GetString("EXCHANGE_API_KEY"),
			BaseURL:        viper.GetString("EXCHANGE_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("EXCHANGE_REQUEST_TIMEOUT")) * time.Second,
		},
		Trip: TripConfig{
			HomeCurrency:   viper.GetString("TRIP_HOME_CURRENCY"),
			CandidateLimit: viper.GetInt("TRIP_CANDIDATE_LIMIT"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			AlertStream:       viper.GetString("WORKER_ALERT_STREAM"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-pro"
	}
	if cfg.Gemini.Temperature == 0 {
		cfg.Gemini.Temperature = 0.7
	}
	if cfg.Gemini.TopP == 0 {
		cfg.Gemini.TopP = 0.95
	}
	if cfg.Gemini.MaxOutputTokens == 0 {
		cfg.Gemini.MaxOutputTokens = 4096
	}
	if cfg.Gemini.RequestTimeout == 0 {
		cfg.Gemini.RequestTimeout = 60 * time.Second
	}
	if cfg.Exchange.BaseURL == "" {
		cfg.Exchange.BaseURL = "https://v6.exchangerate-api.com/v6"
	}
	if cfg.Exchange.RequestTimeout == 0 {
		cfg.Exchange.RequestTimeout = 10 * time.Second
	}
	if cfg.Cache.RatesCacheTTL == 0 {
		cfg.Cache.RatesCacheTTL = 24 * time.Hour
	}
	if cfg.Cache.CatalogCacheTTL == 0 {
		cfg.Cache.CatalogCacheTTL = 10 * time.Minute
	}
	if cfg.Trip.HomeCurrency == "" {
		cfg.Trip.HomeCurrency = "MAD"
	}
	if cfg.Trip.CandidateLimit == 0 {
		cfg.Trip.CandidateLimit = 30
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "budget-alert-workers"
	}
	if cfg.Worker.AlertStream == "" {
		cfg.Worker.AlertStream = "budget:alerts"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
