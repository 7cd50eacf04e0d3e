package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/union-tracker/internal/domain"
)

// Store drivers
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Mapbox    MapboxConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Query     QueryConfig
	Events    EventsConfig
	Worker    WorkerConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type StoreConfig struct {
	Driver string
}

type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	RequestTimeout int // seconds
}

// AuthConfig holds the token secrets. Both are read once at startup.
type AuthConfig struct {
	Secret      string
	AdminSecret string
	TokenTTL    time.Duration
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type QueryConfig struct {
	DefaultLimit int
	CountScope   string
}

type EventsConfig struct {
	Stream string
}

// WorkerConfig drives cmd/worker, which consumes the events stream.
type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	BatchSize     int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(viper.GetString("STORE_DRIVER")),
		},
		Mongo: MongoConfig{
			URI:            viper.GetString("MONGO_URI"),
			Database:       viper.GetString("MONGO_DATABASE"),
			Collection:     viper.GetString("MONGO_COLLECTION"),
			ConnectTimeout: time.Duration(viper.GetInt("MONGO_CONNECT_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Auth: AuthConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			AdminSecret: viper.GetString("JWT_ADMIN_SECRET"),
			TokenTTL:    time.Duration(viper.GetInt("JWT_EXPIRE_DAYS")) * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Max:    viper.GetInt("RATE_LIMIT_MAX"),
			Window: time.Duration(viper.GetInt("RATE_LIMIT_WINDOW")) * time.Second,
		},
		Query: QueryConfig{
			DefaultLimit: viper.GetInt("PAGINATION_DEFAULT_LIMIT"),
			CountScope:   strings.ToLower(viper.GetString("PAGINATION_COUNT_SCOPE")),
		},
		Events: EventsConfig{
			Stream: viper.GetString("EVENTS_STREAM"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:     viper.GetInt("WORKER_BATCH_SIZE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = StoreMongo
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "union_tracker"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "unions"
	}
	if c.Mongo.ConnectTimeout == 0 {
		c.Mongo.ConnectTimeout = 10 * time.Second
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Cache.GeocodeCacheTTL == 0 {
		c.Cache.GeocodeCacheTTL = 24 * time.Hour
	}
	if c.Mapbox.BaseURL == "" {
		c.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if c.Mapbox.RequestTimeout == 0 {
		c.Mapbox.RequestTimeout = 10
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 30 * 24 * time.Hour
	}
	if c.RateLimit.Max == 0 {
		c.RateLimit.Max = 100
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Hour
	}
	if c.Query.DefaultLimit == 0 {
		c.Query.DefaultLimit = 10
	}
	if c.Query.CountScope == "" {
		c.Query.CountScope = domain.CountScopeFiltered
	}
	if c.Events.Stream == "" {
		c.Events.Stream = "stream:union:events"
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "geocode-warmer"
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.AdminSecret == "" {
		return errors.New("JWT_ADMIN_SECRET is required")
	}
	if c.Auth.Secret == c.Auth.AdminSecret {
		return errors.New("JWT_SECRET and JWT_ADMIN_SECRET must differ")
	}
	switch c.Store.Driver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Query.CountScope {
	case domain.CountScopeFiltered, domain.CountScopeCollection:
	default:
		return fmt.Errorf("unknown PAGINATION_COUNT_SCOPE %q", c.Query.CountScope)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
