// Package config loads service configuration from the environment, an
// optional .env file and an optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Tracing   bool
	LogLevel  string
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	// TrustedProxies are the IPs or CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type StoreConfig struct {
	Provider       string
	MongoURI       string
	Database       string
	ConnectTimeout time.Duration
}

type JWTConfig struct {
	Secret        string
	RefreshSecret string
	Issuer        string
	Audience      string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	// Rate uses the limiter format "<limit>-<period>", e.g. "100-M".
	Rate string
}

type RedisConfig struct {
	// Addr is a single address or a comma separated list. A list selects
	// cluster mode, or sentinel mode when MasterName is set.
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	MasterName string
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// Addrs returns the configured addresses.
func (r RedisConfig) Addrs() []string { return splitList(r.Addr) }

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 15*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("trusted_proxies", "")

	v.SetDefault("store_provider", "mongodb")
	v.SetDefault("mongodb_uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb_database", "laptrack")
	v.SetDefault("mongodb_connect_timeout", 10*time.Second)

	v.SetDefault("jwt_issuer", "laptrack")
	v.SetDefault("jwt_audience", "laptrack-api")
	v.SetDefault("access_token_ttl", 15*time.Minute)
	v.SetDefault("refresh_token_ttl", 7*24*time.Hour)

	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit", "100-M")

	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_pool_size", 10)
	v.SetDefault("kafka_topic", "laptrack.events")
	v.SetDefault("tracing_enabled", false)
	v.SetDefault("log_level", "info")
}

// Load reads configuration. Environment variables (PORT, MONGODB_URI,
// JWT_SECRET, REFRESH_TOKEN_SECRET, ...) take precedence over values from
// configFile, which may be empty.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("port"),
			ReadTimeout:     v.GetDuration("read_timeout"),
			WriteTimeout:    v.GetDuration("write_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
			CORSOrigins:     splitList(v.GetString("cors_origins")),
			TrustedProxies:  splitList(v.GetString("trusted_proxies")),
		},
		Store: StoreConfig{
			Provider:       strings.ToLower(v.GetString("store_provider")),
			MongoURI:       v.GetString("mongodb_uri"),
			Database:       v.GetString("mongodb_database"),
			ConnectTimeout: v.GetDuration("mongodb_connect_timeout"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("jwt_secret"),
			RefreshSecret: v.GetString("refresh_token_secret"),
			Issuer:        v.GetString("jwt_issuer"),
			Audience:      v.GetString("jwt_audience"),
			AccessTTL:     v.GetDuration("access_token_ttl"),
			RefreshTTL:    v.GetDuration("refresh_token_ttl"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("rate_limit_enabled"),
			Rate:    v.GetString("rate_limit"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("redis_addr"),
			Password:   v.GetString("redis_password"),
			DB:         v.GetInt("redis_db"),
			PoolSize:   v.GetInt("redis_pool_size"),
			MasterName: v.GetString("redis_master_name"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka_brokers")),
			Topic:   v.GetString("kafka_topic"),
		},
		Tracing:  v.GetBool("tracing_enabled"),
		LogLevel: v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// minSecretLength is the HS256 key size.
const minSecretLength = 32

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Server.Port)
	}
	switch c.Store.Provider {
	case "mongodb":
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongodb store")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported STORE_PROVIDER %q", c.Store.Provider)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.RefreshSecret == "" {
		return fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}
	if len(c.JWT.Secret) < minSecretLength || len(c.JWT.RefreshSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET and REFRESH_TOKEN_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.JWT.Secret == c.JWT.RefreshSecret {
		return fmt.Errorf("JWT_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
