package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Gateways GatewaysConfig `mapstructure:"gateways"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// GatewaysConfig carries the provider credentials. These are static service
// configuration; the operator-mutable flags live in the database.
type GatewaysConfig struct {
	MercadoPago MercadoPagoConfig `mapstructure:"mercadopago"`
	PayPal      PayPalConfig      `mapstructure:"paypal"`
}

type MercadoPagoConfig struct {
	AccessToken     string `mapstructure:"access_token"`
	PublicKey       string `mapstructure:"public_key"`
	WebhookSecret   string `mapstructure:"webhook_secret"`
	Sandbox         bool   `mapstructure:"sandbox"`
	NotificationURL string `mapstructure:"notification_url"`
}

// Enabled reports whether credentials are present; a gateway without
// credentials is never registered.
func (m MercadoPagoConfig) Enabled() bool {
	return m.AccessToken != ""
}

type PayPalConfig struct {
	ClientID      string `mapstructure:"client_id"`
	ClientSecret  string `mapstructure:"client_secret"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	Sandbox       bool   `mapstructure:"sandbox"`
	ReturnURL     string `mapstructure:"return_url"`
	CancelURL     string `mapstructure:"cancel_url"`
}

// Enabled reports whether credentials are present.
func (p PayPalConfig) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TPS_ (Taverna Payment
// Service). Nested keys use underscore: TPS_DATABASE_HOST, TPS_JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "taverna_payments")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "8h")
	v.SetDefault("jwt.issuer", "taverna-payments")
	v.SetDefault("gateways.mercadopago.access_token", "")
	v.SetDefault("gateways.mercadopago.public_key", "")
	v.SetDefault("gateways.mercadopago.webhook_secret", "")
	v.SetDefault("gateways.mercadopago.sandbox", true)
	v.SetDefault("gateways.mercadopago.notification_url", "")
	v.SetDefault("gateways.paypal.client_id", "")
	v.SetDefault("gateways.paypal.client_secret", "")
	v.SetDefault("gateways.paypal.webhook_secret", "")
	v.SetDefault("gateways.paypal.sandbox", true)
	v.SetDefault("gateways.paypal.return_url", "")
	v.SetDefault("gateways.paypal.cancel_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TPS_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
