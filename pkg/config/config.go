package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/simplefw/pkg/db"
)

// Runtime modes.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Cache drivers.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config mirrors the sections of appconf.json.
type Config struct {
	Runtime  Runtime    `mapstructure:"Runtime"`
	Database db.Config  `mapstructure:"Database"`
	Global   Global     `mapstructure:"Global"`
	System   System     `mapstructure:"System"`
	Menu     []MenuItem `mapstructure:"Menu"`
	Cache    Cache      `mapstructure:"Cache"`
	Security Security   `mapstructure:"Security"`
	Sentry   Sentry     `mapstructure:"Sentry"`
	Logging  Logging    `mapstructure:"Logging"`
}

type Runtime struct {
	Mode            string        `mapstructure:"Mode"`
	Address         string        `mapstructure:"Address"`
	ShutdownTimeout time.Duration `mapstructure:"ShutdownTimeout"`
	RequestTimeout  time.Duration `mapstructure:"RequestTimeout"`
}

type Global struct {
	AppName string `mapstructure:"AppName"`
}

type System struct {
	MigrationsTable string `mapstructure:"MigrationsTable"`
}

// MenuItem is an entry of the navigation bar. Items turn it into a dropdown.
type MenuItem struct {
	Label string     `mapstructure:"Label" json:"label"`
	Route string     `mapstructure:"Route" json:"route"`
	Items []MenuItem `mapstructure:"Items" json:"items,omitempty"`
}

type Cache struct {
	Driver   string        `mapstructure:"Driver"`
	RedisURL string        `mapstructure:"RedisURL"`
	TTL      time.Duration `mapstructure:"TTL"`
}

type Security struct {
	// CookieSecret signs and encrypts cookies. At least 32 bytes.
	CookieSecret string `mapstructure:"CookieSecret"`
}

type Sentry struct {
	DSN         string `mapstructure:"DSN"`
	Environment string `mapstructure:"Environment"`
}

type Logging struct {
	Level string `mapstructure:"Level"`
}

// IsDevelopment reports whether the runtime mode is development.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Runtime.Mode, ModeDevelopment)
}

var defaults = map[string]any{
	"Runtime.Mode":            ModeProduction,
	"Runtime.Address":         ":8080",
	"Runtime.ShutdownTimeout": 10 * time.Second,
	"Runtime.RequestTimeout":  30 * time.Second,

	"Database.Type":          "mysql",
	"Database.Server":        "localhost",
	"Database.Port":          0,
	"Database.Name":          "simple-fw",
	"Database.User":          "root",
	"Database.Password":      "",
	"Database.DataPath":      "data",
	"Database.SSLMode":       "disable",
	"Database.MaxOpenConns":  0,
	"Database.RetryAttempts": 3,
	"Database.RetryInterval": 2 * time.Second,

	"Global.AppName": "My Application Name",

	"System.MigrationsTable": "migrations",

	"Cache.Driver":   CacheNone,
	"Cache.RedisURL": "",
	"Cache.TTL":      5 * time.Minute,

	"Security.CookieSecret": "",

	"Sentry.DSN":         "",
	"Sentry.Environment": ModeProduction,

	"Logging.Level": "info",
}

// Load reads the JSON file at path and applies environment overrides.
// A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Join(ErrFailedToLoadEnvFile, err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil && !isMissing(err) {
			return nil, errors.Join(ErrFailedToReadConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}
