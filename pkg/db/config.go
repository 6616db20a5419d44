package db

import (
	"errors"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

// Config describes a database connection.
type Config struct {
	Type     string `mapstructure:"Type"`
	Server   string `mapstructure:"Server"`
	Port     int    `mapstructure:"Port"`
	Name     string `mapstructure:"Name"`
	User     string `mapstructure:"User"`
	Password string `mapstructure:"Password"`

	// DataPath is the directory holding SQLite database files.
	DataPath string `mapstructure:"DataPath"`
	// SSLMode is passed to PostgreSQL; defaults to "disable".
	SSLMode string `mapstructure:"SSLMode"`

	MaxOpenConns  int           `mapstructure:"MaxOpenConns"`
	RetryAttempts int           `mapstructure:"RetryAttempts"`
	RetryInterval time.Duration `mapstructure:"RetryInterval"`
}

// Dialect returns the SQL dialect of the configured database type.
func (c Config) Dialect() (sqlbuilder.Dialect, error) {
	d, err := sqlbuilder.ParseDialect(c.Type)
	if err != nil {
		return "", errors.Join(ErrFailedToParseDBConfig, err)
	}
	return d, nil
}

// DSN returns the database/sql driver name and data source name.
func (c Config) DSN() (driver, dsn string, err error) {
	d, err := c.Dialect()
	if err != nil {
		return "", "", err
	}

	switch d {
	case sqlbuilder.MySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Server, strconv.Itoa(portOr(c.Port, 3306)))
		mc.DBName = c.Name
		mc.ParseTime = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return "mysql", mc.FormatDSN(), nil

	case sqlbuilder.Postgres:
		u := url.URL{
			Scheme:   "postgres",
			Host:     net.JoinHostPort(c.Server, strconv.Itoa(portOr(c.Port, 5432))),
			Path:     "/" + c.Name,
			RawQuery: url.Values{"sslmode": {sslMode(c.SSLMode)}}.Encode(),
		}
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else if c.User != "" {
			u.User = url.User(c.User)
		}
		return "pgx", u.String(), nil

	default:
		path := c.Name
		if path != ":memory:" {
			path = filepath.Join(c.DataPath, c.Name)
		}
		return "sqlite", "file:" + path + "?_pragma=foreign_keys(1)", nil
	}
}

func portOr(port, def int) int {
	if port > 0 {
		return port
	}
	return def
}

func sslMode(mode string) string {
	if mode == "" {
		return "disable"
	}
	return mode
}
