// Package config loads application configuration from the environment
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	LogLevel string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
}

// CatalogConfig holds listing defaults for the book catalog
type CatalogConfig struct {
	PageSize     int // default page size for listings
	MaxPageSize  int // server-enforced upper bound for the limit parameter
	WindowRadius int // pagination window radius around the current page
}

// Load creates a new Config from environment variables with defaults.
// Variables use the LIBCAT_ prefix, e.g. LIBCAT_SERVER_PORT=8080.
func Load() *Config {
	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("database.path", "library.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("catalog.page_size", 10)
	v.SetDefault("catalog.max_page_size", 50)
	v.SetDefault("catalog.window_radius", 3)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("libcat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetInt("server.read_timeout"),
			WriteTimeout: v.GetInt("server.write_timeout"),
			IdleTimeout:  v.GetInt("server.idle_timeout"),
		},
		Database: DatabaseConfig{
			Path:            v.GetString("database.path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		Catalog: CatalogConfig{
			PageSize:     v.GetInt("catalog.page_size"),
			MaxPageSize:  v.GetInt("catalog.max_page_size"),
			WindowRadius: v.GetInt("catalog.window_radius"),
		},
		LogLevel: v.GetString("log_level"),
	}
}
