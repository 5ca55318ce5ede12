// Package config loads settings from an optional config.yaml and BEAM_*
// environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	API      API
	Session  Session
	Redis    Redis
	Preview  Preview
	Export   Export
	Logo     Logo
	Settings Settings
}

type Server struct {
	Addr string
}

type API struct {
	BaseURL string
	Timeout time.Duration
}

type Session struct {
	Cookie string
	// Store is "memory" or "redis".
	Store  string
	TTL    time.Duration
	Secure bool
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Preview struct {
	Size int
}

type Export struct {
	Padding      int
	FooterHeight int
}

type Logo struct {
	FetchTimeout time.Duration
}

type Settings struct {
	Debug     bool
	LogToFile bool
	LogsDir   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("api.base-url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("session.cookie", "beam_session")
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("preview.size", 300)
	v.SetDefault("export.padding", 40)
	v.SetDefault("export.footer-height", 60)
	v.SetDefault("logo.fetch-timeout", 5*time.Second)
	v.SetDefault("settings.debug", false)
	v.SetDefault("settings.log-to-file", false)
	v.SetDefault("settings.logs-dir", "logs")
}

// Load reads config.yaml from the working directory or ./config when
// present, then applies environment overrides such as BEAM_API_BASE_URL.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("BEAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Server: Server{Addr: v.GetString("server.addr")},
		API: API{
			BaseURL: strings.TrimRight(v.GetString("api.base-url"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Session: Session{
			Cookie: v.GetString("session.cookie"),
			Store:  strings.ToLower(v.GetString("session.store")),
			TTL:    v.GetDuration("session.ttl"),
			Secure: v.GetBool("session.secure"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Preview: Preview{Size: v.GetInt("preview.size")},
		Export: Export{
			Padding:      v.GetInt("export.padding"),
			FooterHeight: v.GetInt("export.footer-height"),
		},
		Logo: Logo{FetchTimeout: v.GetDuration("logo.fetch-timeout")},
		Settings: Settings{
			Debug:     v.GetBool("settings.debug"),
			LogToFile: v.GetBool("settings.log-to-file"),
			LogsDir:   v.GetString("settings.logs-dir"),
		},
	}

	// PORT wins over server.addr, as on most hosting platforms.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	return cfg, nil
}
