package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string // Postgres DSN; when empty the local sqlite file is used
	SQLitePath          string
	RedisURL            string // optional; empty disables the dashboard cache
	DefaultPI           string
	FrontendURLEndsWith string
	DevPassword         string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	sqlitePath := viper.GetString("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "polypoint.db"
	}

	defaultPI := viper.GetString("DEFAULT_PI")
	if defaultPI == "" {
		defaultPI = "26.1"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		SQLitePath:          sqlitePath,
		RedisURL:            viper.GetString("REDIS_URL"),
		DefaultPI:           defaultPI,
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
	}, nil
}
