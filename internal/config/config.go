package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Module provides the application configuration.
var Module = fx.Provide(Load)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	// AuthJWTSecret verifies bearer tokens issued by the auth collaborator.
	AuthJWTSecret string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Restream RestreamConfig
}

// RestreamConfig configures the Restream.io OAuth2 client.
type RestreamConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
}

// Load loads configuration from environment variables and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_SERVICE", "amani")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("AUTH_JWT_SECRET", "")

	v.SetDefault("DATABASE_TYPE", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "amani")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_IDLE_CONN", 10)
	v.SetDefault("DATABASE_MAX_OPEN_CONN", 50)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", 3600)
	v.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", 600)

	v.SetDefault("RESTREAM_CLIENT_ID", "")
	v.SetDefault("RESTREAM_CLIENT_SECRET", "")
	v.SetDefault("RESTREAM_REDIRECT_URI", "")
	v.SetDefault("RESTREAM_SCOPES", "profile.default.read channels.default.read")
	v.SetDefault("RESTREAM_AUTH_URL", "https://api.restream.io/login")
	v.SetDefault("RESTREAM_TOKEN_URL", "https://api.restream.io/oauth/token")
	v.SetDefault("RESTREAM_API_BASE_URL", "https://api.restream.io/v2")

	return Config{
		AppName:     v.GetString("APP_SERVICE"),
		AppVersion:  v.GetString("APP_VERSION"),
		Environment: v.GetString("ENVIRONMENT"),
		HTTPAddr:    v.GetString("HTTP_ADDR"),

		AuthJWTSecret: strings.TrimSpace(v.GetString("AUTH_JWT_SECRET")),

		DBType:            v.GetString("DATABASE_TYPE"),
		DBHost:            v.GetString("DATABASE_HOST"),
		DBPort:            v.GetString("DATABASE_PORT"),
		DBName:            v.GetString("DATABASE_NAME"),
		DBUser:            v.GetString("DATABASE_USER"),
		DBPassword:        v.GetString("DATABASE_PASSWORD"),
		DBSSLMode:         v.GetString("DATABASE_SSLMODE"),
		DBMaxIdleConn:     v.GetInt("DATABASE_MAX_IDLE_CONN"),
		DBMaxOpenConn:     v.GetInt("DATABASE_MAX_OPEN_CONN"),
		DBConnMaxLifetime: v.GetInt("DATABASE_CONN_MAX_LIFETIME"),
		DBConnMaxIdleTime: v.GetInt("DATABASE_CONN_MAX_IDLE_TIME"),

		Restream: RestreamConfig{
			ClientID:     strings.TrimSpace(v.GetString("RESTREAM_CLIENT_ID")),
			ClientSecret: strings.TrimSpace(v.GetString("RESTREAM_CLIENT_SECRET")),
			RedirectURI:  strings.TrimSpace(v.GetString("RESTREAM_REDIRECT_URI")),
			Scopes:       strings.Fields(v.GetString("RESTREAM_SCOPES")),
			AuthURL:      v.GetString("RESTREAM_AUTH_URL"),
			TokenURL:     v.GetString("RESTREAM_TOKEN_URL"),
			APIBaseURL:   strings.TrimRight(v.GetString("RESTREAM_API_BASE_URL"), "/"),
		},
	}
}
