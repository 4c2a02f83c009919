package config

import (
	"creativehands_server/structs"
	"time"
)

// Load reads the configuration from the environment. Callers pass the
// result down explicitly; there is no process-wide instance.
func Load() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:        getEnvAsString("APP_NAME", "CreativeHands_no_env"),
			Environment:    getEnvAsString("APP_ENV", "development"),
			Port:           getEnvAsString("APP_PORT", ":8080"),
			ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
			WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
			IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
			MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Authorization"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Database: &structs.DatabaseConfig{
			Host:         getEnvAsString("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnvAsString("DB_USER", "postgres"),
			Password:     getEnvAsString("DB_PASSWORD", "password"),
			Name:         getEnvAsString("DB_NAME", "creativehands_db"),
			MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
			MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
		},
		Cache: &structs.CacheConfig{
			Address:      getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
			Username:     getEnvAsString("REDIS_USERNAME", ""),
			Password:     getEnvAsString("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			ProductTTL:   getEnvAsTimeDuration("REDIS_PRODUCT_TTL", 10*time.Minute),
		},
		Auth: &structs.AuthConfig{
			JwtSecret:   getEnvAsString("AUTH_JWT_SECRET", "default_jwt_secret"),
			Issuer:      getEnvAsString("AUTH_ISSUER", "creativehands"),
			Audience:    getEnvAsString("AUTH_AUDIENCE", "creativehands"),
			TokenExpiry: getEnvAsTimeDuration("AUTH_TOKEN_EXPIRY", 12*time.Hour),
		},
		Ftp: &structs.FtpConfig{
			Host:    getEnvAsString("FTP_HOST", "localhost:21"),
			User:    getEnvAsString("FTP_USER", "anonymous"),
			Pass:    getEnvAsString("FTP_PASS", ""),
			BaseDir: getEnvAsString("FTP_BASE_DIR", "/"),
			Timeout: getEnvAsTimeDuration("FTP_TIMEOUT", 10*time.Second),
		},
		Email: &structs.EmailConfig{
			ApiKey: getEnvAsString("RESEND_API_KEY", ""),
			From:   getEnvAsString("EMAIL_FROM", "orders@creativehands.example"),
		},
	}
}

func LogLevel(cfg *structs.Config) string {
	if cfg.Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction(cfg *structs.Config) bool {
	return cfg.Server.Environment == "production"
}
