package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Cache    *CacheConfig
	Auth     *AuthConfig
	Ftp      *FtpConfig
	Email    *EmailConfig
}

type ServerConfig struct {
	AppName        string        // CreativeHands
	Environment    string        // development, production
	Port           string        // :8080
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ProductTTL   time.Duration
}

type AuthConfig struct {
	JwtSecret   string
	Issuer      string
	Audience    string
	TokenExpiry time.Duration
}

type FtpConfig struct {
	Host    string
	User    string
	Pass    string
	BaseDir string
	Timeout time.Duration
}

type EmailConfig struct {
	ApiKey string
	From   string
}
