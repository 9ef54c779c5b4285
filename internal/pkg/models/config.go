package models

import "time"

// Config holds all configuration for the auth service
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Twilio   TwilioConfig
	Storage  StorageConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

// IsProduction reports whether the service runs with production guarantees
func (a AppConfig) IsProduction() bool {
	return a.Environment == EnvProduction
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds postgres configuration
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxConns        int    `mapstructure:"max_conns"`
	IdleConns       int    `mapstructure:"idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// NSQConfig holds NSQ producer configuration. An empty Address disables publishing.
type NSQConfig struct {
	Address string `mapstructure:"address"`
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration int    `mapstructure:"expiration"` // minutes
	Issuer     string `mapstructure:"issuer"`
}

// TTL returns the token lifetime
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.Expiration) * time.Minute
}

// OTPConfig holds one-time code issuance and throttling configuration
type OTPConfig struct {
	Mode            string `mapstructure:"mode"`
	Expiration      int    `mapstructure:"expiration"` // minutes
	MaxAttempts     int    `mapstructure:"max_attempts"`
	RateLimit       int    `mapstructure:"rate_limit"`
	RateWindow      int    `mapstructure:"rate_window"` // minutes
	IPRateLimit     int    `mapstructure:"ip_rate_limit"`
	BcryptCost      int    `mapstructure:"bcrypt_cost"`
	JanitorInterval int    `mapstructure:"janitor_interval"` // seconds
}

// TTL returns how long an issued code stays valid
func (o OTPConfig) TTL() time.Duration {
	return time.Duration(o.Expiration) * time.Minute
}

// Window returns the rate limiting window
func (o OTPConfig) Window() time.Duration {
	return time.Duration(o.RateWindow) * time.Minute
}

// TwilioConfig holds SMS gateway credentials
type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	FromNumber string `mapstructure:"from_number"`
}

// StorageConfig selects the backing stores
type StorageConfig struct {
	OTPStore  string `mapstructure:"otp_store"`
	UserStore string `mapstructure:"user_store"`
}

// NewRelicConfig holds New Relic configuration
type NewRelicConfig struct {
	LicenseKey string `mapstructure:"license_key"`
	AppName    string `mapstructure:"app_name"`
	Enabled    bool   `mapstructure:"enabled"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	FilePath string `mapstructure:"file_path"`
}

const (
	EnvLocal       = "local"
	EnvDevelopment = "development"
	EnvProduction  = "production"

	OTPModeConsole = "console"
	OTPModeTwilio  = "twilio"

	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)
