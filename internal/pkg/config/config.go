package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads configuration from the environment. In the local
// environment the dotenv file at configPath is loaded first.
func InitConfig(configPath string) (*models.Config, error) {
	if GetEnv("APP_ENV", models.EnvLocal) == models.EnvLocal {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	configs := Load(newViper())
	if err := Validate(configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "auth-service")
	v.SetDefault("APP_ENV", models.EnvLocal)
	v.SetDefault("APP_VERSION", "dev")

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("JWT_EXPIRATION", 1440)
	v.SetDefault("JWT_ISSUER", "swastha-auth")

	v.SetDefault("OTP_MODE", models.OTPModeConsole)
	v.SetDefault("OTP_EXPIRATION_MINUTES", 5)
	v.SetDefault("OTP_MAX_ATTEMPTS", 5)
	v.SetDefault("OTP_RATE_LIMIT", 5)
	v.SetDefault("OTP_RATE_WINDOW_MINUTES", 15)
	v.SetDefault("IP_RATE_LIMIT", 30)
	v.SetDefault("OTP_BCRYPT_COST", 10)
	v.SetDefault("OTP_JANITOR_INTERVAL_SECONDS", 60)

	v.SetDefault("OTP_STORE", models.StoreMemory)
	v.SetDefault("USER_STORE", models.StoreMemory)

	v.SetDefault("NEW_RELIC_APP_NAME", "swastha-auth")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load maps environment keys read through v onto the config tree
func Load(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = strings.ToLower(v.GetString("APP_ENV"))
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")
	configs.Database.ConnMaxLifetime = v.GetInt("DB_CONN_MAX_LIFETIME")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// NSQ config
	configs.NSQ.Address = v.GetString("NSQ_ADDRESS")

	// JWT config
	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	// OTP config
	configs.OTP.Mode = strings.ToLower(v.GetString("OTP_MODE"))
	configs.OTP.Expiration = v.GetInt("OTP_EXPIRATION_MINUTES")
	configs.OTP.MaxAttempts = v.GetInt("OTP_MAX_ATTEMPTS")
	configs.OTP.RateLimit = v.GetInt("OTP_RATE_LIMIT")
	configs.OTP.RateWindow = v.GetInt("OTP_RATE_WINDOW_MINUTES")
	configs.OTP.IPRateLimit = v.GetInt("IP_RATE_LIMIT")
	configs.OTP.BcryptCost = v.GetInt("OTP_BCRYPT_COST")
	configs.OTP.JanitorInterval = v.GetInt("OTP_JANITOR_INTERVAL_SECONDS")

	// Twilio config
	configs.Twilio.AccountSID = v.GetString("TWILIO_ACCOUNT_SID")
	configs.Twilio.AuthToken = v.GetString("TWILIO_AUTH_TOKEN")
	configs.Twilio.FromNumber = v.GetString("TWILIO_FROM")

	// Storage config
	configs.Storage.OTPStore = strings.ToLower(v.GetString("OTP_STORE"))
	configs.Storage.UserStore = strings.ToLower(v.GetString("USER_STORE"))

	// NewRelic config
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	return configs
}

// Validate rejects configurations the service must not start with
func Validate(configs *models.Config) error {
	var errs []error

	if configs.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if configs.JWT.Expiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION must be positive"))
	}

	switch configs.OTP.Mode {
	case models.OTPModeConsole:
		if configs.App.IsProduction() {
			errs = append(errs, errors.New("OTP_MODE=console is not allowed in production"))
		}
	case models.OTPModeTwilio:
		if configs.Twilio.AccountSID == "" || configs.Twilio.AuthToken == "" || configs.Twilio.FromNumber == "" {
			errs = append(errs, errors.New("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM are required for OTP_MODE=twilio"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown OTP_MODE %q", configs.OTP.Mode))
	}

	if configs.OTP.Expiration <= 0 {
		errs = append(errs, errors.New("OTP_EXPIRATION_MINUTES must be positive"))
	}
	if configs.OTP.RateLimit <= 0 || configs.OTP.IPRateLimit <= 0 || configs.OTP.RateWindow <= 0 {
		errs = append(errs, errors.New("rate limits and window must be positive"))
	}

	switch configs.Storage.OTPStore {
	case models.StoreMemory, models.StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown OTP_STORE %q", configs.Storage.OTPStore))
	}
	switch configs.Storage.UserStore {
	case models.StoreMemory, models.StorePostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown USER_STORE %q", configs.Storage.UserStore))
	}

	return errors.Join(errs...)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
