package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Upload    UploadConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
	Twilio    TwilioConfig
	Log       LogConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// RedisConfig is optional; an empty Addr disables the stats cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	StatsTTL time.Duration
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	CookieName  string
}

type HTTPConfig struct {
	CORSAllowOrigins     []string
	SlowRequestThreshold time.Duration
}

type UploadConfig struct {
	Driver  string // local or s3
	Dir     string
	MaxSize int64
}

// StorageConfig holds S3-compatible object storage settings
type StorageConfig struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	UsePathStyle      bool
	PresignExpiration time.Duration
}

type SchedulerConfig struct {
	Enabled           bool
	Cron              string
	ReminderDays      int
	DeactivateExpired bool
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	WhatsApp   bool // send to +E.164 numbers over WhatsApp instead of SMS
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AdminConfig seeds the first user when the users table is empty
type AdminConfig struct {
	Username string
	Password string
}

// Load reads configuration from config.toml and IQR_* environment variables.
// Environment variables take priority over the file, the file over defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("IQR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			StatsTTL: v.GetDuration("redis.stats_ttl"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("jwt.secret"),
			ExpiryHours: v.GetInt("jwt.expiry_hours"),
			CookieName:  v.GetString("jwt.cookie_name"),
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins:     v.GetStringSlice("http.cors_allow_origins"),
			SlowRequestThreshold: v.GetDuration("http.slow_request_threshold"),
		},
		Upload: UploadConfig{
			Driver:  v.GetString("upload.driver"),
			Dir:     v.GetString("upload.dir"),
			MaxSize: v.GetInt64("upload.max_size"),
		},
		Storage: StorageConfig{
			Endpoint:          v.GetString("storage.endpoint"),
			Region:            v.GetString("storage.region"),
			Bucket:            v.GetString("storage.bucket"),
			AccessKey:         v.GetString("storage.access_key"),
			SecretKey:         v.GetString("storage.secret_key"),
			UseSSL:            v.GetBool("storage.use_ssl"),
			UsePathStyle:      v.GetBool("storage.use_path_style"),
			PresignExpiration: v.GetDuration("storage.presign_expiration"),
		},
		Scheduler: SchedulerConfig{
			Enabled:           v.GetBool("scheduler.enabled"),
			Cron:              v.GetString("scheduler.cron"),
			ReminderDays:      v.GetInt("scheduler.reminder_days"),
			DeactivateExpired: v.GetBool("scheduler.deactivate_expired"),
		},
		Twilio: TwilioConfig{
			AccountSID: v.GetString("twilio.account_sid"),
			AuthToken:  v.GetString("twilio.auth_token"),
			FromNumber: v.GetString("twilio.from_number"),
			WhatsApp:   v.GetBool("twilio.whatsapp"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Admin: AdminConfig{
			Username: v.GetString("admin.username"),
			Password: v.GetString("admin.password"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "IQR Control System")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.stats_ttl", time.Minute)

	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("jwt.cookie_name", "token")

	v.SetDefault("http.cors_allow_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("http.slow_request_threshold", 200*time.Millisecond)

	v.SetDefault("upload.driver", "local")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size", 10*1024*1024)

	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.use_path_style", true)
	v.SetDefault("storage.presign_expiration", 15*time.Minute)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.cron", "0 9 * * *")
	v.SetDefault("scheduler.reminder_days", 7)
	v.SetDefault("scheduler.deactivate_expired", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database url is required (IQR_DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (IQR_JWT_SECRET)")
	}
	if c.Upload.Driver == "s3" && c.Storage.Bucket == "" {
		return errors.New("storage bucket is required when upload driver is s3")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
