package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	AI        AIConfig
	Mail      MailConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	// Driver is "postgres" or "memory". The memory driver keeps everything
	// in process and is meant for local runs and demos.
	Driver string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// AIConfig selects the text generation backend. Provider is one of
// "gemini", "googleai", "openai" or "" (disabled).
type AIConfig struct {
	Provider      string
	APIKey        string
	Model         string
	Timeout       time.Duration
	RatePerMinute int
}

// MailConfig is optional; an empty Host switches mail delivery to log-only.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type StorageConfig struct {
	UploadDir      string
	MaxResumeBytes int64
}

type SchedulerConfig struct {
	NotificationRetentionSpec string
	RetentionDays             int
}

// DSN renders the keyword/value connection string understood by pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(c.DBHost),
		strings.TrimSpace(c.DBPort),
		strings.TrimSpace(c.DBUser),
		c.DBPassword,
		strings.TrimSpace(c.DBName),
		strings.TrimSpace(c.DBSSLMode),
	)
}

// Addr is the host:port of the Redis server.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment, an optional .env file and
// the file named by JOBBOARD_CONFIG.
func Load() (Config, error) {
	return LoadFile(os.Getenv("JOBBOARD_CONFIG"))
}

// LoadFile is Load with an explicit config file path. Environment variables
// take precedence over file values; keys map as app.name -> APP_NAME.
func LoadFile(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if p := strings.TrimSpace(path); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", p, err)
		}
	}

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, envName(key))
		}
		return s
	}
	opt := func(key, def string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			return def
		}
		return s
	}
	dur := func(key string, def time.Duration) time.Duration {
		if !v.IsSet(key) {
			return def
		}
		d := v.GetDuration(key)
		if d <= 0 {
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		if !v.IsSet(key) {
			return def
		}
		n := v.GetInt(key)
		if n <= 0 {
			return def
		}
		return n
	}

	cfg.App = AppConfig{
		AppName:     req("app.name"),
		Environment: req("app.env"),
		HTTPPort:    req("http.port"),
		LogJSON:     v.GetBool("log.json"),
		LogDebug:    v.GetBool("log.debug"),
	}

	cfg.Database = DatabaseConfig{
		Driver:                strings.ToLower(opt("db.driver", "postgres")),
		DBHost:                opt("db.host", "localhost"),
		DBPort:                opt("db.port", "5432"),
		DBName:                opt("db.name", "jobboard"),
		DBUser:                opt("db.user", "postgres"),
		DBPassword:            v.GetString("db.password"),
		DBSSLMode:             opt("db.ssl_mode", "disable"),
		ConnectTimeout:        dur("db.connect_timeout", 5*time.Second),
		PoolMaxConns:          int32(num("db.pool_max_conns", 10)),
		PoolMinConns:          int32(num("db.pool_min_conns", 0)),
		PoolMaxConnLifetime:   dur("db.pool_max_conn_lifetime", time.Hour),
		PoolMaxConnIdleTime:   dur("db.pool_max_conn_idle_time", 30*time.Minute),
		PoolHealthCheckPeriod: dur("db.pool_health_check_period", time.Minute),
		MigrationsDir:         opt("db.migrations_dir", "migrations"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("redis.host", "localhost"),
		Port:     opt("redis.port", "6379"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		TTL:      dur("redis.ttl", 10*time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("jwt.access_secret"),
		RefreshSecret:    req("jwt.refresh_secret"),
		AccessExpiresIn:  dur("jwt.access_expires_in", 15*time.Minute),
		RefreshExpiresIn: dur("jwt.refresh_expires_in", 7*24*time.Hour),
	}

	cfg.AI = AIConfig{
		Provider:      strings.ToLower(opt("ai.provider", "")),
		APIKey:        v.GetString("ai.api_key"),
		Model:         opt("ai.model", ""),
		Timeout:       dur("ai.timeout", 60*time.Second),
		RatePerMinute: num("ai.rate_per_minute", 6),
	}

	cfg.Mail = MailConfig{
		Host:     opt("smtp.host", ""),
		Port:     num("smtp.port", 587),
		Username: v.GetString("smtp.username"),
		Password: v.GetString("smtp.password"),
		From:     opt("smtp.from", "no-reply@jobboard.local"),
	}

	cfg.Storage = StorageConfig{
		UploadDir:      opt("storage.upload_dir", "uploads"),
		MaxResumeBytes: int64(num("storage.max_resume_bytes", 5<<20)),
	}

	cfg.Scheduler = SchedulerConfig{
		NotificationRetentionSpec: opt("scheduler.notification_retention", "@every 24h"),
		RetentionDays:             num("scheduler.retention_days", 30),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
