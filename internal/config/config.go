package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	StoreMemory    = "memory"
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
)

const (
	AuthDev      = "dev"
	AuthJWT      = "jwt"
	AuthFirebase = "firebase"
)

type Config struct {
	Env     string
	Port    int
	AppName string

	HTTP     HTTPConfig
	Log      LogConfig
	Store    StoreConfig
	Firebase FirebaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Mail     MailConfig
	Jobs     JobsConfig

	// LegacyFinderCopy replica el doc del finder además del claim sobre el registro original.
	LegacyFinderCopy bool
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type StoreConfig struct {
	Driver      string
	DSN         string
	AutoMigrate bool
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

type AuthConfig struct {
	Mode      string
	JWTSecret string
	JWTIssuer string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

type JobsConfig struct {
	// MirrorRefreshSchedule es una expresión cron con segundos; vacío = job apagado.
	MirrorRefreshSchedule string
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load lee .env (si existe) + variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:     strings.ToLower(v.GetString("ENV")),
		Port:    v.GetInt("PORT"),
		AppName: v.GetString("APP_NAME"),
	}

	cfg.HTTP = HTTPConfig{
		ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
		ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Store = StoreConfig{
		Driver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		DSN:         v.GetString("DB_DSN"),
		AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
	}
	// Compat: el router viejo activaba Postgres solo con DB_DSN.
	if cfg.Store.Driver == "" && cfg.Store.DSN != "" {
		cfg.Store.Driver = StorePostgres
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreMemory
	}

	cfg.Firebase = FirebaseConfig{
		ProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
		CredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
	}

	cfg.Auth = AuthConfig{
		Mode:      strings.ToLower(v.GetString("AUTH_MODE")),
		JWTSecret: v.GetString("JWT_SECRET"),
		JWTIssuer: v.GetString("JWT_ISSUER"),
	}

	cfg.Redis = RedisConfig{
		Addr:     v.GetString("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("CACHE_TTL"),
	}

	cfg.Mail = MailConfig{
		SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
		FromEmail:      v.GetString("MAIL_FROM_EMAIL"),
		FromName:       v.GetString("MAIL_FROM_NAME"),
	}

	cfg.Jobs = JobsConfig{
		MirrorRefreshSchedule: strings.TrimSpace(v.GetString("MIRROR_REFRESH_SCHEDULE")),
	}

	cfg.LegacyFinderCopy = v.GetBool("LEGACY_FINDER_COPY")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return errors.New("config: DB_DSN is required when STORE_DRIVER=postgres")
		}
	case StoreFirestore:
		if strings.TrimSpace(c.Firebase.ProjectID) == "" {
			return errors.New("config: FIREBASE_PROJECT_ID is required when STORE_DRIVER=firestore")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Auth.Mode {
	case AuthDev:
		if c.IsProduction() {
			return errors.New("config: AUTH_MODE=dev is not allowed in production")
		}
	case AuthJWT:
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return errors.New("config: JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case AuthFirebase:
		if strings.TrimSpace(c.Firebase.ProjectID) == "" {
			return errors.New("config: FIREBASE_PROJECT_ID is required when AUTH_MODE=firebase")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_MODE %q", c.Auth.Mode)
	}

	if c.Mail.SendGridAPIKey != "" && strings.TrimSpace(c.Mail.FromEmail) == "" {
		return errors.New("config: MAIL_FROM_EMAIL is required when SENDGRID_API_KEY is set")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_NAME", "petpals")

	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	v.SetDefault("STORE_DRIVER", "")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("AUTH_MODE", AuthDev)
	v.SetDefault("JWT_ISSUER", "petpals")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "24h")

	v.SetDefault("MAIL_FROM_NAME", "PetPals")
	v.SetDefault("LEGACY_FINDER_COPY", false)
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory") ||
		strings.Contains(err.Error(), "cannot find the file")
}
