package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys. Environment variables use the upper-cased key with
// dots replaced by underscores (db.driver -> DB_DRIVER).
const (
	Port = "port"

	LogLevel  = "log.level"
	LogFormat = "log.format"

	DBDriver = "db.driver"
	DBPath   = "db.path"

	MongoURI      = "mongo.uri"
	MongoDatabase = "mongo.database"

	JWTSecret = "auth.jwt_secret"

	CORSAllowedOrigins = "cors.allowed_origins"

	RedisAddr     = "redis.addr"
	RedisPassword = "redis.password"
	RedisDB       = "redis.db"

	LoginMaxAttempts = "login.max_attempts"
	LoginCooldown    = "login.cooldown"
)

// Supported store backends.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Level  string
	Format string // console | json
}

type DatabaseConfig struct {
	Driver        string
	Path          string // sqlite file
	MongoURI      string
	MongoDatabase string
}

type AuthConfig struct {
	JWTSecret        string
	MaxLoginAttempts int
	LoginCooldown    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig is optional; an empty Addr disables login throttling.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Options control where Load looks for files.
type Options struct {
	EnvFile     string   // default ".env"
	ConfigName  string   // default "config"
	ConfigPaths []string // default "configs", "."
}

// Load reads .env (optional), then configs/config.yml (optional), then the
// environment. Later sources win.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile == "" {
		opts.EnvFile = ".env"
	}
	if opts.ConfigName == "" {
		opts.ConfigName = "config"
	}
	if len(opts.ConfigPaths) == 0 {
		opts.ConfigPaths = []string{"configs", "."}
	}

	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(opts.EnvFile)

	v := viper.New()
	v.SetConfigName(opts.ConfigName)
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	// JWT_SECRET and MONGO_URI are accepted without a prefix.
	_ = v.BindEnv(JWTSecret, "AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv(MongoURI, "MONGO_URI")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString(Port),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(LogLevel),
			Format: v.GetString(LogFormat),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(strings.TrimSpace(v.GetString(DBDriver))),
			Path:          v.GetString(DBPath),
			MongoURI:      v.GetString(MongoURI),
			MongoDatabase: v.GetString(MongoDatabase),
		},
		Auth: AuthConfig{
			JWTSecret:        v.GetString(JWTSecret),
			MaxLoginAttempts: v.GetInt(LoginMaxAttempts),
			LoginCooldown:    v.GetDuration(LoginCooldown),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetStringSlice(CORSAllowedOrigins)),
		},
		Redis: RedisConfig{
			Addr:     v.GetString(RedisAddr),
			Password: v.GetString(RedisPassword),
			DB:       v.GetInt(RedisDB),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(Port, "8080")

	v.SetDefault(LogLevel, "info")
	v.SetDefault(LogFormat, "console")

	v.SetDefault(DBDriver, DriverSQLite)
	v.SetDefault(DBPath, "app.db")
	v.SetDefault(MongoDatabase, "ecommerce")

	v.SetDefault(CORSAllowedOrigins, []string{"http://localhost:3000"})

	v.SetDefault(RedisDB, 0)

	v.SetDefault(LoginMaxAttempts, 5)
	v.SetDefault(LoginCooldown, 15*time.Minute)
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("%s (or JWT_SECRET) is required", JWTSecret)
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%s is required for the sqlite driver", DBPath)
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("%s (or MONGO_URI) is required for the mongo driver", MongoURI)
		}
		if c.Database.MongoDatabase == "" {
			return fmt.Errorf("%s is required for the mongo driver", MongoDatabase)
		}
	default:
		return fmt.Errorf("unsupported %s %q", DBDriver, c.Database.Driver)
	}
	if c.Auth.MaxLoginAttempts <= 0 {
		return fmt.Errorf("%s must be > 0", LoginMaxAttempts)
	}
	if c.Auth.LoginCooldown <= 0 {
		return fmt.Errorf("%s must be > 0", LoginCooldown)
	}
	return nil
}
