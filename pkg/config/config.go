package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "PIXELPAGE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "PIXELPAGE_APP_ENV"
	EnvPort       = "PIXELPAGE_APP_PORT"
	EnvDBDSN      = "PIXELPAGE_DB_DSN"
	EnvDBHost     = "PIXELPAGE_DB_HOST"
	EnvDBUser     = "PIXELPAGE_DB_USER"
	EnvDBName     = "PIXELPAGE_DB_NAME"
	EnvRedisURL   = "PIXELPAGE_REDIS_URL"
	EnvJWTSecret  = "PIXELPAGE_JWT_SECRET"
	EnvJWTIssuer  = "PIXELPAGE_JWT_ISSUER"
	EnvJWTExpMins = "PIXELPAGE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	ImgBB         ImgBBConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PIXELPAGE_APP_ENV" required:"true"`
	Port         string `envconfig:"PIXELPAGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PIXELPAGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PIXELPAGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PIXELPAGE_DB_DSN"`
	Driver string `envconfig:"PIXELPAGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PIXELPAGE_DB_HOST"`
	LegacyPort     int    `envconfig:"PIXELPAGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PIXELPAGE_DB_USER"`
	LegacyPassword string `envconfig:"PIXELPAGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PIXELPAGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PIXELPAGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PIXELPAGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PIXELPAGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PIXELPAGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PIXELPAGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PIXELPAGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PIXELPAGE_REDIS_ADDR"`
	Password     string        `envconfig:"PIXELPAGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PIXELPAGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PIXELPAGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PIXELPAGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PIXELPAGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PIXELPAGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PIXELPAGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PIXELPAGE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PIXELPAGE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PIXELPAGE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PIXELPAGE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PIXELPAGE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PIXELPAGE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PIXELPAGE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PIXELPAGE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PIXELPAGE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PIXELPAGE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PIXELPAGE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PIXELPAGE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PIXELPAGE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PIXELPAGE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PIXELPAGE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PIXELPAGE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PIXELPAGE_AUTO_MIGRATE" default:"false"`
}

type ImgBBConfig struct {
	APIKey        string        `envconfig:"PIXELPAGE_IMGBB_API_KEY"`
	UploadURL     string        `envconfig:"PIXELPAGE_IMGBB_UPLOAD_URL" default:"https://api.imgbb.com/1/upload"`
	UploadTimeout time.Duration `envconfig:"PIXELPAGE_IMGBB_UPLOAD_TIMEOUT" default:"15s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
