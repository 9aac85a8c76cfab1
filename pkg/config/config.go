package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "gotoresto"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Loyalty       LoyaltyConfig
	Cron          CronConfig
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
	Env          string `envconfig:"GOTORESTO_APP_ENV" required:"true"`
	Port         string `envconfig:"GOTORESTO_APP_PORT" default:"5500"`
	LogLevel     string `envconfig:"GOTORESTO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GOTORESTO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"GOTORESTO_DB_DSN"`

	Host     string `envconfig:"GOTORESTO_DB_HOST"`
	Port     int    `envconfig:"GOTORESTO_DB_PORT" default:"5432"`
	User     string `envconfig:"GOTORESTO_DB_USER"`
	Password string `envconfig:"GOTORESTO_DB_PASSWORD"`
	Name     string `envconfig:"GOTORESTO_DB_NAME"`
	SSLMode  string `envconfig:"GOTORESTO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GOTORESTO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GOTORESTO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GOTORESTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GOTORESTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GOTORESTO_REDIS_URL"`
	Address      string        `envconfig:"GOTORESTO_REDIS_ADDR"`
	Password     string        `envconfig:"GOTORESTO_REDIS_PASSWORD"`
	DB           int           `envconfig:"GOTORESTO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GOTORESTO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GOTORESTO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GOTORESTO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GOTORESTO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GOTORESTO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig deliberately has no default secret: startup fails when the
// secret is unset instead of silently signing with a known value.
type JWTConfig struct {
	Secret                 string `envconfig:"GOTORESTO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GOTORESTO_JWT_ISSUER" default:"gotoresto"`
	ExpirationMinutes      int    `envconfig:"GOTORESTO_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"GOTORESTO_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GOTORESTO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GOTORESTO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GOTORESTO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GOTORESTO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GOTORESTO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"GOTORESTO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"GOTORESTO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"GOTORESTO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"GOTORESTO_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"GOTORESTO_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"GOTORESTO_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GOTORESTO_AUTO_MIGRATE" default:"false"`
}

type LoyaltyConfig struct {
	PointsPerBooking int `envconfig:"GOTORESTO_LOYALTY_POINTS_PER_BOOKING" default:"10"`
	PointsPerReview  int `envconfig:"GOTORESTO_LOYALTY_POINTS_PER_REVIEW" default:"5"`
}

type CronConfig struct {
	Interval              time.Duration `envconfig:"GOTORESTO_CRON_INTERVAL" default:"24h"`
	NotificationRetention time.Duration `envconfig:"GOTORESTO_CRON_NOTIFICATION_RETENTION" default:"720h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	var missing []string
	for env, value := range map[string]string{
		"GOTORESTO_DB_HOST": db.Host,
		"GOTORESTO_DB_USER": db.User,
		"GOTORESTO_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either GOTORESTO_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
