package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppConfig holds file and environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via the config file or the environment.
type AppConfig struct {
	AppPort            string   `json:"AppPort" env:"APP_PORT" env-default:"8080"`
	JWTSecret          string   `json:"JWTSecret" env:"JWT_SECRET"`
	TokenTTLHours      int      `json:"TokenTTLHours" env:"TOKEN_TTL_HOURS" env-default:"72"`
	RateLimitPerMinute int      `json:"RateLimitPerMinute" env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`
	AuthRateLimit      int      `json:"AuthRateLimit" env:"AUTH_RATE_LIMIT_PER_MINUTE" env-default:"20"`
	AllowedOrigins     []string `json:"AllowedOrigins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	AdminUsernames     []string `json:"AdminUsernames" env:"ADMIN_USERNAMES" env-separator:","`
	TLSCertFile        string   `json:"TLSCertFile" env:"TLS_CERT_FILE"`
	TLSKeyFile         string   `json:"TLSKeyFile" env:"TLS_KEY_FILE"`

	// Gin framework configuration
	GinMode string `json:"GinMode" env:"GIN_MODE" env-default:"release"`
	GinPath string `json:"GinPath" env:"GIN_LOG_PATH" env-default:"logs/gin.log"`

	// Database: mysql, postgres or sqlite. DatabaseURI wins over the DB* parts.
	DBDriver    string `json:"DBDriver" env:"DB_DRIVER" env-default:"mysql"`
	DatabaseURI string `json:"DatabaseURI" env:"DATABASE_URI"`
	DBHost      string `json:"DBHost" env:"DB_HOST" env-default:"127.0.0.1"`
	DBPort      string `json:"DBPort" env:"DB_PORT" env-default:"3306"`
	DBUser      string `json:"DBUser" env:"DB_USER" env-default:"root"`
	DBPassword  string `json:"DBPassword" env:"DB_PASSWORD"`
	DBName      string `json:"DBName" env:"DB_NAME" env-default:"prepmeter"`

	// Redis for caching, token revocation and OAuth state
	RedisDisabled bool   `json:"RedisDisabled" env:"REDIS_DISABLED"`
	RedisHost     string `json:"RedisHost" env:"REDIS_HOST" env-default:"127.0.0.1"`
	RedisPort     int    `json:"RedisPort" env:"REDIS_PORT" env-default:"6379"`
	RedisDB       int    `json:"RedisDB" env:"REDIS_DB"`
	RedisPassword string `json:"RedisPassword" env:"REDIS_PASSWORD"`

	// Logging configuration
	LogLevel      string `json:"LogLevel" env:"LOG_LEVEL" env-default:"info"`
	LogPath       string `json:"LogPath" env:"LOG_PATH" env-default:"logs/app.log"`
	LogMaxSizeMB  int    `json:"LogMaxSizeMB" env:"LOG_MAX_SIZE_MB" env-default:"100"`
	LogMaxBackups int    `json:"LogMaxBackups" env:"LOG_MAX_BACKUPS" env-default:"3"`
	LogMaxAgeDays int    `json:"LogMaxAgeDays" env:"LOG_MAX_AGE_DAYS" env-default:"7"`
	LogCompress   bool   `json:"LogCompress" env:"LOG_COMPRESS"`

	// Third-party login
	GitHubClientID     string `json:"GitHubClientID" env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `json:"GitHubClientSecret" env:"GITHUB_CLIENT_SECRET"`
	GoogleClientID     string `json:"GoogleClientID" env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `json:"GoogleClientSecret" env:"GOOGLE_CLIENT_SECRET"`
	OAuthRedirectBase  string `json:"OAuthRedirectBase" env:"OAUTH_REDIRECT_BASE" env-default:"http://localhost:8080"`

	// Registration security
	RegisterCaptchaEnabled     bool `json:"RegisterCaptchaEnabled" env:"REGISTER_CAPTCHA_ENABLED"`
	RegisterAttemptCooldownSec int  `json:"RegisterAttemptCooldownSec" env:"REGISTER_ATTEMPT_COOLDOWN_SEC" env-default:"10"`
	RegisterMaxPerIPPerDay     int  `json:"RegisterMaxPerIPPerDay" env:"REGISTER_MAX_PER_IP_PER_DAY" env-default:"5"`
	RegisterFailMaxPerHour     int  `json:"RegisterFailMaxPerHour" env:"REGISTER_FAIL_MAX_PER_HOUR" env-default:"10"`
	RegisterTempBanMinutes     int  `json:"RegisterTempBanMinutes" env:"REGISTER_TEMP_BAN_MINUTES" env-default:"60"`

	// Tracker behaviour. Timezone decides where calendar days start for streaks, quotes and plans.
	Timezone             string `json:"Timezone" env:"TZ_NAME" env-default:"Asia/Kolkata"`
	RankRefreshDays      int    `json:"RankRefreshDays" env:"RANK_REFRESH_DAYS" env-default:"3"`
	WriteQueueMaxTries   int    `json:"WriteQueueMaxTries" env:"WRITE_QUEUE_MAX_TRIES" env-default:"5"`
	WriteQueueBackoffMS  int    `json:"WriteQueueBackoffMS" env:"WRITE_QUEUE_BACKOFF_MS" env-default:"200"`
	WriteQueueTimeoutSec int    `json:"WriteQueueTimeoutSec" env:"WRITE_QUEUE_TIMEOUT_SEC" env-default:"5"`
	StateCacheTTLMinutes int    `json:"StateCacheTTLMinutes" env:"STATE_CACHE_TTL_MINUTES" env-default:"30"`
	ShutdownFlushSeconds int    `json:"ShutdownFlushSeconds" env:"SHUTDOWN_FLUSH_SECONDS" env-default:"10"`
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
// Precedence: environment variables -> config/config.json -> env-default tags.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = filepath.Join("config", "config.json")
	}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Fatalf("failed to read configuration: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// Set replaces the cached configuration. Used by tests and tools that build config in code.
func Set(c AppConfig) {
	cfg = c
	loaded = true
}

// Location resolves Timezone, falling back to the host zone for unknown names.
func (c AppConfig) Location() *time.Location {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("unknown timezone %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}

// TokenTTL is the lifetime of issued access tokens.
func (c AppConfig) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// StateCacheTTL is how long a cached state document lives in Redis.
func (c AppConfig) StateCacheTTL() time.Duration {
	if c.StateCacheTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.StateCacheTTLMinutes) * time.Minute
}

// ShutdownFlush bounds how long shutdown waits for queued state writes.
func (c AppConfig) ShutdownFlush() time.Duration {
	if c.ShutdownFlushSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownFlushSeconds) * time.Second
}
