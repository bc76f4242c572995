package config

import (
	env_utils "creativeflow/internal/util/env"
	"creativeflow/internal/util/logger"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const (
	DbDriverPostgres = "postgres"
	DbDriverSqlite   = "sqlite"

	AuthModeMock  = "mock"
	AuthModeToken = "token"

	defaultSessionSecret = "creativeflow-development-session-secret"
	defaultJwtSecret     = "creativeflow-development-jwt-secret"
	testingSqliteDsn     = "file:creativeflow_test?mode=memory&cache=shared"
)

type EnvVariables struct {
	IsTesting       bool
	BackendRootPath string

	EnvMode  env_utils.EnvMode `env:"ENV_MODE"  env-default:"development"`
	HttpPort string            `env:"HTTP_PORT" env-default:"5000"`

	// proxies whose X-Forwarded-For is honoured, none when empty
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:","`

	// database
	DbDriver    string `env:"DB_DRIVER"    env-default:"postgres"`
	DatabaseDsn string `env:"DATABASE_DSN"`

	// cache, disabled when VALKEY_HOST is empty
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT"     env-default:"6379"`
	ValkeyUsername string `env:"VALKEY_USERNAME"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"  env-default:"false"`

	// auth
	AuthMode         string `env:"AUTH_MODE"          env-default:"mock"`
	SessionSecret    string `env:"SESSION_SECRET"     env-default:"creativeflow-development-session-secret"`
	JwtSecret        string `env:"JWT_SECRET"         env-default:"creativeflow-development-jwt-secret"`
	DevUserEmail     string `env:"DEV_USER_EMAIL"     env-default:"dev@example.com"`
	DevUserFirstName string `env:"DEV_USER_FIRST_NAME" env-default:"Dev"`
	DevUserLastName  string `env:"DEV_USER_LAST_NAME" env-default:"User"`
	DevUserRole      string `env:"DEV_USER_ROLE"      env-default:"admin"`

	// assets
	UploadsDir      string `env:"UPLOADS_DIR"        env-default:"uploads"`
	MaxUploadSizeMB int64  `env:"MAX_UPLOAD_SIZE_MB" env-default:"10"`

	ContactRateLimitPerMinute int `env:"CONTACT_RATE_LIMIT_PER_MINUTE" env-default:"5"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func (e EnvVariables) IsCacheEnabled() bool {
	return e.ValkeyHost != ""
}

func (e EnvVariables) IsMockAuth() bool {
	return e.AuthMode == AuthModeMock
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	env.BackendRootPath = backendRoot

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			break
		}
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.IsTesting {
		applyTestingDefaults()
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.DbDriver != DbDriverPostgres && env.DbDriver != DbDriverSqlite {
		log.Error("DB_DRIVER is invalid", "driver", env.DbDriver)
		os.Exit(1)
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.AuthMode != AuthModeMock && env.AuthMode != AuthModeToken {
		log.Error("AUTH_MODE is invalid", "mode", env.AuthMode)
		os.Exit(1)
	}

	if env.EnvMode == env_utils.EnvModeProduction {
		if env.AuthMode == AuthModeMock {
			log.Error("AUTH_MODE=mock is not allowed in production")
			os.Exit(1)
		}

		if env.SessionSecret == defaultSessionSecret || env.JwtSecret == defaultJwtSecret {
			log.Error("SESSION_SECRET and JWT_SECRET must be set in production")
			os.Exit(1)
		}
	}

	if !filepath.IsAbs(env.UploadsDir) {
		env.UploadsDir = filepath.Join(backendRoot, env.UploadsDir)
	}

	if env.MaxUploadSizeMB <= 0 {
		env.MaxUploadSizeMB = 10
	}

	if !env.IsCacheEnabled() {
		log.Info("VALKEY_HOST is empty, cache is disabled")
	}

	log.Info("Environment variables loaded successfully!")
}

func applyTestingDefaults() {
	env.EnvMode = env_utils.EnvModeDevelopment

	if env.DatabaseDsn == "" {
		env.DbDriver = DbDriverSqlite
		env.DatabaseDsn = testingSqliteDsn
	}

	uploadsDir, err := os.MkdirTemp("", "creativeflow-uploads-*")
	if err != nil {
		log.Error("failed to create uploads dir for tests", "error", err)
		os.Exit(1)
	}
	env.UploadsDir = uploadsDir

	// contact tests submit in bursts
	env.ContactRateLimitPerMinute = 20
}
