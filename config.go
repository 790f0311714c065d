package trailhead

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/xy-planning-network/trailhead/logger"
)

const (
	defaultAddr            = ":8080"
	defaultAssetsDir       = "assets"
	defaultBaseURL         = "http://localhost:8080"
	defaultSessionName     = "trailhead"
	defaultShutdownTimeout = 10 * time.Second
	defaultTemplateDir     = "tmpl"
)

// A Config holds the values a trailhead app reads from its environment.
type Config struct {
	Env             Environment
	Addr            string
	BaseURL         *url.URL
	LogLevel        logger.LogLevel
	ShutdownTimeout time.Duration

	// Name of the cookie sessions are stored under.
	SessionName string

	// Hex-encoded keys for authenticating and encrypting sessions.
	SessionAuthKey    string
	SessionEncryptKey string

	// When RedisURI is set, sessions are stored in Redis instead of cookies.
	RedisURI  string
	RedisPass string

	// Directory holding view templates.
	TemplateDir string

	// Directory holding static files, served under its base name, e.g., /assets/.
	AssetsDir string

	// When MaintenanceMode is set, every request is answered with 503 Service Unavailable.
	MaintenanceMode bool
}

// LoadConfig loads the env files provided - ".env" when none are - into the process environment
// and then assembles a Config from it.
//
// Missing env files are not an error; existing variables are never overwritten.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: cannot load %s: %s", ErrBadConfig, f, err)
		}
	}

	cfg := Config{
		Env:               EnvVarOrEnv("ENVIRONMENT", Development),
		Addr:              EnvVarOrString("ADDR", defaultAddr),
		BaseURL:           EnvVarOrURL("BASE_URL", defaultBaseURL),
		LogLevel:          EnvVarOrLogLevel("LOG_LEVEL", logger.LogLevelInfo),
		ShutdownTimeout:   EnvVarOrDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SessionName:       EnvVarOrString("SESSION_NAME", defaultSessionName),
		SessionAuthKey:    EnvVarOrString("SESSION_AUTH_KEY", ""),
		SessionEncryptKey: EnvVarOrString("SESSION_ENCRYPTION_KEY", ""),
		RedisURI:          EnvVarOrString("REDIS_URI", ""),
		RedisPass:         EnvVarOrString("REDIS_PASSWORD", ""),
		TemplateDir:       EnvVarOrString("TEMPLATE_DIR", defaultTemplateDir),
		AssetsDir:         EnvVarOrString("ASSETS_DIR", defaultAssetsDir),
		MaintenanceMode:   EnvVarOrBool("MAINTENANCE_MODE", false),
	}

	if cfg.BaseURL == nil {
		return Config{}, fmt.Errorf("%w: BASE_URL is not a valid URL", ErrBadConfig)
	}

	return cfg, nil
}
