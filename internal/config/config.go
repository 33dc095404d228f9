package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers of the blacklist and analysis stores.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LLM providers.
const (
	ProviderGemini = "gemini"
	ProviderGLM    = "glm"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, storage, the
// analysis pipeline and its external collaborators, and graceful shutdown.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the level implied by Environment when set (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"45s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins limits CORS to the listed origins; empty allows any origin
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," yaml:"allowedOrigins"`
		// Pprof exposes the profiling handlers under /debug/pprof/
		Pprof bool `env:"HTTP_PPROF" env-default:"false" yaml:"pprof"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"phishguard" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// JWT holds the RS256 key pair used to verify and mint API tokens
	JWT struct {
		// PublicKey is the PEM encoded public key used to verify bearer tokens
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey is the PEM encoded private key used by the token command
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// Corpus configures the known legitimate domains
	Corpus struct {
		// Path is a YAML corpus file; empty means the bundled corpus
		Path string `env:"CORPUS_PATH" yaml:"path"`
	} `yaml:"corpus"`

	// Cache configures the analysis result cache
	Cache struct {
		// TTL is how long a result is served from the cache
		TTL time.Duration `env:"CACHE_TTL" env-default:"1h" yaml:"ttl"`
		// MaxEntries bounds the number of cached hostnames
		MaxEntries int `env:"CACHE_MAX_ENTRIES" env-default:"200" yaml:"maxEntries"`
	} `yaml:"cache"`

	// Ensemble configures detector selection and escalation
	Ensemble struct {
		// EscalationMin is the lowest preliminary score that is escalated
		EscalationMin int `env:"ENSEMBLE_ESCALATION_MIN" env-default:"20" yaml:"escalationMin"`
		// EscalationMax is the highest preliminary score that is escalated
		EscalationMax int `env:"ENSEMBLE_ESCALATION_MAX" env-default:"80" yaml:"escalationMax"`
		// EnableLLM permits escalation unless a request disables it
		EnableLLM bool `env:"ENSEMBLE_ENABLE_LLM" env-default:"true" yaml:"enableLLM"`
		// Detectors switches detectors on or off by key; missing keys are on
		Detectors map[string]bool `env:"ENSEMBLE_DETECTORS" yaml:"detectors"`
	} `yaml:"ensemble"`

	// Whitelist holds domains that are never analyzed, in addition to the corpus
	Whitelist []string `env:"WHITELIST" env-separator:"," yaml:"whitelist"`

	// LLM configures the escalation model client
	LLM struct {
		// Provider selects the client: gemini or glm
		Provider string `env:"LLM_PROVIDER" env-default:"gemini" yaml:"provider"`
		// APIKey authenticates against the provider; empty disables escalation
		APIKey string `env:"LLM_API_KEY" yaml:"apiKey"`
		// Model overrides the provider default model
		Model string `env:"LLM_MODEL" yaml:"model"`
		// BaseURL overrides the provider endpoint
		BaseURL string `env:"LLM_BASE_URL" yaml:"baseURL"`
		// Timeout bounds a single model call
		Timeout time.Duration `env:"LLM_TIMEOUT" env-default:"30s" yaml:"timeout"`
		// MaxRetries is the number of retries after a 5xx answer
		MaxRetries int `env:"LLM_MAX_RETRIES" env-default:"2" yaml:"maxRetries"`
		// RatePerMinute is the number of model calls allowed per minute
		RatePerMinute int `env:"LLM_RATE_PER_MINUTE" env-default:"5" yaml:"ratePerMinute"`
	} `yaml:"llm"`

	// Whois configures domain registration lookups
	Whois struct {
		// Timeout bounds a single lookup
		Timeout time.Duration `env:"WHOIS_TIMEOUT" env-default:"10s" yaml:"timeout"`
		// CacheTTL is how long a registration record is reused
		CacheTTL time.Duration `env:"WHOIS_CACHE_TTL" env-default:"24h" yaml:"cacheTTL"`
		// RDAPURL is the RDAP service used when WHOIS fails
		RDAPURL string `env:"WHOIS_RDAP_URL" env-default:"https://rdap.org" yaml:"rdapURL"`
	} `yaml:"whois"`

	// Blacklist configures the blacklist store and the KISA feed sync
	Blacklist struct {
		// Driver selects the store: postgres or sqlite
		Driver string `env:"BLACKLIST_DRIVER" env-default:"postgres" yaml:"driver"`
		// SQLitePath is the database file used by the sqlite driver
		SQLitePath string `env:"BLACKLIST_SQLITE_PATH" env-default:"data/phishguard.db" yaml:"sqlitePath"`
		// KisaServiceKey authenticates against the public data portal; empty disables sync
		KisaServiceKey string `env:"BLACKLIST_KISA_SERVICE_KEY" yaml:"kisaServiceKey"`
		// KisaBaseURL overrides the feed endpoint
		KisaBaseURL string `env:"BLACKLIST_KISA_BASE_URL" yaml:"kisaBaseURL"`
		// SyncInterval is the period of the incremental sync job
		SyncInterval time.Duration `env:"BLACKLIST_SYNC_INTERVAL" env-default:"24h" yaml:"syncInterval"`
		// PageSize is the number of feed entries requested per page
		PageSize int `env:"BLACKLIST_PAGE_SIZE" env-default:"1000" yaml:"pageSize"`
		// PageDelay is the pause between feed pages
		PageDelay time.Duration `env:"BLACKLIST_PAGE_DELAY" env-default:"300ms" yaml:"pageDelay"`
		// IncrementalPages is the number of newest pages read by an incremental sync
		IncrementalPages int `env:"BLACKLIST_INCREMENTAL_PAGES" env-default:"5" yaml:"incrementalPages"`
	} `yaml:"blacklist"`

	// Worker configures the background job runner
	Worker struct {
		// MaxWorkers is the number of jobs run concurrently
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"10" yaml:"maxWorkers"`
		// MaxAttempts is the number of attempts of a sync job
		MaxAttempts int `env:"WORKER_MAX_ATTEMPTS" env-default:"5" yaml:"maxAttempts"`
	} `yaml:"worker"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be expressed as defaults.
func (c *Config) Validate() error {
	switch c.Blacklist.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown blacklist driver %q", c.Blacklist.Driver)
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderGLM:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if c.Ensemble.EscalationMin < 0 || c.Ensemble.EscalationMax > 100 || c.Ensemble.EscalationMin > c.Ensemble.EscalationMax {
		return fmt.Errorf("invalid escalation band [%d,%d]", c.Ensemble.EscalationMin, c.Ensemble.EscalationMax)
	}

	return nil
}
