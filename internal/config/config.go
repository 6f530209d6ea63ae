package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	StorageDriver      string
	DBURL              string
	CronSecret         string
	CORSAllowedOrigins []string

	CacheTTL time.Duration

	BatchInterMovieDelay time.Duration
	BatchRunTimeout      time.Duration
	BatchLockTTL         time.Duration
	AwardThreshold       int
	AggregateWorkers     int

	MetacriticBaseURL    string
	MetacriticTimeout    time.Duration
	MetacriticMaxRetries int

	BoxOfficeBaseURL    string
	BoxOfficeTimeout    time.Duration
	BoxOfficeMaxRetries int

	OMDBBaseURL    string
	OMDBAPIKey     string
	OMDBTimeout    time.Duration
	OMDBMaxRetries int

	AdapterCircuitEnabled        bool
	AdapterCircuitFailureCount   int
	AdapterCircuitOpenTimeout    time.Duration
	AdapterCircuitHalfOpenMaxReq int

	ResendEnabled bool
	ResendAPIKey  string
	ResendFrom    string
	ResendTo      []string
	ResendTimeout time.Duration

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	PprofEnabled bool
	PprofAddr    string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogLevel     logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageDriverMemory)))
	switch storageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	dbURL := strings.TrimSpace(getEnv("DATABASE_URL", ""))
	if storageDriver == StorageDriverPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=postgres")
	}

	cronSecret := strings.TrimSpace(getEnv("CRON_SECRET", ""))
	if appEnv != EnvDev && cronSecret == "" {
		return Config{}, fmt.Errorf("CRON_SECRET is required when APP_ENV is not dev")
	}

	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "5m")
	if err != nil {
		return Config{}, err
	}

	batchDelay, err := getEnvAsDuration("BATCH_INTER_MOVIE_DELAY", "2s")
	if err != nil {
		return Config{}, err
	}
	batchTimeout, err := getEnvAsDuration("BATCH_RUN_TIMEOUT", "10m")
	if err != nil {
		return Config{}, err
	}
	batchLockTTL, err := getEnvAsDuration("BATCH_LOCK_TTL", "15m")
	if err != nil {
		return Config{}, err
	}

	awardThreshold, err := getEnvAsInt("AWARD_THRESHOLD", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse AWARD_THRESHOLD: %w", err)
	}
	if awardThreshold < 1 {
		return Config{}, fmt.Errorf("AWARD_THRESHOLD must be >= 1")
	}

	aggregateWorkers, err := getEnvAsInt("AGGREGATE_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse AGGREGATE_WORKERS: %w", err)
	}
	if aggregateWorkers < 1 {
		return Config{}, fmt.Errorf("AGGREGATE_WORKERS must be >= 1")
	}

	metacriticTimeout, err := getEnvAsDuration("METACRITIC_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	metacriticMaxRetries, err := getEnvAsInt("METACRITIC_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse METACRITIC_MAX_RETRIES: %w", err)
	}
	if metacriticMaxRetries < 0 {
		return Config{}, fmt.Errorf("METACRITIC_MAX_RETRIES must be >= 0")
	}

	boxOfficeTimeout, err := getEnvAsDuration("BOXOFFICE_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	boxOfficeMaxRetries, err := getEnvAsInt("BOXOFFICE_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOXOFFICE_MAX_RETRIES: %w", err)
	}
	if boxOfficeMaxRetries < 0 {
		return Config{}, fmt.Errorf("BOXOFFICE_MAX_RETRIES must be >= 0")
	}

	omdbTimeout, err := getEnvAsDuration("OMDB_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	omdbMaxRetries, err := getEnvAsInt("OMDB_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse OMDB_MAX_RETRIES: %w", err)
	}
	if omdbMaxRetries < 0 {
		return Config{}, fmt.Errorf("OMDB_MAX_RETRIES must be >= 0")
	}
	omdbAPIKey := strings.TrimSpace(getEnv("OMDB_API_KEY", ""))
	if appEnv == EnvProd && omdbAPIKey == "" {
		return Config{}, fmt.Errorf("OMDB_API_KEY is required in prod")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("ADAPTER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ADAPTER_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("ADAPTER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ADAPTER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ADAPTER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := getEnvAsDuration("ADAPTER_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("ADAPTER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ADAPTER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ADAPTER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	resendEnabled, err := strconv.ParseBool(getEnv("RESEND_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESEND_ENABLED: %w", err)
	}
	resendAPIKey := strings.TrimSpace(getEnv("RESEND_API_KEY", ""))
	resendFrom := strings.TrimSpace(getEnv("RESEND_FROM", ""))
	resendTo := splitCSV(getEnv("RESEND_TO", ""))
	resendTimeout, err := getEnvAsDuration("RESEND_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	if resendEnabled {
		if resendAPIKey == "" {
			return Config{}, fmt.Errorf("RESEND_API_KEY is required when RESEND_ENABLED=true")
		}
		if resendFrom == "" {
			return Config{}, fmt.Errorf("RESEND_FROM is required when RESEND_ENABLED=true")
		}
		if len(resendTo) == 0 {
			return Config{}, fmt.Errorf("RESEND_TO is required when RESEND_ENABLED=true")
		}
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", "11m")
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "movie-auction-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		StorageDriver:      storageDriver,
		DBURL:              dbURL,
		CronSecret:         cronSecret,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		CacheTTL: cacheTTL,

		BatchInterMovieDelay: batchDelay,
		BatchRunTimeout:      batchTimeout,
		BatchLockTTL:         batchLockTTL,
		AwardThreshold:       awardThreshold,
		AggregateWorkers:     aggregateWorkers,

		MetacriticBaseURL:    strings.TrimSpace(getEnv("METACRITIC_BASE_URL", "https://www.metacritic.com")),
		MetacriticTimeout:    metacriticTimeout,
		MetacriticMaxRetries: metacriticMaxRetries,

		BoxOfficeBaseURL:    strings.TrimSpace(getEnv("BOXOFFICE_BASE_URL", "https://api.boxofficedata.dev")),
		BoxOfficeTimeout:    boxOfficeTimeout,
		BoxOfficeMaxRetries: boxOfficeMaxRetries,

		OMDBBaseURL:    strings.TrimSpace(getEnv("OMDB_BASE_URL", "https://www.omdbapi.com")),
		OMDBAPIKey:     omdbAPIKey,
		OMDBTimeout:    omdbTimeout,
		OMDBMaxRetries: omdbMaxRetries,

		AdapterCircuitEnabled:        circuitEnabled,
		AdapterCircuitFailureCount:   circuitFailureCount,
		AdapterCircuitOpenTimeout:    circuitOpenTimeout,
		AdapterCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,

		ResendEnabled: resendEnabled,
		ResendAPIKey:  resendAPIKey,
		ResendFrom:    resendFrom,
		ResendTo:      resendTo,
		ResendTimeout: resendTimeout,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "movie-auction-api"),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
