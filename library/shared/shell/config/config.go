package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Backends and adapters.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	AdapterPGX   = "pgx"
	AdapterSQLDB = "sql.db"
	AdapterSQLX  = "sqlx.db"

	NotifierLog  = "log"
	NotifierAMQP = "amqp"
)

var (
	// ErrInvalidConfig is returned when a variable cannot be parsed or the result fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the complete service configuration.
type Config struct {
	HTTPAddr string `validate:"required"`

	EventStoreBackend  string `validate:"oneof=memory postgres"`
	PostgresAdapter    string `validate:"oneof=pgx sql.db sqlx.db"`
	PostgresDSN        string `validate:"required_if=EventStoreBackend postgres,required_if=CartStore postgres"`
	PostgresReplicaDSN string
	EventsTable        string `validate:"required"`
	PostgresMigrate    bool

	CartStore string `validate:"oneof=memory postgres"`

	Notifier     string `validate:"oneof=log amqp"`
	AMQPURL      string `validate:"required_if=Notifier amqp"`
	AMQPExchange string `validate:"required_if=Notifier amqp"`

	OTelEnabled  bool
	OTelEndpoint string `validate:"required_if=OTelEnabled true"`

	LogLevel slog.Level

	LendingPeriodDays   int `validate:"gt=0"`
	GroupLendingPeriods map[string]int
	DailyFineCents      int64 `validate:"gte=0"`
}

// Getenv looks up an environment variable, os.LookupEnv in production.
type Getenv func(key string) (string, bool)

// FromEnvironment loads envFile into the process environment if it exists and reads the config.
// Variables already set in the environment win over the file.
func FromEnvironment(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
	}

	return Load(os.LookupEnv)
}

// Load reads the config through getenv and validates it.
func Load(getenv Getenv) (Config, error) {
	r := reader{getenv: getenv}

	cfg := Config{
		HTTPAddr:            r.string("HTTP_ADDR", ":8080"),
		EventStoreBackend:   r.string("EVENTSTORE_BACKEND", BackendMemory),
		PostgresAdapter:     r.string("POSTGRES_ADAPTER", AdapterPGX),
		PostgresDSN:         r.string("POSTGRES_DSN", ""),
		PostgresReplicaDSN:  r.string("POSTGRES_REPLICA_DSN", ""),
		EventsTable:         r.string("EVENTS_TABLE", "events"),
		PostgresMigrate:     r.bool("POSTGRES_MIGRATE", true),
		CartStore:           r.string("CART_STORE", BackendMemory),
		Notifier:            r.string("NOTIFIER", NotifierLog),
		AMQPURL:             r.string("AMQP_URL", ""),
		AMQPExchange:        r.string("AMQP_EXCHANGE", "circulation"),
		OTelEnabled:         r.bool("OTEL_ENABLED", false),
		OTelEndpoint:        r.string("OTEL_ENDPOINT", "localhost:4317"),
		LogLevel:            r.level("LOG_LEVEL", slog.LevelInfo),
		LendingPeriodDays:   r.int("LENDING_PERIOD_DAYS", 14),
		GroupLendingPeriods: r.groupPeriods("GROUP_LENDING_PERIODS"),
		DailyFineCents:      int64(r.int("DAILY_FINE_CENTS", int(core.DefaultDailyFineCents))),
	}

	if r.err != nil {
		return Config{}, r.err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the cross-field rules, e.g. a DSN is required for the postgres backend.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// LendingPolicy builds the core lending policy from the configured periods and fine rate.
func (c Config) LendingPolicy() core.LendingPolicy {
	policy := core.LendingPolicy{
		DefaultPeriod:  days(c.LendingPeriodDays),
		GroupPeriods:   make(map[core.GroupIDString]time.Duration, len(c.GroupLendingPeriods)),
		DailyFineCents: c.DailyFineCents,
	}

	for group, periodDays := range c.GroupLendingPeriods {
		policy.GroupPeriods[group] = days(periodDays)
	}

	return policy
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// reader collects the first parse error, so Load reads all variables in one pass.
type reader struct {
	getenv Getenv
	err    error
}

func (r *reader) lookup(key string) (string, bool) {
	val, ok := r.getenv(key)
	if !ok {
		return "", false
	}

	val = strings.TrimSpace(val)

	return val, val != ""
}

func (r *reader) fail(key string, val string, err error) {
	if r.err == nil {
		r.err = errors.Join(ErrInvalidConfig, fmt.Errorf("%s=%q: %w", key, val, err))
	}
}

func (r *reader) string(key string, fallback string) string {
	if val, ok := r.lookup(key); ok {
		return val
	}

	return fallback
}

func (r *reader) bool(key string, fallback bool) bool {
	val, ok := r.lookup(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		r.fail(key, val, err)
		return fallback
	}

	return parsed
}

func (r *reader) int(key string, fallback int) int {
	val, ok := r.lookup(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		r.fail(key, val, err)
		return fallback
	}

	return parsed
}

func (r *reader) level(key string, fallback slog.Level) slog.Level {
	val, ok := r.lookup(key)
	if !ok {
		return fallback
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(val)); err != nil {
		r.fail(key, val, err)
		return fallback
	}

	return level
}

// groupPeriods parses "staff=28,student=21".
func (r *reader) groupPeriods(key string) map[string]int {
	periods := make(map[string]int)

	val, ok := r.lookup(key)
	if !ok {
		return periods
	}

	for _, pair := range strings.Split(val, ",") {
		group, periodDays, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || group == "" {
			r.fail(key, val, errors.New("expected group=days"))
			return periods
		}

		parsed, err := strconv.Atoi(periodDays)
		if err != nil || parsed <= 0 {
			r.fail(key, val, errors.New("lending period must be a positive number of days"))
			return periods
		}

		periods[group] = parsed
	}

	return periods
}
