package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"restaurant/internal/adapters/out/pgnotify"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/rabbitmq"
	"restaurant/internal/jobs"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Event back-ends selectable with EVENTS_BACKEND.
const (
	EventsBackendMemory   = "memory"
	EventsBackendRabbitMQ = "rabbitmq"
	EventsBackendPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	HTTPPort string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBLockTimeout time.Duration
	DBSeed        bool

	EventsBackend    string
	RabbitMQURL      string
	RabbitMQExchange string
	PGNotifyChannel  string

	StatisticsHeartbeat string
	OccupancyReconcile  string

	LogLevel string
}

// DSN renders the key/value connection string understood by both pgx and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort == "" {
		errList = append(errList, fmt.Errorf("%w: HTTP_PORT is required", ErrInvalidConfig))
	}
	if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
		errList = append(errList, fmt.Errorf("%w: DB_HOST, DB_NAME and DB_USER are required", ErrInvalidConfig))
	}
	if c.DBLockTimeout <= 0 {
		errList = append(errList, fmt.Errorf("%w: DB_LOCK_TIMEOUT must be positive", ErrInvalidConfig))
	}
	switch c.EventsBackend {
	case EventsBackendMemory, EventsBackendPostgres:
	case EventsBackendRabbitMQ:
		if c.RabbitMQURL == "" {
			errList = append(errList, fmt.Errorf("%w: RABBITMQ_URL is required for the rabbitmq back-end", ErrInvalidConfig))
		}
	default:
		errList = append(errList, fmt.Errorf("%w: unknown EVENTS_BACKEND %q", ErrInvalidConfig, c.EventsBackend))
	}
	return errors.Join(errList...)
}

// fileConfig is the optional YAML file named by CONFIG_FILE. Its values sit beneath the
// environment.
type fileConfig struct {
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`
	DB struct {
		Host        string `yaml:"host"`
		Port        string `yaml:"port"`
		User        string `yaml:"user"`
		Password    string `yaml:"password"`
		Name        string `yaml:"name"`
		SslMode     string `yaml:"sslmode"`
		LockTimeout string `yaml:"lock_timeout"`
		Seed        *bool  `yaml:"seed"`
	} `yaml:"db"`
	Events struct {
		Backend          string `yaml:"backend"`
		RabbitMQURL      string `yaml:"rabbitmq_url"`
		RabbitMQExchange string `yaml:"rabbitmq_exchange"`
		PGNotifyChannel  string `yaml:"pg_notify_channel"`
	} `yaml:"events"`
	Jobs struct {
		StatisticsHeartbeat string `yaml:"statistics_heartbeat"`
		OccupancyReconcile  string `yaml:"occupancy_reconcile"`
	} `yaml:"jobs"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// LoadConfig resolves the configuration from, in increasing priority: built-in defaults,
// the YAML file named by CONFIG_FILE, a .env file in the working directory and the process
// environment.
func LoadConfig() (Config, error) {
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := Config{
		HTTPPort:            pick("HTTP_PORT", file.HTTP.Port, "8080"),
		DBHost:              pick("DB_HOST", file.DB.Host, "localhost"),
		DBPort:              pick("DB_PORT", file.DB.Port, "5432"),
		DBUser:              pick("DB_USER", file.DB.User, ""),
		DBPassword:          pick("DB_PASSWORD", file.DB.Password, ""),
		DBName:              pick("DB_NAME", file.DB.Name, ""),
		DBSslMode:           pick("DB_SSLMODE", file.DB.SslMode, "disable"),
		EventsBackend:       strings.ToLower(pick("EVENTS_BACKEND", file.Events.Backend, EventsBackendMemory)),
		RabbitMQURL:         pick("RABBITMQ_URL", file.Events.RabbitMQURL, ""),
		RabbitMQExchange:    pick("RABBITMQ_EXCHANGE", file.Events.RabbitMQExchange, rabbitmq.DefaultExchange),
		PGNotifyChannel:     pick("PG_NOTIFY_CHANNEL", file.Events.PGNotifyChannel, pgnotify.DefaultChannel),
		StatisticsHeartbeat: pick("STATISTICS_HEARTBEAT", file.Jobs.StatisticsHeartbeat, jobs.DefaultHeartbeatSchedule),
		OccupancyReconcile:  pick("OCCUPANCY_RECONCILE", file.Jobs.OccupancyReconcile, jobs.DefaultReconcileSchedule),
		LogLevel:            pick("LOG_LEVEL", file.Log.Level, "info"),
	}

	lockTimeout := pick("DB_LOCK_TIMEOUT", file.DB.LockTimeout, postgres.DefaultLockTimeout.String())
	timeout, err := time.ParseDuration(lockTimeout)
	if err != nil {
		return Config{}, fmt.Errorf("%w: DB_LOCK_TIMEOUT: %w", ErrInvalidConfig, err)
	}
	cfg.DBLockTimeout = timeout

	seedDefault := "false"
	if file.DB.Seed != nil {
		seedDefault = strconv.FormatBool(*file.DB.Seed)
	}
	seed, err := strconv.ParseBool(pick("DB_SEED", "", seedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("%w: DB_SEED: %w", ErrInvalidConfig, err)
	}
	cfg.DBSeed = seed

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// pick returns the environment value of key, then fromFile, then fallback.
func pick(key, fromFile, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if fromFile != "" {
		return fromFile
	}
	return fallback
}
