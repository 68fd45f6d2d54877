package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores terminal events topic settings. Empty brokers disable the
// consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Customs stores customs authority gateway settings. FetchTimeout bounds one
// decision lookup including its retries.
type Customs struct {
	BaseURL      string
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	FetchTimeout time.Duration
}

// Archive stores archiver sweep settings.
type Archive struct {
	Interval time.Duration
}

// Pprof stores debug server credentials.
type Pprof struct {
	User string
	Pass string
}

// Config stores terminal core service settings.
type Config struct {
	Port    int
	DB      DB
	Kafka   Kafka
	Customs Customs
	Archive Archive
	Pprof   Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:    DefaultPort(),
		DB:      DefaultDB(),
		Kafka:   DefaultKafka(),
		Customs: DefaultCustoms(),
		Archive: DefaultArchive(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	readEnv(&cfg.DB.Host, "POSTGRES_HOST")
	readEnv(&cfg.DB.Port, "POSTGRES_PORT")
	readEnv(&cfg.DB.User, "POSTGRES_USER")
	readEnv(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	readEnv(&cfg.DB.Name, "POSTGRES_DB")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitBrokers(v)
	}
	readEnv(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	readEnv(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	readEnv(&cfg.Customs.BaseURL, "CUSTOMS_BASE_URL")
	if v := os.Getenv("CUSTOMS_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid CUSTOMS_MAX_ATTEMPTS: %q", v)
		}
		cfg.Customs.MaxAttempts = n
	}
	if err := readDuration(&cfg.Customs.BaseDelay, "CUSTOMS_BASE_DELAY"); err != nil {
		return nil, err
	}
	if err := readDuration(&cfg.Customs.MaxDelay, "CUSTOMS_MAX_DELAY"); err != nil {
		return nil, err
	}
	if err := readDuration(&cfg.Customs.FetchTimeout, "CUSTOMS_FETCH_TIMEOUT"); err != nil {
		return nil, err
	}
	if err := readDuration(&cfg.Archive.Interval, "ARCHIVE_SWEEP_INTERVAL"); err != nil {
		return nil, err
	}

	readEnv(&cfg.Pprof.User, "PPROF_USER")
	readEnv(&cfg.Pprof.Pass, "PPROF_PASS")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid postgres port: %q", cfg.DB.Port)
	}
	if cfg.Archive.Interval <= 0 {
		return nil, fmt.Errorf("invalid archive sweep interval: %s", cfg.Archive.Interval)
	}
	if cfg.Customs.FetchTimeout <= 0 {
		return nil, fmt.Errorf("invalid customs fetch timeout: %s", cfg.Customs.FetchTimeout)
	}
	return cfg, nil
}

func readEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func readDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = d
	return nil
}

func splitBrokers(v string) []string {
	var out []string
	for _, b := range strings.Split(v, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
