package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "terminal",
	Pass: "terminal",
	Name: "terminal_db",
}

var defaultKafka = Kafka{
	Topic:   "terminal-events",
	GroupID: "terminal-core",
}

var defaultCustoms = Customs{
	MaxAttempts:  4,
	BaseDelay:    150 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	FetchTimeout: 2 * time.Second,
}

var defaultArchive = Archive{
	Interval: time.Minute,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultCustoms returns the default customs authority gateway settings.
func DefaultCustoms() Customs {
	return defaultCustoms
}

// DefaultArchive returns the default archiver settings.
func DefaultArchive() Archive {
	return defaultArchive
}
