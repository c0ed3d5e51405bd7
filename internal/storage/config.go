package storage

type Config struct {
	// Dialect is one of postgres, mysql or sqlite.
	Dialect string `conf:"dialect" yaml:"dialect" json:"dialect"`

	// DSN is the driver-specific data source name.
	DSN string `conf:"dsn" yaml:"dsn" json:"dsn"`

	Debug bool `conf:"debug" yaml:"debug" json:"debug"`
}
