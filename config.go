package querykit

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var adapters = []string{"mysql", "postgres", "postgresql", "pgx", "pq", "sqlite", "sqlite3"}

// Config describes one database connection. Build it explicitly or with
// LoadConfig and pass it to Connect.
type Config struct {
	Adapter string `mapstructure:"adapter"`
	DSN     string `mapstructure:"dsn"`
	LogSQL  bool   `mapstructure:"log_sql"`
}

func (c Config) Validate() error {
	if !lo.Contains(adapters, strings.ToLower(c.Adapter)) {
		return &ConfigError{Field: ErrAdapter.Field, Msg: ErrAdapter.Msg + ": " + c.Adapter}
	}
	if c.DSN == "" {
		return ErrDSN
	}
	return nil
}

// LoadConfig reads a config file (any format viper understands). Keys can be
// overridden from the environment as QUERYKIT_ADAPTER, QUERYKIT_DSN and
// QUERYKIT_LOG_SQL.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("QUERYKIT")
	v.AutomaticEnv()

	v.SetDefault("adapter", "")
	v.SetDefault("dsn", "")
	v.SetDefault("log_sql", false)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "querykit: read config %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "querykit: decode config")
	}

	return cfg, cfg.Validate()
}
