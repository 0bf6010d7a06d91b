package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Cron      CronConfig      `mapstructure:"cron"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`

	Valuation   ValuationConfig   `mapstructure:"valuation"`
	Probability ProbabilityConfig `mapstructure:"probability"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	DashboardRefresh string `mapstructure:"dashboard_refresh"`
}

// DashboardConfig governs the advisory freshness guard. The TTL only
// suppresses periodic refetch cycles; local mutations always invalidate.
type DashboardConfig struct {
	FreshnessTTL time.Duration `mapstructure:"freshness_ttl"`
}

// ValuationConfig holds the defaults applied when an opportunity leaves an
// optional valuation input unset. Percent values are whole numbers (13 means 13%).
type ValuationConfig struct {
	DefaultRecurringMonths   int     `mapstructure:"default_recurring_months"`
	DefaultDolarRate         float64 `mapstructure:"default_dolar_rate"`
	DefaultTotalDiscountPct  float64 `mapstructure:"default_total_discount_percent"`
	DefaultClientDiscountPct float64 `mapstructure:"default_client_discount_percent"`
	BillingHorizonMonths     int     `mapstructure:"billing_horizon_months"`
}

// ProbabilityConfig is the canonical stage-to-win-probability mapping used
// when an opportunity carries no explicit probability. It is configuration,
// not code, so a product decision can change it in one place.
type ProbabilityConfig struct {
	Negotiation     float64 `mapstructure:"negotiation"`
	FormalAgreement float64 `mapstructure:"formal_agreement"`
	SignedContract  float64 `mapstructure:"signed_contract"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.dashboard_refresh", "@every 60s")
	v.SetDefault("dashboard.freshness_ttl", "60s")

	v.SetDefault("valuation.default_recurring_months", 24)
	v.SetDefault("valuation.default_dolar_rate", 5.30)
	v.SetDefault("valuation.default_total_discount_percent", 13)
	v.SetDefault("valuation.default_client_discount_percent", 4)
	v.SetDefault("valuation.billing_horizon_months", 24)

	v.SetDefault("probability.negotiation", 30)
	v.SetDefault("probability.formal_agreement", 70)
	v.SetDefault("probability.signed_contract", 100)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
