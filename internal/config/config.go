package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig configures the event-table loader.
type DataConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver"`               // csv | xlsx | sqlite | postgres
	Dir          string `yaml:"dir" mapstructure:"dir"`                     // directory of partitioned CSV files
	Pattern      string `yaml:"pattern" mapstructure:"pattern"`             // partition filename pattern, e.g. data_part%d.csv
	Path         string `yaml:"path" mapstructure:"path"`                   // xlsx / sqlite file path
	Sheet        string `yaml:"sheet" mapstructure:"sheet"`                 // xlsx sheet name (first sheet if empty)
	Table        string `yaml:"table" mapstructure:"table"`                 // sqlite / postgres table name
	DatabaseURL  string `yaml:"database_url" mapstructure:"database_url"`   // postgres DSN
	Dictionaries string `yaml:"dictionaries" mapstructure:"dictionaries"`   // editorial dictionaries YAML (built-in defaults if empty)
}

// EngineConfig holds the analysis thresholds.
type EngineConfig struct {
	ChurnGapDays int `yaml:"churn_gap_days" mapstructure:"churn_gap_days"`
	FlowTopN     int `yaml:"flow_top_n" mapstructure:"flow_top_n"`
	DrillTopN    int `yaml:"drill_top_n" mapstructure:"drill_top_n"`
	BasketTopN   int `yaml:"basket_top_n" mapstructure:"basket_top_n"`
	ProductTopN  int `yaml:"product_top_n" mapstructure:"product_top_n"`
}

// StoreConfig configures the snapshot store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite | postgres
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RETENTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.driver", "csv")
	v.SetDefault("data.dir", ".")
	v.SetDefault("data.pattern", "data_part%d.csv")
	v.SetDefault("data.sheet", "")
	v.SetDefault("data.table", "events")
	v.SetDefault("engine.churn_gap_days", 45)
	v.SetDefault("engine.flow_top_n", 10)
	v.SetDefault("engine.drill_top_n", 5)
	v.SetDefault("engine.basket_top_n", 10)
	v.SetDefault("engine.product_top_n", 20)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "retention.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
