package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AlphaVantage AlphaVantageConfig `mapstructure:"alphavantage"`
	Symbols      SymbolsConfig      `mapstructure:"symbols"`
	Output       OutputConfig       `mapstructure:"output"`
	Log          LogConfig          `mapstructure:"log"`
	Postgres     PostgresConfig     `mapstructure:"postgres"`
}

type AlphaVantageConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	WindowMonths int           `mapstructure:"window_months"` // fetch window, counted back from today
}

// SymbolsConfig names the ticker pair to compare and the database each
// ticker's rows are routed to.
type SymbolsConfig struct {
	Pair      []string          `mapstructure:"pair"`
	Databases map[string]string `mapstructure:"databases"` // ticker -> database name
}

type OutputConfig struct {
	Dir            string `mapstructure:"dir"`             // per-symbol CSV files land here
	ChartFile      string `mapstructure:"chart_file"`      // normalized performance PNG
	ComparisonFile string `mapstructure:"comparison_file"` // combined comparison CSV
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")

	// Resolve the config directory for both `go run` and installed binaries.
	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		v.AddConfigPath(filepath.Join(pwd, "../../config"))
		v.AddConfigPath(filepath.Join(pwd, "config"))
	} else {
		v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
	}

	// Support environment variables with dot notation (e.g., ALPHAVANTAGE_API_KEY)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	if len(cfg.Symbols.Pair) != 2 {
		log.Fatalf("symbols.pair must name exactly 2 tickers, got %d", len(cfg.Symbols.Pair))
	}

	return &cfg
}

// ResolveAPIKey returns the Alpha Vantage API key for the given environment.
// In prod the key comes from Parameter Store; otherwise the configured value
// (typically injected via ALPHAVANTAGE_API_KEY) is used as-is.
func (cfg *AlphaVantageConfig) ResolveAPIKey(env string) string {
	if env == "prod" {
		if key := getParameterStoreValue("STOCKCOMPARE_ALPHAVANTAGE_API_KEY", true); key != "" {
			return key
		}
	}
	return cfg.APIKey
}
