package app

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"b3-data/internal/ingest"
)

// Destination modes.
const (
	DestLocal = "local"
	DestS3    = "s3"
	DestBoth  = "both"
)

// defaultTickers is the curated B3 list used when TICKERS is not set.
var defaultTickers = []string{
	"VALE3.SA", "PETR4.SA", "ITUB4.SA", "BBDC4.SA", "ABEV3.SA",
	"WEGE3.SA", "BBAS3.SA", "B3SA3.SA", "RENT3.SA", "SUZB3.SA",
}

// Config holds one invocation's configuration, loaded from the environment
// with an optional .env file. It is an explicit value passed into the
// wiring, not module-level state, so tests can build their own.
type Config struct {
	Tickers     []string
	Period      string
	Interval    string
	Date        string
	StartDate   string
	EndDate     string
	DataDir     string
	S3Bucket    string
	S3Prefix    string
	Destination string // local | s3 | both
	SaveFormat  string // parquet | csv | json
	LogLevel    string
}

// LoadConfig reads configuration with viper. Precedence, lowest to highest:
// defaults, .env file (if present), environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("PERIOD", "1mo")
	v.SetDefault("INTERVAL", "1d")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("S3_PREFIX", "raw")
	v.SetDefault("SAVE_FORMAT", "parquet")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetConfigFile(".env")
	_ = v.ReadInConfig() // no .env is fine
	v.AutomaticEnv()

	cfg := &Config{
		Tickers:     splitList(v.GetString("TICKERS")),
		Period:      v.GetString("PERIOD"),
		Interval:    v.GetString("INTERVAL"),
		Date:        v.GetString("DATE"),
		StartDate:   v.GetString("START_DATE"),
		EndDate:     v.GetString("END_DATE"),
		DataDir:     v.GetString("DATA_DIR"),
		S3Bucket:    v.GetString("S3_BUCKET"),
		S3Prefix:    v.GetString("S3_PREFIX"),
		Destination: strings.ToLower(v.GetString("DESTINATION")),
		SaveFormat:  v.GetString("SAVE_FORMAT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
	}
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = append([]string(nil), defaultTickers...)
	}
	if cfg.Destination == "" {
		// default: keep local output; also upload when a bucket is configured
		if cfg.S3Bucket != "" {
			cfg.Destination = DestBoth
		} else {
			cfg.Destination = DestLocal
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Destination {
	case DestLocal, DestS3, DestBoth:
	default:
		return fmt.Errorf("unsupported DESTINATION %q (use: local, s3, both)", c.Destination)
	}
	if c.Destination != DestLocal && c.S3Bucket == "" {
		return fmt.Errorf("DESTINATION %q requires S3_BUCKET", c.Destination)
	}
	return nil
}

// WriteLocal reports whether partitions go to the local filesystem.
func (c *Config) WriteLocal() bool { return c.Destination != DestS3 }

// UploadS3 reports whether partitions go to object storage.
func (c *Config) UploadS3() bool { return c.Destination != DestLocal }

// Request builds the ingestion request for this invocation.
func (c *Config) Request() ingest.Request {
	return ingest.Request{
		Tickers:   c.Tickers,
		Period:    c.Period,
		Interval:  c.Interval,
		Date:      c.Date,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
