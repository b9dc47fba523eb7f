package commands

import (
	"errors"
	"fmt"
	"time"

	"farescan/lib/configutil"
	"farescan/lib/restyutil"
	"farescan/lib/scrapers/skyscanner"
)

type SettleConfig struct {
	// 0 falls back to the default, use a negative value to skip the wait
	DelayMs          int `json:"delay_ms"`
	MaxRetries       int `json:"max_retries"`
	InitialBackoffMs int `json:"initial_backoff_ms"`
	MaxBackoffMs     int `json:"max_backoff_ms"`
}

type Config struct {
	BaseUrl        string `json:"base_url"`
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// a negative value disables throttling
	RequestsPerSecond     float64      `json:"requests_per_second"`
	Settle                SettleConfig `json:"settle"`
	RejectSingleCandidate bool         `json:"reject_single_candidate"`
	// "raw" or "script"
	Extractor string `json:"extractor"`
	// when set, every http message is dumped to a file in this directory
	RestyDumpDir string `json:"resty_dump_dir"`
}

func defaultConfig() Config {
	opts := skyscanner.DefaultClientOptions()
	return Config{
		BaseUrl:           opts.BaseUrl,
		UserAgent:         opts.UserAgent,
		TimeoutSeconds:    int(opts.Timeout / time.Second),
		RequestsPerSecond: opts.RequestsPerSecond,
		Settle: SettleConfig{
			DelayMs:          int(opts.Settle.Delay / time.Millisecond),
			MaxRetries:       opts.Settle.MaxRetries,
			InitialBackoffMs: int(opts.Settle.InitialBackoff / time.Millisecond),
			MaxBackoffMs:     int(opts.Settle.MaxBackoff / time.Millisecond),
		},
		Extractor: extractor_raw,
	}
}

// loadConfig reads the config file at path, a missing file yields the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, defaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

const (
	extractor_raw    = "raw"
	extractor_script = "script"
)

var errUnknownExtractor = errors.New("unknown extractor")

func parseExtractor(name string) (skyscanner.TokenExtractor, error) {
	switch name {
	case extractor_raw, "":
		return skyscanner.RawExtractor{}, nil
	case extractor_script:
		return skyscanner.ScriptExtractor{}, nil
	}
	return nil, fmt.Errorf("%w %q, expected %q or %q", errUnknownExtractor, name, extractor_raw, extractor_script)
}

func millis(n int) time.Duration {
	if n < 0 {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}

// ClientOptions maps the config onto the scraper client's options.
func (c Config) ClientOptions() (skyscanner.ClientOptions, error) {
	extractor, err := parseExtractor(c.Extractor)
	if err != nil {
		return skyscanner.ClientOptions{}, err
	}

	opts := skyscanner.ClientOptions{
		BaseUrl:           c.BaseUrl,
		UserAgent:         c.UserAgent,
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.RequestsPerSecond,
		Settle: skyscanner.SettlePolicy{
			Delay:          millis(c.Settle.DelayMs),
			MaxRetries:     c.Settle.MaxRetries,
			InitialBackoff: millis(c.Settle.InitialBackoffMs),
			MaxBackoff:     millis(c.Settle.MaxBackoffMs),
		},
		Extractor:             extractor,
		RejectSingleCandidate: c.RejectSingleCandidate,
	}

	if c.RestyDumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(c.RestyDumpDir)
		if err != nil {
			return skyscanner.ClientOptions{}, fmt.Errorf("create resty dump dir: %w", err)
		}
		opts.InstrumentOutput = out
	}
	return opts, nil
}
