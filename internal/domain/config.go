package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ProjectConfig holds project-level configuration loaded from .complyview.yaml.
type ProjectConfig struct {
	Report       string        `mapstructure:"report"        yaml:"report"        json:"report"`
	BaseURL      string        `mapstructure:"base_url"      yaml:"base_url"      json:"base_url"`
	Statuses     []string      `mapstructure:"statuses"      yaml:"statuses"      json:"statuses"`
	PoliciesDir  string        `mapstructure:"policies_dir"  yaml:"policies_dir"  json:"policies_dir,omitempty"`
	ResourcesDir string        `mapstructure:"resources_dir" yaml:"resources_dir" json:"resources_dir,omitempty"`
	Metrics      MetricsConfig `mapstructure:"metrics"       yaml:"metrics"       json:"metrics"`
	Log          LogConfig     `mapstructure:"log"           yaml:"log"           json:"log"`
}

// MetricsConfig configures the Prometheus exporter.
type MetricsConfig struct {
	Addr     string        `mapstructure:"addr"     yaml:"addr"     json:"addr"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval" json:"interval"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

const (
	DefaultReportFile      = "compliance-report.json"
	DefaultBaseURL         = "http://localhost:8080"
	DefaultMetricsAddr     = ":9102"
	DefaultMetricsInterval = 30 * time.Second
	DefaultLogLevel        = "info"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Report:   DefaultReportFile,
		BaseURL:  DefaultBaseURL,
		Statuses: []string{"fail", "error", "pass"},
		Metrics: MetricsConfig{
			Addr:     DefaultMetricsAddr,
			Interval: DefaultMetricsInterval,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// ChartStatuses returns the configured statuses as typed values.
// Call Validate first; invalid entries are skipped here.
func (c ProjectConfig) ChartStatuses() []Status {
	var out []Status
	for _, s := range c.Statuses {
		if st, err := ParseStatus(s); err == nil {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		return Statuses()
	}
	return out
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if _, err := ParseStatuses(c.Statuses); err != nil {
		return fmt.Errorf("statuses: %w", err)
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base_url %q must be absolute (scheme and host)", c.BaseURL)
		}
	}

	if c.Metrics.Interval < 0 || (c.Metrics.Interval == 0 && c.Metrics.Addr != "") {
		return fmt.Errorf("metrics.interval must be > 0 (got %s)", c.Metrics.Interval)
	}

	if c.Log.Level != "" && !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("unknown log.level %q (valid: %s)", c.Log.Level, strings.Join(validLogLevels, ", "))
	}

	return nil
}

func isValidLogLevel(level string) bool {
	for _, l := range validLogLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}
