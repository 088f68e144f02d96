package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/complyview/complyview/internal/domain"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	fileName  = ".complyview.yaml"
	envPrefix = "COMPLYVIEW"
)

var logger = log.WithField("package", "config")

// Loader implements domain.ConfigLoader by reading .complyview.yaml and
// COMPLYVIEW_* environment variables. Environment values win over the file.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load reads .complyview.yaml from projectPath.
// A missing file yields DefaultConfig with environment overrides applied.
func (l *Loader) Load(projectPath string) (domain.ProjectConfig, error) {
	v := viper.New()
	setDefaults(v, domain.DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(projectPath, fileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
		}
		logger.WithField("file", path).Debug("loaded config")
	} else if !errors.Is(err, os.ErrNotExist) {
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("decoding %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d domain.ProjectConfig) {
	v.SetDefault("report", d.Report)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("statuses", d.Statuses)
	v.SetDefault("policies_dir", d.PoliciesDir)
	v.SetDefault("resources_dir", d.ResourcesDir)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("metrics.interval", d.Metrics.Interval)
	v.SetDefault("log.level", d.Log.Level)
}
