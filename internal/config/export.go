package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ExportConfig tunes the analytics export pipeline.
type ExportConfig struct {
	FilenamePrefix   string `mapstructure:"filenamePrefix"`
	ReportTitle      string `mapstructure:"reportTitle"`
	Currency         string `mapstructure:"currency"`
	TopLimit         int    `mapstructure:"topLimit"`
	DefaultRangeDays int    `mapstructure:"defaultRangeDays"`
	Epoch            string `mapstructure:"epoch"`
	RegistryCapacity int    `mapstructure:"registryCapacity"`
}

func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		FilenamePrefix:   "Analytics_Report",
		ReportTitle:      "Analytics Report",
		Currency:         "USD",
		TopLimit:         5,
		DefaultRangeDays: 7,
		Epoch:            "2020-01-01",
		RegistryCapacity: 10,
	}
}

// EpochDate returns the earliest date an export range may start on.
func (c ExportConfig) EpochDate() time.Time {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(c.Epoch))
	if err != nil {
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return parsed.UTC()
}

type ExportConfigHolder struct {
	current atomic.Value // holds ExportConfig
}

// NewStaticExportConfigHolder wraps a fixed config, mostly for tests.
func NewStaticExportConfigHolder(cfg ExportConfig) *ExportConfigHolder {
	holder := &ExportConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewExportConfigHolder(appCfg Config, log *zap.Logger) (*ExportConfigHolder, error) {
	v := viper.New()

	if path := strings.TrimSpace(appCfg.ExportConfigPath); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("export")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/shopdesk")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SHOPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultExportConfig()
	v.SetDefault("export.filenamePrefix", defaults.FilenamePrefix)
	v.SetDefault("export.reportTitle", defaults.ReportTitle)
	v.SetDefault("export.currency", defaults.Currency)
	v.SetDefault("export.topLimit", defaults.TopLimit)
	v.SetDefault("export.defaultRangeDays", defaults.DefaultRangeDays)
	v.SetDefault("export.epoch", defaults.Epoch)
	v.SetDefault("export.registryCapacity", defaults.RegistryCapacity)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	cfg := defaults
	if err := v.UnmarshalKey("export", &cfg); err != nil {
		return nil, err
	}
	if err := ValidateExportConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticExportConfigHolder(cfg)

	if fileLoaded && appCfg.WatchExportConfig {
		v.OnConfigChange(func(e fsnotify.Event) {
			updated := DefaultExportConfig()
			if err := v.UnmarshalKey("export", &updated); err != nil {
				log.Warn("export config reload failed", zap.Error(err))
				return
			}
			if err := ValidateExportConfig(updated); err != nil {
				log.Warn("invalid export config ignored", zap.Error(err))
				return
			}
			holder.current.Store(updated)
			log.Info("export config reloaded", zap.String("file", e.Name))
		})
		v.WatchConfig()
	}

	return holder, nil
}

func (h *ExportConfigHolder) Get() ExportConfig {
	return h.current.Load().(ExportConfig)
}

func ValidateExportConfig(cfg ExportConfig) error {
	if strings.TrimSpace(cfg.FilenamePrefix) == "" {
		return errors.New("export.filenamePrefix cannot be empty")
	}
	if strings.ContainsAny(cfg.FilenamePrefix, `/\`) {
		return errors.New("export.filenamePrefix cannot contain path separators")
	}
	if len(strings.TrimSpace(cfg.Currency)) != 3 {
		return fmt.Errorf("export.currency must be an ISO 4217 code, got %q", cfg.Currency)
	}
	if cfg.TopLimit <= 0 {
		return errors.New("export.topLimit must be positive")
	}
	if cfg.DefaultRangeDays <= 0 {
		return errors.New("export.defaultRangeDays must be positive")
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(cfg.Epoch)); err != nil {
		return fmt.Errorf("export.epoch must be YYYY-MM-DD: %w", err)
	}
	if cfg.RegistryCapacity <= 0 {
		return errors.New("export.registryCapacity must be positive")
	}
	return nil
}
