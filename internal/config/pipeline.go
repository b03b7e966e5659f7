package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Pipeline holds the export tunables. Values come from orderpulse.yml when
// one is found, otherwise from defaults; a handful of env overrides exist for
// container deployments without a mounted config file.
type Pipeline struct {
	OutputDir      string `mapstructure:"outputDir"`
	CachePath      string `mapstructure:"cachePath"`
	PageSize       int    `mapstructure:"pageSize"`
	CacheFreshDays int    `mapstructure:"cacheFreshDays"`
	RangeDays      int    `mapstructure:"rangeDays"`
	WriteHTML      bool   `mapstructure:"writeHtml"`
}

func DefaultPipeline() Pipeline {
	return Pipeline{
		OutputDir:      "data",
		CachePath:      "data/cache/adspend.db",
		PageSize:       30,
		CacheFreshDays: 3,
		RangeDays:      30,
		WriteHTML:      true,
	}
}

// LoadPipeline reads orderpulse.yml from the usual locations. A missing file
// is not an error; an unreadable one logs and falls back to defaults.
func LoadPipeline() Pipeline {
	defaults := DefaultPipeline()

	v := viper.New()
	v.SetConfigName("orderpulse")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/orderpulse")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ORDERPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("pipeline.outputDir", defaults.OutputDir)
	v.SetDefault("pipeline.cachePath", defaults.CachePath)
	v.SetDefault("pipeline.pageSize", defaults.PageSize)
	v.SetDefault("pipeline.cacheFreshDays", defaults.CacheFreshDays)
	v.SetDefault("pipeline.rangeDays", defaults.RangeDays)
	v.SetDefault("pipeline.writeHtml", defaults.WriteHTML)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("[pipeline-config] unreadable config ignored: %v", err)
		}
	}

	var cfg Pipeline
	if err := v.UnmarshalKey("pipeline", &cfg); err != nil {
		log.Printf("[pipeline-config] invalid config ignored: %v", err)
		return defaults
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.CacheFreshDays < 0 {
		cfg.CacheFreshDays = defaults.CacheFreshDays
	}
	if cfg.RangeDays <= 0 {
		cfg.RangeDays = defaults.RangeDays
	}
	return cfg
}
