// Package config loads process-wide defaults from environment variables
// and an optional YAML file via viper. It does not own the constants it
// configures -- storage.PageSize and the buffer pool capacity remain
// package vars with test-only setters/constructor args; config only
// supplies their initial values instead of hardcoding them.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the values a storemy process reads at startup.
type Config struct {
	PageSize        int    `mapstructure:"page_size"`
	BufferPoolPages int    `mapstructure:"buffer_pool_pages"`
	DataDir         string `mapstructure:"data_dir"`
	LogLevel        string `mapstructure:"log_level"`
}

// defaults mirror spec.md's page size (4096 bytes) and a buffer pool
// capacity sized for a teaching workload, not a production one.
func defaults() Config {
	return Config{
		PageSize:        4096,
		BufferPoolPages: 50,
		DataDir:         ".",
		LogLevel:        "info",
	}
}

// Load reads Config from STOREMY_-prefixed environment variables and,
// if path is non-empty, from a YAML file at path. Environment variables
// take precedence over the file; both take precedence over defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	d := defaults()
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("buffer_pool_pages", d.BufferPoolPages)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix("STOREMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
