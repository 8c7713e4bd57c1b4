package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config keys. Every key is also settable via SIMLESS_* environment
// variables, with dots and dashes mapped to underscores.
const (
	cfgKeyPlugins   = "plugins"
	cfgKeyRunTime   = "run_time"
	cfgKeyTickRate  = "tick_rate"
	cfgKeySeed      = "seed"
	cfgKeyHeadless  = "headless"
	cfgKeyLogLevel  = "log.level"
	cfgKeyLogFormat = "log.format"
)

// loadConfig builds the viper instance backing the run command. A missing
// config file is fine; flags and env still apply.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyPlugins, []string{})
	v.SetDefault(cfgKeyRunTime, -1.0)
	v.SetDefault(cfgKeyTickRate, 60)
	v.SetDefault(cfgKeySeed, "")
	v.SetDefault(cfgKeyHeadless, true)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyLogFormat, "text")

	v.SetEnvPrefix("SIMLESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("simless")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
