package main

import (
	"fmt"
	"strings"

	"github.com/mrcluk/sprig"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	minSamplesKey = "min-samples"
	maxDepthKey   = "max-depth"
	parallelKey   = "parallel"
	redisAddrKey  = "redis-addr"
	redisKeyKey   = "redis-key"
	tableKey      = "table"
)

// newViper returns a viper reading SPRIG_ prefixed environment variables,
// so that SPRIG_MAX_DEPTH sets max-depth.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("sprig")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	defaults := sprig.DefaultConfig()
	v.SetDefault(minSamplesKey, defaults.MinSamples)
	v.SetDefault(maxDepthKey, defaults.MaxDepth)
	v.SetDefault(parallelKey, false)
	v.SetDefault(redisKeyKey, "sprig")
	v.SetDefault(tableKey, "events")
	return v
}

func loadConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %v", path, err)
	}
	return nil
}

// bindFlags makes the given flags the source of their keys when set.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys ...string) error {
	for _, k := range keys {
		if err := v.BindPFlag(k, flags.Lookup(k)); err != nil {
			return fmt.Errorf("binding flag %s: %v", k, err)
		}
	}
	return nil
}

func trainingConfig(v *viper.Viper) sprig.Config {
	return sprig.Config{
		MinSamples: v.GetInt(minSamplesKey),
		MaxDepth:   v.GetInt(maxDepthKey),
		Parallel:   v.GetBool(parallelKey),
	}
}
