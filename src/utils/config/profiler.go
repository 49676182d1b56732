package config

import (
	"github.com/spf13/viper"
)

type Profiler struct {
	Enabled bool
}

func setProfilerDefaults() {
	viper.SetDefault("Profiler.Enabled", "false")
}
