package config

import (
	"os"

	"github.com/pseudomuto/migrun/pkg/consts"
	"go.uber.org/fx"
)

// ConfigEnvVar overrides the location of the project configuration file.
const ConfigEnvVar = "MIGRUN_CONFIG"

var Module = fx.Module("config", fx.Provide(
	// Loads migrun.yaml (or the file named by MIGRUN_CONFIG) when present and
	// falls back to the defaults otherwise, so commands work in a bare
	// directory as long as flags supply what's missing.
	func() (*Config, error) {
		path := os.Getenv(ConfigEnvVar)
		if path == "" {
			path = consts.DefaultConfigFile
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return Defaults(), nil
			}
		}

		return LoadConfigFile(path)
	},
))
