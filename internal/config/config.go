package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the resolved run configuration. In vizhener.yaml the keys are
// snake_case with a nested redis section; as environment variables they
// are VIZHENER_MIN_KEY_LENGTH, VIZHENER_REDIS_ADDR and so on.
type Config struct {
	Dictionary    string `mapstructure:"dictionary"`
	Text          string `mapstructure:"text"`
	Top           int    `mapstructure:"top"`
	Workers       int    `mapstructure:"workers"`
	MinKeyLength  int    `mapstructure:"min_key_length"`
	ProgressEvery int    `mapstructure:"progress_every"`
	Lang          string `mapstructure:"lang"`
	Debug         bool   `mapstructure:"debug"`

	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// Defaults: russian.txt, top 10, one worker.
var Defaults = map[string]any{
	"dictionary":     "russian.txt",
	"text":           "",
	"top":            10,
	"workers":        1,
	"min_key_length": 5,
	"progress_every": 10_000,
	"lang":           "ru",
	"debug":          false,
	"redis.addr":     "",
	"redis.password": "",
	"redis.db":       0,
	"redis.key":      "custom_dict",
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"dictionary":     "dictionary",
	"text":           "text",
	"top":            "top",
	"workers":        "workers",
	"min-key-length": "min_key_length",
	"progress-every": "progress_every",
	"lang":           "lang",
	"debug":          "debug",
	"redis-addr":     "redis.addr",
	"redis-password": "redis.password",
	"redis-db":       "redis.db",
	"redis-key":      "redis.key",
}

// Load resolves configuration with precedence flags > env > file > defaults.
// An explicit file that does not exist is an error; a missing default
// vizhener.yaml is not.
func Load(cmd *cobra.Command, file string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("vizhener")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("vizhener")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// subcommands define only some of the flags
	if cmd != nil {
		for name, key := range flagKeys {
			f := cmd.Flags().Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return c, err
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
