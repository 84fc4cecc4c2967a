package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds host-level settings. Values come from an optional
// wordgrid.yaml in the working directory, WORDGRID_* environment
// variables, and defaults, in that order of preference.
type Config struct {
	LevelDirectory string
	LogLevel       string
	HistoryFile    string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("wordgrid")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("level-directory", "./levels")
	v.SetDefault("log-level", "info")
	v.SetDefault("history-file", "/tmp/wordgrid_readline.tmp")

	v.SetConfigName("wordgrid")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		LevelDirectory: v.GetString("level-directory"),
		LogLevel:       v.GetString("log-level"),
		HistoryFile:    v.GetString("history-file"),
	}, nil
}
