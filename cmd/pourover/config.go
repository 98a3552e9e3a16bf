package main

import (
	"github.com/metalagman/pourover/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func loadConfig() (config.Config, error) {
	v := viper.GetViper()
	config.SetDefaults(v)
	config.BindEnv(v)
	used, err := config.Read(v, cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if used != "" {
		log.Debug().Str("path", used).Msg("config loaded")
	}
	return config.Load(v)
}
