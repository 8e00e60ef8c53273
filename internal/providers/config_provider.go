package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"stash/internal/structures"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "STASH_LOG_LEVEL")
	v.BindEnv("backend.baseUrl", "STASH_BACKEND_URL")
	v.BindEnv("persistence.saveInterval", "STASH_SAVE_INTERVAL")
	v.BindEnv("sweep.interval", "STASH_SWEEP_INTERVAL")
	v.BindEnv("cache.enabled", "STASH_CACHE_ENABLED")
	v.BindEnv("cache.size", "STASH_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "StashClientState"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
