package config

import (
	"collector/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort           int
	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int
	StaticDir            string
	BodyLimitBytes       int
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	v := viper.New()
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DATABASE_DB_PATH", "data/collector.db")
	v.SetDefault("DATABASE_CACHE_ADDRESS", "")
	v.SetDefault("DATABASE_CACHE_PORT", 6379)
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("BODY_LIMIT_BYTES", 10*1024*1024)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, log.Err("failed to read config file", err)
		}
	}

	config := Config{
		ServerPort:           v.GetInt("SERVER_PORT"),
		DatabaseDbPath:       v.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress: v.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:    v.GetInt("DATABASE_CACHE_PORT"),
		StaticDir:            v.GetString("STATIC_DIR"),
		BodyLimitBytes:       v.GetInt("BODY_LIMIT_BYTES"),
	}

	if config.DatabaseDbPath == "" {
		return Config{}, log.ErrMsg("database path is empty")
	}

	log.Info("Config initialized",
		"serverPort", config.ServerPort,
		"databaseDbPath", config.DatabaseDbPath,
		"cacheEnabled", config.DatabaseCacheAddress != "",
	)

	return config, nil
}
