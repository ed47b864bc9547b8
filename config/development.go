package config

import "os"

func developmentConfig() Config {
	return Config{
		Env:        EnvDevelopment,
		Locales:    localesFromEnv(),
		RegionHint: os.Getenv("TEXTDATE_REGION"),
		Strict:     false,
	}
}
