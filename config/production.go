package config

import "os"

func productionConfig() Config {
	return Config{
		Env:        EnvProduction,
		Locales:    localesFromEnv(),
		RegionHint: os.Getenv("TEXTDATE_REGION"),
		Strict:     os.Getenv("TEXTDATE_STRICT") == "1",
	}
}
