package config

import (
	"os"
	"strings"
)

type Config struct {
	Env        Env
	Locales    []string // nil means all registered locales
	RegionHint string
	Strict     bool
}

type Env int

const (
	EnvDevelopment Env = iota
	EnvTesting
	EnvProduction
)

func (e Env) IsDevOrTest() bool {
	return e == EnvDevelopment || e == EnvTesting
}

var Cfg Config

func init() {
	if isTesting {
		Cfg = testingConfig()
		return
	}

	_, ok := os.LookupEnv("TEXTDATE_ENV")
	if !ok {
		Cfg = developmentConfig()
		return
	}

	Cfg = productionConfig()
}

func localesFromEnv() []string {
	value, ok := os.LookupEnv("TEXTDATE_LOCALES")
	if !ok || value == "" {
		return nil
	}
	var codes []string
	for _, code := range strings.Split(value, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
