package main

import (
	"os"

	"github.com/icco/gamecrm/hubspot"
	"github.com/joho/godotenv"
)

const defaultPort = "3000"

// Config is read once at startup and never changes afterwards.
type Config struct {
	AccessToken string
	ObjectType  string
	BaseURL     string
	Port        string

	// IsDev turns off SSL redirects and HSTS.
	IsDev bool

	Revision string
	Tag      string
	Branch   string
}

// LoadConfig loads a .env file if one exists and then reads the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnw("could not load .env", "error", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from getenv, applying defaults. A missing
// access token is logged and otherwise tolerated.
func ConfigFromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		AccessToken: getenv("ACCESS_TOKEN"),
		ObjectType:  getenv("HUBSPOT_OBJECT_TYPE"),
		BaseURL:     getenv("HUBSPOT_BASE_URL"),
		Port:        getenv("PORT"),
		IsDev:       getenv("NAT_ENV") != "production",
		Revision:    getenv("GIT_REVISION"),
		Tag:         getenv("GIT_TAG"),
		Branch:      getenv("GIT_BRANCH"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.ObjectType == "" {
		cfg.ObjectType = hubspot.DefaultObjectType
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = hubspot.DefaultBaseURL
	}

	if cfg.AccessToken == "" {
		log.Warnw("ACCESS_TOKEN is not set, HubSpot calls will fail")
	}

	return cfg
}
