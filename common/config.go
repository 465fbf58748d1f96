package common

import (
	"os"
	"strings"
)

// Config holds the deployment-time options recognized by the server.
// Values come from the environment (a .env file is loaded in main).
type Config struct {
	Env            string // "development" | "production" | "test"
	BindAddr       string // empty binds all interfaces
	Port           string
	DatabaseFile   string // sqlite file path; empty selects the memory store
	OwnerOpenID    string // the one identity that is granted admin
	SessionSecret  string
	AllowedOrigins []string
}

func LoadConfig() *Config {
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Env:           get("APP_ENV", "development"),
		BindAddr:      os.Getenv("BIND_ADDR"),
		Port:          get("PORT", "8080"),
		DatabaseFile:  os.Getenv("DATABASE_FILE"),
		OwnerOpenID:   get("OWNER_OPEN_ID", "owner-dev-openid"),
		SessionSecret: get("SESSION_SECRET", "joydao-dev-secret"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg
}

func (c *Config) IsTest() bool {
	return c.Env == "test"
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
