package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DBDSN         string
	AdminPassword string // shared admin credential, compared verbatim at login
	JWTSecret     string // signs admin session tokens; rotating it logs everyone out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func Load() Config {
	return Config{
		Port:          getint("PORT", 8080),
		DBDSN:         getenv("DB_DSN", "file:blogd.db?_foreign_keys=on"),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),
		JWTSecret:     getenv("ADMIN_JWT_SECRET", ""),
	}
}
