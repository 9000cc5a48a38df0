// Package config reads runtime configuration from the environment. A .env
// file is honored for local development; deployments set variables directly.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a .env file into the process environment when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

// GetEnv returns the value of key, or fallback when the variable is unset
// or empty.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// GetIntEnv returns key parsed as an int, or fallback when the variable is
// unset or not a number.
func GetIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// IsProduction reports whether the server runs with ENV=production.
// Development-only tooling, like the fiber request logger, keys off this.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
