package env

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, assuming environment variables are set directly.")
	}
}

// Get returns the value of key, or def when it is unset or empty.
func Get(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.WithField("key", key).Warnf("invalid boolean %q, using %t", val, def)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.WithField("key", key).Warnf("invalid duration %q, using %s", val, def)
		return def
	}
	return d
}
