package env

import "os"

// Prefix is prepended to lookups so ATELIE_LOG_FORMAT wins over LOG_FORMAT,
// matching how envconfig namespaces the rest of the configuration.
const Prefix = "ATELIE_"

// Get returns the prefixed variable if set, then the bare one, then fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(Prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
