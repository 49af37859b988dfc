package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvInt reads an integer override from the environment. An unset or empty
// variable reports ok=false; a set but unparsable one reports an error.
func EnvInt(key string) (int, bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, true, nil
}

// EnvString reads a string override from the environment. An unset or empty
// variable reports ok=false.
func EnvString(key string) (string, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}
