package os

import "os"

// Get environment variable. Empty value is treated as missing.
func LookupEnv(name string) (string, bool) {
	val := os.Getenv(name)
	return val, val != ""
}
