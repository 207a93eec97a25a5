package testutil

import (
	"os"
	"strings"
	"testing"
)

// GetEnvOrSkip returns the value of the environment variable. If not set, skip the test.
func GetEnvOrSkip(t *testing.T, key string) string {
	t.Helper()
	return GetEnvsOrSkip(t, key)[0]
}

// GetEnvsOrSkip returns values of all keys in order, skipping the test unless every key is set.
// Live API tests need a full credential set, so a partial one is treated as absent.
func GetEnvsOrSkip(t *testing.T, keys ...string) []string {
	t.Helper()

	values := make([]string, len(keys))
	var missing []string
	for i, key := range keys {
		values[i] = os.Getenv(key)
		if values[i] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		t.Skipf("Environment variable(s) %s not set, skipping test", strings.Join(missing, ", "))
	}
	return values
}
