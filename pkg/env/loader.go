// Package env loads configuration from the process environment
// and optional .env files, with provider-to-API-key mappings.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Loader defines the interface for environment variable
// management.
type Loader interface {
	// Load reads environment variables from a .env file.
	Load(filepath string) error
	// Get retrieves an environment variable value.
	Get(key string) string
	// GetRequired retrieves a required environment variable or
	// returns an error.
	GetRequired(key string) (string, error)
	// GetWithDefault retrieves an environment variable with a
	// default fallback.
	GetWithDefault(key, defaultValue string) string
	// GetAPIKey retrieves an API key for a named provider.
	GetAPIKey(provider string) string
}

// DefaultLoader implements Loader with .env file support and
// provider mappings.
type DefaultLoader struct {
	mu       sync.RWMutex
	vars     map[string]string
	mappings map[string]string // provider name -> env var name
}

// NewLoader creates a DefaultLoader with the standard provider
// API key mappings.
func NewLoader() *DefaultLoader {
	return &DefaultLoader{
		vars: make(map[string]string),
		mappings: map[string]string{
			"openai":    "OPENAI_API_KEY",
			"anthropic": "ANTHROPIC_API_KEY",
			"claude":    "ANTHROPIC_API_KEY",
		},
	}
}

// Load reads a .env file. Lines are KEY=VALUE; blank lines and
// #-comments are skipped; surrounding quotes on values are
// stripped.
func (l *DefaultLoader) Load(filepath string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", filepath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)
		l.vars[key] = value
	}

	return scanner.Err()
}

// Get retrieves a variable. OS environment takes precedence over
// .env file values.
func (l *DefaultLoader) Get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vars[key]
}

// GetRequired retrieves a variable or errors when it is unset.
func (l *DefaultLoader) GetRequired(key string) (string, error) {
	v := l.Get(key)
	if v == "" {
		return "", fmt.Errorf(
			"required environment variable %s is not set", key,
		)
	}
	return v, nil
}

// GetWithDefault retrieves a variable with a fallback.
func (l *DefaultLoader) GetWithDefault(
	key, defaultValue string,
) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return defaultValue
}

// GetAPIKey retrieves the API key for a named provider. Unknown
// providers fall back to <PROVIDER>_API_KEY.
func (l *DefaultLoader) GetAPIKey(provider string) string {
	l.mu.RLock()
	envVar, ok := l.mappings[strings.ToLower(provider)]
	l.mu.RUnlock()
	if !ok {
		envVar = strings.ToUpper(provider) + "_API_KEY"
	}
	return l.Get(envVar)
}
