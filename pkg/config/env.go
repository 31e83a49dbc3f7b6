package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvPattern      = "TESTNAMES_PATTERN"
	EnvRowFormat    = "TESTNAMES_ROW_FORMAT"
	EnvRepeatFormat = "TESTNAMES_REPEAT_FORMAT"
	EnvUIDMarker    = "TESTNAMES_UID_MARKER"
	EnvLogLevel     = "TESTNAMES_LOG_LEVEL"
	EnvLogFile      = "TESTNAMES_LOG_FILE"
	EnvMonitorAddr  = "TESTNAMES_MONITOR_ADDR"
)

// Env resolves variables from the process environment first and a
// loaded .env file second.
type Env struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewEnv creates an Env with no file-backed variables.
func NewEnv() *Env {
	return &Env{vars: make(map[string]string)}
}

// LoadFile reads KEY=VALUE lines from a .env file. Blank lines and
// lines starting with # are skipped; surrounding quotes are removed.
func (e *Env) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer file.Close()

	e.mu.Lock()
	defer e.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		e.vars[strings.TrimSpace(key)] = value
	}
	return scanner.Err()
}

// Get returns the value of key. The process environment takes
// precedence over file-backed values.
func (e *Env) Get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vars[key]
}

// ApplyEnv overlays non-empty environment values onto c.
func (c *Config) ApplyEnv(env *Env) {
	overlay := func(dst *string, key string) {
		if v := env.Get(key); v != "" {
			*dst = v
		}
	}
	overlay(&c.Naming.Pattern, EnvPattern)
	overlay(&c.Naming.RowFormat, EnvRowFormat)
	overlay(&c.Naming.RepeatFormat, EnvRepeatFormat)
	overlay(&c.Naming.UIDMarker, EnvUIDMarker)
	overlay(&c.Log.Level, EnvLogLevel)
	overlay(&c.Log.File, EnvLogFile)
	overlay(&c.Monitor.Addr, EnvMonitorAddr)
}
