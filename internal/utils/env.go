package utils

import (
  "os"
  "strconv"
  "strings"

  "github.com/masarhq/masar-backend/internal/logger"
)

// Env lookups log where each value came from (env or default) so a
// misconfigured deploy shows up in the startup log. Malformed values fall
// back to the default with a warning instead of failing startup.

func GetEnv(key, defaultVal string, log *logger.Logger) string {
  raw, ok := os.LookupEnv(key)
  if !ok {
    logResolved(log, key, "default", defaultVal)
    return defaultVal
  }
  logResolved(log, key, "env", raw)
  return raw
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
  raw, ok := os.LookupEnv(key)
  if !ok {
    logResolved(log, key, "default", defaultVal)
    return defaultVal
  }
  i, err := strconv.Atoi(strings.TrimSpace(raw))
  if err != nil {
    if log != nil {
      log.Warn("Environment variable is not an integer, using default", "env_var", key, "provided", raw, "default", defaultVal)
    }
    return defaultVal
  }
  logResolved(log, key, "env", i)
  return i
}

// GetEnvAsBool accepts 1/t/true/yes/on and 0/f/false/no/off in any case.
func GetEnvAsBool(key string, defaultVal bool, log *logger.Logger) bool {
  raw, ok := os.LookupEnv(key)
  if !ok {
    logResolved(log, key, "default", defaultVal)
    return defaultVal
  }
  switch strings.TrimSpace(strings.ToLower(raw)) {
  case "1", "t", "true", "yes", "on":
    logResolved(log, key, "env", true)
    return true
  case "0", "f", "false", "no", "off":
    logResolved(log, key, "env", false)
    return false
  default:
    if log != nil {
      log.Warn("Environment variable is not a boolean, using default", "env_var", key, "provided", raw, "default", defaultVal)
    }
    return defaultVal
  }
}

func logResolved(log *logger.Logger, key, source string, value interface{}) {
  if log == nil {
    return
  }
  log.Debug("Resolved environment variable", "env_var", key, "source", source, "value", value)
}
