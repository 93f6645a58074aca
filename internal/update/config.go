package update

import (
	"os"
	"path/filepath"
	"strings"
)

type RuntimeConfig struct {
	DatabasePath string
	GroupMode    bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath: defaultDatabasePath(),
		GroupMode:    false,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("FOCUSD_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvBool("FOCUSD_GROUP_MODE"); ok {
		cfg.GroupMode = v
	}
	return cfg
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "focusd.db"
	}
	return filepath.Join(dir, "focusd", "focusd.db")
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
