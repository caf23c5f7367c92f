package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults loaded from the config file. All fields are
// optional; flags override them.
type Config struct {
	// Convert defaults.
	Convert struct {
		// Target is the default target generation ("GPML2013a" or
		// "GPML2021").
		Target string `toml:"target"`
	} `toml:"convert"`

	// Serve defaults.
	Serve struct {
		Addr string `toml:"addr"`
		// Store selects the archive backend: "memory", "file", or
		// "mongo".
		Store    string `toml:"store"`
		StoreDir string `toml:"store_dir"`
		MongoURI string `toml:"mongo_uri"`
	} `toml:"serve"`

	// Xref defaults.
	Xref struct {
		// Cache selects the resolver cache backend: "memory", "file", or
		// "redis".
		Cache     string `toml:"cache"`
		CacheDir  string `toml:"cache_dir"`
		RedisAddr string `toml:"redis_addr"`
		// Registry points resolution at a registry service instead of the
		// built-in source table.
		Registry string `toml:"registry"`
	} `toml:"xref"`
}

// defaultConfig returns the built-in defaults applied before the config
// file and flags.
func defaultConfig() Config {
	var cfg Config
	cfg.Convert.Target = "GPML2021"
	cfg.Serve.Addr = ":8080"
	cfg.Serve.Store = "memory"
	cfg.Xref.Cache = "memory"
	return cfg
}

// configPath returns the config file location, ~/.config/pathmark/config.toml
// unless overridden.
func configPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file when it exists. A missing file is not an
// error; a malformed one is, so typos surface instead of silently applying
// defaults.
func loadConfig(override string) (Config, error) {
	cfg := defaultConfig()

	path, err := configPath(override)
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return defaultConfig(), err
	}
	return cfg, nil
}
