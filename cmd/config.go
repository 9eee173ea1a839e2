package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/spotlight/internal/config"
	"github.com/zjrosen/spotlight/internal/infrastructure/sqlite"
	"github.com/zjrosen/spotlight/internal/log"
	"github.com/zjrosen/spotlight/internal/tour"
	"github.com/zjrosen/spotlight/internal/tracing"
)

// localConfigPath is checked before the user config directory.
const localConfigPath = ".spotlight/config.yaml"

const shutdownTimeout = 5 * time.Second

// findConfig returns the first existing config file in lookup order:
//  1. .spotlight/config.yaml (current directory)
//  2. ~/.config/spotlight/config.yaml (user config)
func findConfig() string {
	if _, err := os.Stat(localConfigPath); err == nil {
		return localConfigPath
	}
	if dir := config.DefaultConfigDir(); dir != "" {
		p := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func defaultConfigPath() string {
	if dir := config.DefaultConfigDir(); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return localConfigPath
}

// loadConfig reads cfgFile, or the first config found in lookup order. When
// no config exists anywhere a commented default is written. The returned path
// is the file the config came from, or "" when running on defaults.
func loadConfig(cfgFile string) (config.Config, string, error) {
	path := cfgFile
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		path = defaultConfigPath()
		if err := config.WriteDefaultConfig(path); err != nil {
			// Unwritable home: run on defaults.
			return config.Defaults(), "", nil
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return config.Config{}, path, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := config.Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, path, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, path, fmt.Errorf("invalid config %s: %w", path, err)
	}
	log.Info(log.CatConfig, "config loaded", "path", path, "store", cfg.Store.Driver, "user", cfg.UserID)
	return cfg, path, nil
}

// loadCatalog reads the tours file, or returns the built-in tours.
func loadCatalog(path string) (tour.Catalog, error) {
	if path == "" {
		return tour.DefaultCatalog(), nil
	}
	catalog, err := tour.LoadCatalog(path)
	if err != nil {
		return tour.Catalog{}, fmt.Errorf("loading tours: %w", err)
	}
	return catalog, nil
}

// openStore opens the configured completion store. The closer releases the
// underlying database; it is a no-op for the memory driver.
func openStore(cfg config.StoreConfig) (tour.Store, func() error, error) {
	switch cfg.Driver {
	case "memory":
		return tour.NewMemoryStore(), func() error { return nil }, nil
	case "", "sqlite":
		db, err := sqlite.NewDB(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening store: %w", err)
		}
		return db.CompletionStore(), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// openService wires the store and tracer into a tour service. The store is
// returned as well for commands that read it directly. The returned func
// flushes pending writes and releases everything, in reverse order.
func openService(cfg config.Config) (*tour.Service, tour.Store, func() error, error) {
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating tracer: %w", err)
	}

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, nil, err
	}

	svc := tour.NewService(store, tour.WithTracer(provider.Tracer()))
	closeAll := func() error {
		svc.Close()
		storeErr := closeStore()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(storeErr, provider.Shutdown(ctx))
	}
	return svc, store, closeAll, nil
}
