package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the server's startup configuration
type Config struct {
	Addr      string
	MapPath   string
	DBPath    string // empty disables persistence
	Tick      time.Duration
	AdminUser string
	AdminPass string
}

// LoadConfig reads an optional .env, then parses args with environment
// variables as flag defaults
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	tick := DefaultTickPeriod
	if v := os.Getenv("HG_TICK"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("HG_TICK: %w", err)
		}
		tick = d
	}

	var cfg Config
	fset := flag.NewFlagSet("hostable", flag.ContinueOnError)
	fset.StringVar(&cfg.Addr, "addr", envOr("HG_ADDR", ":5000"), "HTTP listen address")
	fset.StringVar(&cfg.MapPath, "map", envOr("HG_MAP", "maps/arena.txt"), "map file")
	fset.StringVar(&cfg.DBPath, "db", envOr("HG_DB", "hostable.db"), "SQLite database path (empty disables persistence)")
	fset.DurationVar(&cfg.Tick, "tick", tick, "simulation tick period")
	fset.StringVar(&cfg.AdminUser, "admin-user", os.Getenv("HG_ADMIN_USER"), "operator account to seed")
	fset.StringVar(&cfg.AdminPass, "admin-pass", os.Getenv("HG_ADMIN_PASS"), "password for -admin-user")
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Tick <= 0 {
		return Config{}, fmt.Errorf("tick period must be positive, got %v", cfg.Tick)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
