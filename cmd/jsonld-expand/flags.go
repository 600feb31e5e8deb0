package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// cliConfig holds command-line configuration.
type cliConfig struct {
	Input             string
	Base              string
	Mode              string
	Ordered           bool
	NumericIDs        bool
	MaxRemoteContexts int
	Timeout           time.Duration
	LogLevel          string
	ShowHelp          bool
}

func parseFlags() (*cliConfig, bool) {
	cfg := &cliConfig{}

	flag.StringVar(&cfg.Base, "base",
		getEnv("JSONLD_BASE", ""),
		"Base IRI for resolving relative references (env: JSONLD_BASE)")

	flag.StringVar(&cfg.Mode, "mode",
		getEnv("JSONLD_MODE", "1.1"),
		"Processing mode: 1.0 or 1.1 (env: JSONLD_MODE)")

	flag.BoolVar(&cfg.Ordered, "ordered",
		getEnvBool("JSONLD_ORDERED", false),
		"Deterministic key ordering in the output (env: JSONLD_ORDERED)")

	flag.BoolVar(&cfg.NumericIDs, "numeric-ids",
		getEnvBool("JSONLD_NUMERIC_IDS", false),
		"Accept JSON numbers as @id values (env: JSONLD_NUMERIC_IDS)")

	flag.IntVar(&cfg.MaxRemoteContexts, "max-remote-contexts",
		getEnvInt("JSONLD_MAX_REMOTE_CONTEXTS", 0),
		"Remote context dereference limit, 0 for the default (env: JSONLD_MAX_REMOTE_CONTEXTS)")

	flag.DurationVar(&cfg.Timeout, "timeout",
		getEnvDuration("JSONLD_TIMEOUT", 30*time.Second),
		"Overall expansion timeout (env: JSONLD_TIMEOUT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("JSONLD_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: JSONLD_LOG_LEVEL)")

	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show usage")

	flag.Usage = usage
	flag.Parse()
	cfg.Input = flag.Arg(0)

	if cfg.ShowHelp {
		usage()
		return cfg, true
	}
	if cfg.Mode != "1.0" && cfg.Mode != "1.1" {
		fmt.Fprintf(os.Stderr, "invalid -mode %q, expected 1.0 or 1.1\n", cfg.Mode)
		os.Exit(2)
	}
	return cfg, false
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] [document]

Expands a JSON-LD document and prints the expanded form.

The document may be a file path, an http(s) URL, or "-" (the default)
for standard input.

Flags:
`, appName)
	flag.PrintDefaults()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
