// Package main implements jsonld-expand, a command line tool that
// expands JSON-LD documents: it reads a document from a file, a URL, or
// standard input and writes the expanded form to standard output.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/c360/jsonld"
	"github.com/c360/jsonld/ldcontext"
	"github.com/c360/jsonld/loader"
	"github.com/c360/jsonld/pkg/json"
)

const appName = "jsonld-expand"

func main() {
	if err := run(); err != nil {
		slog.Error("Expansion failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, shouldExit := parseFlags()
	if shouldExit {
		return nil
	}
	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	docs, err := loader.NewCaching(loader.NewRetrying(loader.NewHTTP()))
	if err != nil {
		return err
	}

	opts := []jsonld.Option{
		jsonld.WithDocumentLoader(docs),
	}
	if cfg.Base != "" {
		opts = append(opts, jsonld.WithBase(cfg.Base))
	}
	if cfg.Mode == "1.0" {
		opts = append(opts, jsonld.WithProcessingMode(ldcontext.Mode10))
	}
	if cfg.Ordered {
		opts = append(opts, jsonld.WithOrdered())
	}
	if cfg.NumericIDs {
		opts = append(opts, jsonld.WithNumericIDs())
	}
	if cfg.MaxRemoteContexts > 0 {
		opts = append(opts, jsonld.WithMaxRemoteContexts(cfg.MaxRemoteContexts))
	}

	expanded, err := expand(ctx, docs, cfg, opts)
	if err != nil {
		return err
	}

	out := json.Encode(expanded)
	if _, err := os.Stdout.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func expand(ctx context.Context, docs loader.Loader, cfg *cliConfig, opts []jsonld.Option) (json.Array, error) {
	input := cfg.Input

	// URLs go through the loader so an out-of-band context link on a
	// plain JSON response is honored.
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		doc, err := docs.Load(ctx, input)
		if err != nil {
			return nil, err
		}
		return jsonld.ExpandDocument(ctx, doc, opts...)
	}

	var document []byte
	var err error
	if input == "" || input == "-" {
		document, err = io.ReadAll(os.Stdin)
	} else {
		document, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return jsonld.Expand(ctx, document, opts...)
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler).With("service", appName))
}
