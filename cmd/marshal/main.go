package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	rapier "github.com/wippyai/rapier-go"
	"github.com/wippyai/rapier-go/abi"
	"github.com/wippyai/rapier-go/config"
	"github.com/wippyai/rapier-go/dylib"
	"github.com/wippyai/rapier-go/engine"
	"github.com/wippyai/rapier-go/handle"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so deferred calls, such as the logger
// sync, run before the process exits.
func realMain() int {
	var (
		configFile  = flag.String("config", "", "Path to YAML configuration")
		backendName = flag.String("backend", "", "Engine backend: reference, wasm or dylib")
		wasmFile    = flag.String("wasm", "", "Path to engine wasm module (wasm backend)")
		libFile     = flag.String("lib", "", "Path to engine shared library (dylib backend)")
		pages       = flag.Uint("pages", 0, "Guest memory limit in pages")
		unchecked   = flag.Bool("unchecked", false, "Let handle contract violations reach the engine")
		vector      = flag.String("v", defaultVector, "Vector components for the round trip")
		rotation    = flag.String("r", defaultRotation, "Rotation for the round trip")
		logLevel    = flag.String("log", "", "Log level override")
		list        = flag.Bool("list", false, "List engine symbols and operations, then exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return fail(err)
		}
	}

	// flags given explicitly win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = config.Backend(*backendName)
		case "wasm":
			cfg.Module = *wasmFile
			if *backendName == "" {
				cfg.Backend = config.BackendWasm
			}
		case "lib":
			cfg.Library = *libFile
			if *backendName == "" {
				cfg.Backend = config.BackendDylib
			}
		case "pages":
			cfg.MemoryLimitPages = uint32(*pages)
		case "unchecked":
			cfg.Checked = !*unchecked
		case "log":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return fail(err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		return fail(err)
	}
	defer logger.Sync()
	engine.SetLogger(logger.Named("engine"))
	dylib.SetLogger(logger.Named("dylib"))

	if *list {
		listSymbols(os.Stdout)
		return 0
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			return fail(err)
		}
		return 0
	}

	if err := run(context.Background(), cfg, *vector, *rotation, os.Stdout, logger); err != nil {
		return fail(err)
	}
	return 0
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func listSymbols(w io.Writer) {
	fmt.Fprintf(w, "Engine symbols (%dD):\n", rapier.Dim)
	for _, s := range abi.Default().Symbols() {
		fmt.Fprintf(w, "  %s\n", s)
	}
	if opt := abi.Default().OptionalSymbols(); len(opt) > 0 {
		fmt.Fprintf(w, "\nOptional symbols:\n")
		for _, s := range opt {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}

	fmt.Fprintf(w, "\nOperations:\n")
	for _, op := range operations(nil) {
		fmt.Fprintf(w, "  %s\n", op.signature())
	}
}

// run performs the round-trip script. It fails if an operation fails, a
// handle is left live or a contract violation was recorded.
func run(ctx context.Context, cfg *config.Config, vec, rot string, w io.Writer, logger *zap.Logger) error {
	vargs, err := parseFloats(vec, rapier.Dim)
	if err != nil {
		return fmt.Errorf("-v: %w", err)
	}
	rargs, err := parseFloats(rot, len(abi.Default().Rotation.Fields))
	if err != nil {
		return fmt.Errorf("-r: %w", err)
	}

	b, source, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Engine: %s (%s, %dD, checked=%v)\n\n", source, cfg.Backend, rapier.Dim, cfg.Checked)

	var failed int
	for _, op := range operations(b) {
		var args []float32
		switch {
		case op.kind == kindScalar:
			continue
		case len(op.params) == 0:
		case op.kind == kindVector:
			args = vargs
		case op.kind == kindRotation:
			args = rargs
		}

		out, err := op.run(ctx, args)
		if err != nil {
			logger.Error("operation failed", zap.String("op", op.name), zap.Error(err))
			fmt.Fprintf(w, "  %-20s error: %v\n", op.name, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "  %-20s %s\n", op.name, out)
	}

	stats := b.Ledger().Stats()
	printStats(w, stats)

	if err := b.Close(ctx); err != nil {
		return err
	}
	if stats.Violations > 0 {
		return fmt.Errorf("%d handle contract violation(s)", stats.Violations)
	}
	if failed > 0 {
		return fmt.Errorf("%d operation(s) failed", failed)
	}
	return nil
}

func printStats(w io.Writer, s handle.Stats) {
	fmt.Fprintf(w, "\nHandles: allocated %d, released %d, live %d, violations %d\n",
		s.Allocated, s.Released, s.Live(), s.Violations)
}
