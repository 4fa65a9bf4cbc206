// Package main provides the gradientpanel command, which shows a scene of
// gradient-filled widgets in a desktop window or renders it to a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-gradientpanel/internal/profiling"
	"github.com/opd-ai/go-gradientpanel/pkg/gradientpanel"
)

// Version is the current version of gradientpanel.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	configPath   string
	output       string
	watch        bool
	headless     bool
	highContrast *bool
	debug        bool
	json         bool
	version      bool
	profile      profiling.Config
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("gradientpanel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "c", "", "Path to the scene file (.lua, .yaml or .toml)")
	fs.StringVar(&f.output, "o", "", "Render the scene to this PNG file and exit")
	fs.BoolVar(&f.watch, "watch", false, "Reload the scene when its file changes")
	fs.BoolVar(&f.headless, "headless", false, "Do not open a window; wait for a signal")
	hc := fs.Bool("high-contrast", false, "Force high contrast mode on or off")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.json, "json", false, "Log in JSON format")
	fs.BoolVar(&f.version, "v", false, "Print version and exit")
	fs.StringVar(&f.profile.CPUProfilePath, "cpuprofile", "", "Write CPU profile to file")
	fs.StringVar(&f.profile.MemProfilePath, "memprofile", "", "Write memory profile to file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "high-contrast" {
			f.highContrast = hc
		}
	})
	return f, nil
}

func (f *flags) logger(stderr io.Writer) gradientpanel.Logger {
	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	if f.json {
		return gradientpanel.JSONLogger(stderr, level)
	}
	return gradientpanel.NewSlogAdapter(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: f.debug,
	})))
}

func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if f.version {
		fmt.Fprintf(stdout, "gradientpanel version %s\n", Version)
		return 0
	}
	if f.configPath == "" {
		fmt.Fprintln(stderr, "No scene file specified. Use -c to specify one.")
		fmt.Fprintln(stderr, "Usage: gradientpanel -c <scene-file> [-o out.png]")
		return 1
	}
	if _, err := os.Stat(f.configPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Scene file not found: %s\n", f.configPath)
		} else {
			fmt.Fprintf(stderr, "Error accessing scene file %s: %v\n", f.configPath, err)
		}
		return 1
	}

	log := f.logger(stderr)

	if f.profile.Enabled() {
		profiler := profiling.New(f.profile)
		if err := profiler.Start(); err != nil {
			log.Error("failed to start profiling", "err", err)
			return 1
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Warn("failed to stop profiling", "err", err)
			}
		}()
	}

	opts := gradientpanel.DefaultOptions()
	opts.Logger = log
	opts.WatchConfig = f.watch
	opts.Headless = f.headless
	opts.HighContrast = f.highContrast

	p, err := gradientpanel.New(f.configPath, &opts)
	if err != nil {
		log.Error("failed to load scene", "path", f.configPath, "err", err)
		return 1
	}
	defer p.Close()

	if f.output != "" {
		if err := p.WritePNG(f.output); err != nil {
			log.Error("failed to write PNG", "path", f.output, "err", err)
			return 1
		}
		log.Info("scene rendered", "path", f.output)
		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(ctx, cancel, p, log)

	log.Info("gradientpanel starting", "version", Version, "scene", f.configPath)
	if err := p.Run(ctx); err != nil {
		log.Error("panel stopped", "err", err)
		return 1
	}
	return 0
}

// handleSignals reloads the scene on SIGHUP and cancels ctx on SIGINT or
// SIGTERM.
func handleSignals(ctx context.Context, cancel context.CancelFunc, p *gradientpanel.Panel, log gradientpanel.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				log.Info("received SIGHUP, reloading scene")
				if err := p.Reload(); err != nil {
					log.Error("reload failed", "err", err)
				}
				continue
			}
			log.Info("shutting down", "signal", sig.String())
			cancel()
			return
		}
	}
}
