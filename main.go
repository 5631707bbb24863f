package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"sierpinski/geometry"
	"sierpinski/hal"
	"sierpinski/internal/buildinfo"
	"sierpinski/internal/config"
	"sierpinski/internal/snapshot"
	"sierpinski/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit status: 0 on a clean close, -1 when no window
// could be created, 2 for bad flags or config, 1 for anything else.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sierpinski", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var flags config.Flags
	flags.Register(fs)
	showVersion := fs.Bool("version", false, "Print version and exit.")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, buildinfo.String("sierpinski"))
		return 0
	}

	cfg := config.Default()
	if flags.Config != "" {
		var err error
		if cfg, err = config.Load(flags.Config); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 2
		}
	}
	cfg.Apply(fs, &flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	logger := hal.NewLogger(stdout)
	if cfg.Quiet {
		logger = hal.Discard
	}
	mesh := geometry.Build(cfg.Offset())
	rc := cfg.Render()
	rc.Title = cfg.Title + " (" + buildinfo.Short() + ")"

	var err error
	switch cfg.Backend {
	case config.BackendGL:
		interval := 0
		if cfg.VSync {
			interval = 1
		}
		h := hal.NewGL(hal.GLConfig{SwapInterval: interval}, logger)
		err = render.New(rc, mesh, h).Run()
	case config.BackendEbiten:
		err = hal.RunWindow(hal.EbitenConfig{TPS: cfg.Hz, VSync: cfg.VSync}, logger, func(h hal.HAL) hal.Loop {
			return render.New(rc, mesh, h)
		})
	case config.BackendHeadless:
		err = runHeadless(cfg, rc, mesh, logger)
	}

	if err != nil {
		if errors.Is(err, hal.ErrWindowCreate) {
			fmt.Fprintln(stdout, err)
			return -1
		}
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func runHeadless(cfg config.Config, rc render.Config, mesh geometry.Mesh, logger hal.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h := hal.NewHeadless(ctx, cfg.Headless(), logger)
	if err := render.New(rc, mesh, h).Run(); err != nil {
		return err
	}
	if cfg.Snapshot == "" {
		return nil
	}

	img, err := h.Snapshot()
	if err != nil {
		return err
	}
	img = snapshot.Resolve(img, h.Supersample())
	if cfg.Caption != "" {
		snapshot.Caption(img, cfg.Caption, snapshot.CaptionColor)
	}
	if err := snapshot.Save(img, cfg.Snapshot); err != nil {
		return err
	}
	logger.WriteLineString("snapshot: wrote " + cfg.Snapshot)
	return nil
}
