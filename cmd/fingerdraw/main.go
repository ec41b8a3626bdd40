package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/ayusman/fingerdraw/internal/app"
	"github.com/ayusman/fingerdraw/internal/capture"
	"github.com/ayusman/fingerdraw/internal/config"
	"github.com/ayusman/fingerdraw/internal/detector"
	"github.com/ayusman/fingerdraw/internal/display"
	"github.com/ayusman/fingerdraw/internal/logging"
	"github.com/ayusman/fingerdraw/internal/server"
	"github.com/ayusman/fingerdraw/internal/store"
	"github.com/ayusman/fingerdraw/internal/tray"
)

const controls = `Controls:
  open hand   draw with the index fingertip
  closed hand lift the pen
  r / g / b   red / green / blue
  + / -       brush size
  c           clear
  s           save snapshot
  q           quit`

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: build logger: %v\n", err)
		os.Exit(1)
	}

	code := run(cfg, logger)
	logging.Sync(logger)
	os.Exit(code)
}

func run(cfg config.Config, logger *zap.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Warn("snapshot gallery disabled", zap.Error(err))
	}
	if st != nil {
		defer st.Close()
	}

	det, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:        cfg.MaxHands,
		MinConfidence:   cfg.MinDetectConf,
		MinTrackingConf: cfg.MinTrackingConf,
		PythonPath:      cfg.PythonPath,
		ScriptPath:      cfg.ScriptPath,
	}, logger)
	if err != nil {
		logger.Error("hand detector unavailable", zap.Error(err))
		return 1
	}

	var hub *server.Hub
	var publisher app.Publisher
	if cfg.Listen != "" {
		hub = server.NewHub(logger)
		publisher = hub
	}

	a := app.New(app.Config{
		Camera:   capture.NewCamera(cfg.CameraID, cfg.FrameWidth, cfg.FrameHeight),
		Detector: det,
		OpenDisplay: func() display.Display {
			return display.NewWindow(cfg.WindowTitle)
		},
		Mirror:    cfg.Mirror,
		Store:     st,
		Publisher: publisher,
		Logger:    logger,
	})
	defer a.Close()

	if hub != nil {
		srv := server.New(server.Config{
			Store:    st,
			Hub:      hub,
			Commands: a.Send,
			Logger:   logger,
		})
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				logger.Error("preview server stopped", zap.Error(err))
			}
		}()
	}

	if cfg.Tray {
		t := tray.New(a.Send, logger)
		go t.Run()
		defer t.Quit()
	}

	fmt.Println(controls)

	if err := a.Run(ctx); err != nil {
		if errors.Is(err, app.ErrInitialFrame) {
			fmt.Fprintln(os.Stderr, "Error: Failed to access camera.")
		}
		logger.Error("drawing failed", zap.Error(err))
		return 1
	}
	return 0
}

// openStore opens the snapshot gallery under the data directory.
func openStore(cfg config.Config, logger *zap.Logger) (*store.Store, error) {
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	st, err := store.New(filepath.Join(dir, "fingerdraw.db"))
	if err != nil {
		return nil, fmt.Errorf("open gallery: %w", err)
	}
	logger.Info("snapshot gallery opened", zap.String("path", st.Path()))
	return st, nil
}
