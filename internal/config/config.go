// Package config loads fingerdraw settings from the environment and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. Environment variables provide the
// defaults and flags override them.
type Config struct {
	CameraID    int    `env:"FINGERDRAW_CAMERA" envDefault:"0"`
	FrameWidth  int    `env:"FINGERDRAW_FRAME_WIDTH" envDefault:"640"`
	FrameHeight int    `env:"FINGERDRAW_FRAME_HEIGHT" envDefault:"480"`
	Mirror      bool   `env:"FINGERDRAW_MIRROR" envDefault:"true"`
	WindowTitle string `env:"FINGERDRAW_WINDOW_TITLE" envDefault:"Finger Drawing"`

	MaxHands        int     `env:"FINGERDRAW_MAX_HANDS" envDefault:"1"`
	MinDetectConf   float64 `env:"FINGERDRAW_MIN_DETECTION_CONFIDENCE" envDefault:"0.7"`
	MinTrackingConf float64 `env:"FINGERDRAW_MIN_TRACKING_CONFIDENCE" envDefault:"0.7"`
	PythonPath      string  `env:"FINGERDRAW_PYTHON"`
	ScriptPath      string  `env:"FINGERDRAW_DETECTOR_SCRIPT"`

	// DataDir holds the snapshot gallery. Empty means ~/.fingerdraw.
	DataDir string `env:"FINGERDRAW_DATA_DIR"`
	// Listen is the preview server address; empty disables the server.
	Listen  string `env:"FINGERDRAW_LISTEN"`
	Tray    bool   `env:"FINGERDRAW_TRAY" envDefault:"false"`
	LogMode string `env:"FINGERDRAW_LOG_MODE" envDefault:"development"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.IntVar(&cfg.CameraID, "camera", cfg.CameraID, "Camera device id")
	fs.IntVar(&cfg.FrameWidth, "width", cfg.FrameWidth, "Requested capture width")
	fs.IntVar(&cfg.FrameHeight, "height", cfg.FrameHeight, "Requested capture height")
	fs.BoolVar(&cfg.Mirror, "mirror", cfg.Mirror, "Flip the camera image horizontally")
	fs.StringVar(&cfg.WindowTitle, "title", cfg.WindowTitle, "Window title")
	fs.IntVar(&cfg.MaxHands, "max-hands", cfg.MaxHands, "Maximum number of hands to detect")
	fs.Float64Var(&cfg.MinDetectConf, "min-detection-confidence", cfg.MinDetectConf, "Minimum hand detection confidence")
	fs.Float64Var(&cfg.MinTrackingConf, "min-tracking-confidence", cfg.MinTrackingConf, "Minimum hand tracking confidence")
	fs.StringVar(&cfg.PythonPath, "python", cfg.PythonPath, "Python interpreter for the landmark service")
	fs.StringVar(&cfg.ScriptPath, "detector-script", cfg.ScriptPath, "Path to the landmark service script")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for the snapshot gallery")
	fs.StringVar(&cfg.Listen, "listen", cfg.Listen, "Preview server address (empty disables)")
	fs.BoolVar(&cfg.Tray, "tray", cfg.Tray, "Show the system tray menu")
	fs.StringVar(&cfg.LogMode, "log-mode", cfg.LogMode, "Log mode: development or production")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.FrameWidth, c.FrameHeight)
	}
	if c.MaxHands < 1 {
		return errors.New("max hands must be at least 1")
	}
	if c.MinDetectConf < 0 || c.MinDetectConf > 1 {
		return fmt.Errorf("min detection confidence %v out of range [0,1]", c.MinDetectConf)
	}
	if c.MinTrackingConf < 0 || c.MinTrackingConf > 1 {
		return fmt.Errorf("min tracking confidence %v out of range [0,1]", c.MinTrackingConf)
	}
	return nil
}

// ResolveDataDir returns DataDir, falling back to ~/.fingerdraw.
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".fingerdraw"), nil
}
