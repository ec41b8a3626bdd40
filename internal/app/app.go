// Package app runs the fingerdraw loop: read a frame, find the hand,
// move the pen, composite and show, then handle commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/fingerdraw/internal/capture"
	"github.com/ayusman/fingerdraw/internal/detector"
	"github.com/ayusman/fingerdraw/internal/display"
	"github.com/ayusman/fingerdraw/internal/session"
	"github.com/ayusman/fingerdraw/internal/store"
)

// CommandBuffer is how many commands from the tray or the HTTP API may
// wait for the next tick.
const CommandBuffer = 16

// ErrInitialFrame is returned when the camera delivers no first frame.
var ErrInitialFrame = errors.New("failed to access camera")

// Publisher receives copies of loop output for the preview server.
type Publisher interface {
	// Active reports whether anyone is watching; frames are encoded only then.
	Active() bool
	PublishFrame(jpeg []byte)
	PublishEvent(ev Event)
}

// Config holds the collaborators and options for an App.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	// OpenDisplay is called once the first frame has been read, so no
	// window appears when the camera is unusable.
	OpenDisplay func() display.Display

	Mirror    bool
	Store     *store.Store // nil disables snapshots
	Publisher Publisher    // nil disables publishing
	Logger    *zap.Logger
}

// App owns the drawing session and drives the loop.
type App struct {
	config   Config
	logger   *zap.Logger
	commands chan session.Command

	mu      sync.Mutex
	session *session.Session
	display display.Display
	out     gocv.Mat

	stats Stats
}

// Stats counts what the loop did.
type Stats struct {
	Frames    int
	Hands     int
	Segments  int
	Snapshots int
}

// New creates an App. Camera, Detector and OpenDisplay are required.
func New(config Config) *App {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &App{
		config:   config,
		logger:   logger.Named("app"),
		commands: make(chan session.Command, CommandBuffer),
		out:      gocv.NewMat(),
	}
}

// Send queues a command for the next tick without blocking. It reports
// false when the queue is full.
func (a *App) Send(cmd session.Command) bool {
	select {
	case a.commands <- cmd:
		return true
	default:
		a.logger.Warn("command dropped, queue full", zap.Stringer("command", cmd))
		return false
	}
}

// Session returns the drawing session, or nil before Run has read the
// first frame.
func (a *App) Session() *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// Stats returns the loop counters.
func (a *App) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Close releases the session canvas and the composite buffer. Call it
// after Run returns.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var err error
	if a.session != nil {
		err = a.session.Close()
		a.session = nil
	}
	if cerr := a.out.Close(); err == nil {
		err = cerr
	}
	return err
}

// Run opens the camera, sizes the canvas from the first frame and runs
// the loop until quit, ctx cancellation, or a failed frame read. Camera,
// detector and display are released before Run returns.
func (a *App) Run(ctx context.Context) error {
	cam := a.config.Camera

	if err := cam.Open(); err != nil {
		a.closeDetector()
		return fmt.Errorf("open camera: %w", err)
	}

	first, err := cam.ReadFrame()
	if err != nil {
		// Release the device even though nothing else was acquired.
		if cerr := cam.Close(); cerr != nil {
			a.logger.Warn("closing camera", zap.Error(cerr))
		}
		a.closeDetector()
		return fmt.Errorf("%w: %v", ErrInitialFrame, err)
	}
	width, height := first.Cols(), first.Rows()
	first.Close()

	a.mu.Lock()
	a.session = session.New(width, height)
	a.display = a.config.OpenDisplay()
	a.mu.Unlock()

	defer a.cleanup()

	a.logger.Info("drawing started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("mirror", a.config.Mirror))

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("drawing cancelled")
			return nil
		default:
		}

		frame, err := cam.ReadFrame()
		if err != nil {
			a.logger.Info("camera stopped delivering frames", zap.Error(err))
			return nil
		}

		quit := a.tick(frame)
		frame.Close()

		if quit {
			a.logger.Info("quit requested")
			return nil
		}
	}
}

// cleanup releases camera, detector and window regardless of how the
// loop ended.
func (a *App) cleanup() {
	if err := a.config.Camera.Close(); err != nil {
		a.logger.Warn("closing camera", zap.Error(err))
	}
	a.closeDetector()
	if err := a.display.Close(); err != nil {
		a.logger.Warn("closing window", zap.Error(err))
	}

	st := a.Stats()
	a.logger.Info("drawing stopped",
		zap.Int("frames", st.Frames),
		zap.Int("segments", st.Segments),
		zap.Int("snapshots", st.Snapshots))
}

func (a *App) closeDetector() {
	if err := a.config.Detector.Close(); err != nil {
		a.logger.Warn("closing detector", zap.Error(err))
	}
}
