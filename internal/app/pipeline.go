package app

import (
	"image"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/fingerdraw/internal/gesture"
	"github.com/ayusman/fingerdraw/internal/session"
	"github.com/ayusman/fingerdraw/internal/store"
)

// tick processes one frame and reports whether the loop should stop.
//
// Per frame:
// 1. Mirror the frame if configured
// 2. Detect the hand and classify it open or closed
// 3. Draw the hand overlay on the frame
// 4. Move the pen; draw a segment on the canvas when it stays down
// 5. Composite frame and canvas, show it, publish it
// 6. Handle the key press, then any queued commands
func (a *App) tick(frame *gocv.Mat) bool {
	s := a.session

	if a.config.Mirror {
		gocv.Flip(*frame, frame, 1)
	}
	if frame.Cols() != s.Width() || frame.Rows() != s.Height() {
		gocv.Resize(*frame, frame, image.Pt(s.Width(), s.Height()), 0, 0, gocv.InterpolationLinear)
	}

	hands, err := a.config.Detector.Detect(frame)
	if err != nil {
		// A failed detection counts as no hand; the pen lifts.
		a.logger.Warn("hand detection failed", zap.Error(err))
		hands = nil
	}

	obs := gesture.Observe(hands, s.Width(), s.Height())
	if obs.Present {
		session.DrawHand(frame, &hands[0], s.Color)
	}

	seg, drew := s.Step(obs)

	a.mu.Lock()
	a.stats.Frames++
	if obs.Present {
		a.stats.Hands++
	}
	if drew {
		a.stats.Segments++
	}
	a.mu.Unlock()

	if drew {
		a.publishEvent(segmentEvent(s, seg))
	}

	session.Compose(*frame, s.Canvas, s.Thickness, &a.out)
	a.display.Show(a.out)
	a.publishFrame()

	if a.handle(session.ParseKey(a.display.PollKey())) {
		return true
	}

	for {
		select {
		case cmd := <-a.commands:
			if a.handle(cmd) {
				return true
			}
		default:
			return false
		}
	}
}

// handle applies one command and reports whether it was quit.
func (a *App) handle(cmd session.Command) bool {
	switch cmd {
	case session.CmdNone:
		return false
	case session.CmdQuit:
		return true
	case session.CmdSnapshot:
		a.snapshot()
		return false
	}

	s := a.session
	if s.Apply(cmd) {
		a.logger.Debug("command applied",
			zap.Stringer("command", cmd),
			zap.String("color", session.ColorName(s.Color)),
			zap.Int("thickness", s.Thickness))
		a.publishEvent(commandEvent(s, cmd))
	}
	return false
}

// snapshot saves the canvas into the gallery.
func (a *App) snapshot() {
	if a.config.Store == nil {
		a.logger.Warn("snapshot ignored, gallery disabled")
		return
	}

	s := a.session
	data, err := s.EncodePNG()
	if err != nil {
		a.logger.Error("snapshot failed", zap.Error(err))
		return
	}

	sn := &store.Snapshot{
		ID:        uuid.NewString(),
		Width:     s.Width(),
		Height:    s.Height(),
		Color:     session.ColorName(s.Color),
		Thickness: s.Thickness,
		Image:     data,
	}
	if err := a.config.Store.Snapshots().Create(sn); err != nil {
		a.logger.Error("saving snapshot", zap.Error(err))
		return
	}

	a.mu.Lock()
	a.stats.Snapshots++
	a.mu.Unlock()

	a.logger.Info("snapshot saved", zap.String("id", sn.ID), zap.Int("bytes", len(data)))
	a.publishEvent(snapshotEvent(s, sn.ID))
}

func (a *App) publishEvent(ev Event) {
	if a.config.Publisher == nil {
		return
	}
	a.config.Publisher.PublishEvent(ev)
}

func (a *App) publishFrame() {
	p := a.config.Publisher
	if p == nil || !p.Active() {
		return
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, a.out)
	if err != nil {
		a.logger.Warn("encoding preview frame", zap.Error(err))
		return
	}
	defer buf.Close()

	// PublishFrame keeps the slice; copy it out of native memory.
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	p.PublishFrame(data)
}
