package app

import (
	"image"
	"time"

	"github.com/ayusman/fingerdraw/internal/gesture"
	"github.com/ayusman/fingerdraw/internal/session"
)

// Event types published to preview clients.
const (
	EventSegment  = "segment"
	EventCommand  = "command"
	EventSnapshot = "snapshot"
)

// Point is a pixel position in an Event.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toPoint(p image.Point) *Point {
	return &Point{X: p.X, Y: p.Y}
}

// Event describes a change in the drawing, with the brush in effect.
type Event struct {
	Type       string `json:"type"`
	Command    string `json:"command,omitempty"`
	Color      string `json:"color"`
	Thickness  int    `json:"thickness"`
	From       *Point `json:"from,omitempty"`
	To         *Point `json:"to,omitempty"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

func newEvent(typ string, s *session.Session) Event {
	return Event{
		Type:      typ,
		Color:     session.ColorName(s.Color),
		Thickness: s.Thickness,
		Timestamp: time.Now().UnixMilli(),
	}
}

func segmentEvent(s *session.Session, seg gesture.Segment) Event {
	ev := newEvent(EventSegment, s)
	ev.From = toPoint(seg.From)
	ev.To = toPoint(seg.To)
	return ev
}

func commandEvent(s *session.Session, cmd session.Command) Event {
	ev := newEvent(EventCommand, s)
	ev.Command = cmd.String()
	return ev
}

func snapshotEvent(s *session.Session, id string) Event {
	ev := newEvent(EventSnapshot, s)
	ev.SnapshotID = id
	return ev
}
