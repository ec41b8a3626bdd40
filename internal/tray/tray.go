// Package tray provides a system tray menu that sends drawing commands.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
	"go.uber.org/zap"

	"github.com/ayusman/fingerdraw/internal/session"
)

// Item is one menu entry. Separator entries carry no command.
type Item struct {
	Title     string
	Tooltip   string
	Command   session.Command
	Separator bool
}

// Menu is the tray menu, top to bottom.
var Menu = []Item{
	{Title: "Red", Tooltip: "Draw in red", Command: session.CmdRed},
	{Title: "Green", Tooltip: "Draw in green", Command: session.CmdGreen},
	{Title: "Blue", Tooltip: "Draw in blue", Command: session.CmdBlue},
	{Separator: true},
	{Title: "Brush +", Tooltip: "Thicker brush", Command: session.CmdBrushUp},
	{Title: "Brush -", Tooltip: "Thinner brush", Command: session.CmdBrushDown},
	{Separator: true},
	{Title: "Clear", Tooltip: "Erase the canvas", Command: session.CmdClear},
	{Title: "Snapshot", Tooltip: "Save the canvas to the gallery", Command: session.CmdSnapshot},
	{Separator: true},
	{Title: "Quit", Tooltip: "Quit Finger Drawing", Command: session.CmdQuit},
}

// Tray represents the system tray application.
type Tray struct {
	send   func(session.Command) bool
	logger *zap.Logger

	mu     sync.RWMutex
	status *systray.MenuItem
	last   string
}

// New creates a Tray that hands menu clicks to send.
func New(send func(session.Command) bool, logger *zap.Logger) *Tray {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tray{
		send:   send,
		logger: logger.Named("tray"),
	}
}

// Run starts the system tray application.
// This function blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Finger Drawing")
	systray.SetTooltip("Finger Drawing")

	t.mu.Lock()
	t.status = systray.AddMenuItem("Last: none", "Last command sent")
	t.status.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	for _, item := range Menu {
		if item.Separator {
			systray.AddSeparator()
			continue
		}
		mi := systray.AddMenuItem(item.Title, item.Tooltip)
		go func(cmd session.Command) {
			for range mi.ClickedCh {
				t.handle(cmd)
			}
		}(item.Command)
	}
}

func (t *Tray) onExit() {
	t.logger.Debug("tray exited")
}

// handle forwards a clicked command to the loop.
func (t *Tray) handle(cmd session.Command) {
	if !t.send(cmd) {
		t.logger.Warn("tray command dropped", zap.Stringer("command", cmd))
		return
	}

	t.mu.Lock()
	t.last = cmd.String()
	status := t.status
	t.mu.Unlock()

	if status != nil {
		status.SetTitle("Last: " + cmd.String())
	}
}

// Last returns the name of the last command sent, or "".
func (t *Tray) Last() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}
