package session

import "fmt"

// Command is a user request that changes drawing settings or the loop.
type Command int

const (
	// CmdNone is returned for keys that map to nothing.
	CmdNone Command = iota
	CmdQuit
	CmdClear
	CmdRed
	CmdGreen
	CmdBlue
	CmdBrushUp
	CmdBrushDown
	CmdSnapshot
)

var commandNames = map[Command]string{
	CmdNone:      "none",
	CmdQuit:      "quit",
	CmdClear:     "clear",
	CmdRed:       "red",
	CmdGreen:     "green",
	CmdBlue:      "blue",
	CmdBrushUp:   "brush_up",
	CmdBrushDown: "brush_down",
	CmdSnapshot:  "snapshot",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand maps a command name, as used by the HTTP API, to a Command.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name && c != CmdNone {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("unknown command %q", name)
}

// ParseKey maps a key code from the window to a Command. Only the low
// byte is significant; no key (-1) and unknown keys give CmdNone.
func ParseKey(key int) Command {
	if key < 0 {
		return CmdNone
	}
	switch key & 0xFF {
	case 'q':
		return CmdQuit
	case 'c':
		return CmdClear
	case 'r':
		return CmdRed
	case 'g':
		return CmdGreen
	case 'b':
		return CmdBlue
	case '+', '=':
		return CmdBrushUp
	case '-', '_':
		return CmdBrushDown
	case 's':
		return CmdSnapshot
	default:
		return CmdNone
	}
}
