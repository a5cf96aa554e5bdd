package web

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Client message types.
const (
	msgFrame   = "frame"   // request one refresh
	msgJump    = "jump"    // impulse action
	msgRestart = "restart" // restart control
)

// clientMessage is sent by the browser page.
type clientMessage struct {
	Type string `json:"type"`
}

// helloMessage is the first message on every connection.
type helloMessage struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Seed   int64   `json:"seed"`
}

// frameMessage answers a frame request with the ops to draw.
// Running false tells the page to stop requesting frames and show the
// restart control.
type frameMessage struct {
	Type    string      `json:"type"`
	Ops     []opMessage `json:"ops"`
	Running bool        `json:"running"`
	Score   int         `json:"score"`
	Reason  string      `json:"reason,omitempty"`
	RunID   int64       `json:"run,omitempty"`
}

// opMessage is a DrawOp in canvas terms.
type opMessage struct {
	Kind  string  `json:"k"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	R     float64 `json:"r,omitempty"`
	Size  float64 `json:"s,omitempty"`
	Text  string  `json:"t,omitempty"`
	Color string  `json:"c,omitempty"`
}

// encodeOps converts recorded ops into their wire form.
func encodeOps(ops []core.DrawOp) []opMessage {
	out := make([]opMessage, 0, len(ops))
	for _, op := range ops {
		m := opMessage{
			Kind: string(op.Kind),
			X:    op.X,
			Y:    op.Y,
			W:    op.W,
			H:    op.H,
			R:    op.R,
			Size: op.Size,
			Text: op.Text,
		}
		if op.Kind != core.OpClear {
			m.Color = op.Color.Hex()
		}
		out = append(out, m)
	}
	return out
}
