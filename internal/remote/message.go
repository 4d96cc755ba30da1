// Package remote bridges the controller to browser clients over websocket.
// Clients send slider, pointer and resize messages; every rendered frame is
// broadcast back as JSON so a browser-side shader can act as the renderer.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/san-kum/rainfx/internal/input"
	"github.com/san-kum/rainfx/internal/rain"
)

var ErrUnknownMessage = errors.New("remote: unknown message type")

// Message is the client-to-server wire format.
type Message struct {
	Type       string  `json:"type"`
	Value      float64 `json:"value,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Down       bool    `json:"down,omitempty"`
	Move       bool    `json:"move,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	PixelRatio float64 `json:"pixelRatio,omitempty"`
}

// FrameMessage is the server-to-client wire format.
type FrameMessage struct {
	Type   string            `json:"type"`
	Frame  uint64            `json:"frame"`
	Params rain.RenderParams `json:"params"`
}

func DecodeMessage(data []byte) (input.Event, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("remote: decode: %w", err)
	}

	switch m.Type {
	case "slider":
		return input.SliderChanged{Value: m.Value}, nil
	case "pointer":
		return input.PointerEvent{X: m.X, Y: m.Y, Down: m.Down, Move: m.Move}, nil
	case "resize":
		return input.ResizeEvent{Width: m.Width, Height: m.Height, PixelRatio: m.PixelRatio}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
}
