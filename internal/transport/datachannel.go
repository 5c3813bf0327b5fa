// Package transport carries serialized gesture events over the
// negotiated peer-to-peer data channel.
package transport

import (
	"encoding/json"
	"fmt"

	"github.com/pion/webrtc/v3"

	"GestureLink/internal/gesture"
)

// ChannelLabel names the data channel the caller opens for gestures.
const ChannelLabel = "gesture"

// Payload is the inner gesture body on the wire.
type Payload struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type envelope struct {
	Type string  `json:"type"`
	Data Payload `json:"data"`
}

// Encode serializes a gesture event into the wire format.
func Encode(ev gesture.Event) ([]byte, error) {
	return json.Marshal(envelope{
		Type: "gesture",
		Data: Payload{Text: ev.Text, Confidence: ev.Confidence},
	})
}

// Decode parses a received message. Unknown shapes report ok=false and
// are ignored by the receiver, never treated as fatal.
func Decode(data []byte) (Payload, bool) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Payload{}, false
	}
	if env.Type != "gesture" {
		return Payload{}, false
	}
	return env.Data, true
}

// Channel wraps the open gesture data channel.
type Channel struct {
	dc *webrtc.DataChannel
}

func NewChannel(dc *webrtc.DataChannel) *Channel {
	return &Channel{dc: dc}
}

// SendEvent writes one event. Sending while the channel is not open is
// a no-op that reports failure to the caller.
func (c *Channel) SendEvent(ev gesture.Event) error {
	if c.dc.ReadyState() != webrtc.DataChannelStateOpen {
		return fmt.Errorf("data channel not open (state %s)", c.dc.ReadyState())
	}
	data, err := Encode(ev)
	if err != nil {
		return err
	}
	return c.dc.SendText(string(data))
}

// OnPayload registers a receive callback for well-formed gesture
// messages.
func (c *Channel) OnPayload(fn func(Payload)) {
	c.dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		if payload, ok := Decode(msg.Data); ok {
			fn(payload)
		}
	})
}
