package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GestureLink/internal/gesture"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ev := gesture.Event{
		Label:      gesture.ThumbUp,
		Text:       gesture.ThumbUp.Display(),
		Confidence: 0.9,
		Timestamp:  1700000000000,
	}
	data, err := Encode(ev)
	require.NoError(t, err)

	payload, ok := Decode(data)
	require.True(t, ok)
	assert.Equal(t, "👍 Thumbs Up", payload.Text)
	assert.Equal(t, 0.9, payload.Confidence)
}

func TestDecodeIgnoresUnknownShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "nonsense"},
		{"wrong type", `{"type":"chat","data":{"text":"hi"}}`},
		{"missing type", `{"data":{"text":"hi","confidence":0.5}}`},
		{"array", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Decode([]byte(tt.data))
			assert.False(t, ok)
		})
	}
}

func TestDecodeWireFormat(t *testing.T) {
	payload, ok := Decode([]byte(`{"type":"gesture","data":{"text":"✋ Stop","confidence":0.9}}`))
	require.True(t, ok)
	assert.Equal(t, "✋ Stop", payload.Text)
	assert.Equal(t, 0.9, payload.Confidence)
}
