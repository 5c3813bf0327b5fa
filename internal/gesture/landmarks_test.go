package gesture

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"GestureLink/pkg/types"
)

func TestNormalizeEmptyFrame(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize([]types.Landmark{}))
}

func TestNormalizeWristAtOrigin(t *testing.T) {
	out := Normalize(openHandFrame())
	assert.Equal(t, types.Landmark{}, out[Wrist])
}

func TestNormalizeInvariantUnderTranslationAndScale(t *testing.T) {
	base := openHandFrame()
	want := Normalize(base)

	tests := []struct {
		name          string
		shiftX, shift float64
		scale         float64
	}{
		{"translation only", 0.4, -0.25, 1},
		{"scale only", 0, 0, 3.5},
		{"translation and scale", -0.1, 0.6, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved := make([]types.Landmark, len(base))
			for i, lm := range base {
				moved[i] = types.Landmark{
					X: lm.X*tt.scale + tt.shiftX,
					Y: lm.Y*tt.scale + tt.shift,
					Z: lm.Z,
				}
			}
			got := Normalize(moved)
			if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("normalization not invariant (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeDegenerateSpanFallsBack(t *testing.T) {
	// all joints on one point: knuckle span is zero, scale falls back to 1
	frame := make([]types.Landmark, NumLandmarks)
	for i := range frame {
		frame[i] = types.Landmark{X: 0.5, Y: 0.5, Z: 0.1}
	}
	out := Normalize(frame)
	for _, lm := range out {
		assert.Equal(t, types.Landmark{}, lm)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	base := openHandFrame()
	first := Normalize(base)
	second := Normalize(base)
	assert.Equal(t, first, second)
}
