// Package gesture turns per-frame hand landmark lists into stable,
// human-readable gesture events.
package gesture

import (
	"math"

	"GestureLink/pkg/types"
)

// Hand landmark indices following the MediaPipe convention.
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

func distanceXY(a, b types.Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Normalize translates the frame so the wrist sits at the origin and
// scales x and y by the index-MCP to pinky-MCP knuckle span. Depth stays
// wrist-relative but unscaled. A degenerate span falls back to 1 so the
// function has no failure path; an empty frame yields an empty frame.
func Normalize(frame []types.Landmark) []types.Landmark {
	if len(frame) == 0 {
		return nil
	}

	wrist := frame[Wrist]
	out := make([]types.Landmark, len(frame))
	for i, lm := range frame {
		out[i] = types.Landmark{
			X: lm.X - wrist.X,
			Y: lm.Y - wrist.Y,
			Z: lm.Z - wrist.Z,
		}
	}

	scale := 1.0
	if len(out) > PinkyMCP {
		if span := distanceXY(out[IndexMCP], out[PinkyMCP]); span > 1e-9 {
			scale = span
		}
	}
	for i := range out {
		out[i].X /= scale
		out[i].Y /= scale
	}
	return out
}
