package gesture

import (
	"time"

	"GestureLink/pkg/types"
)

const historyCap = 15

// TimedFrame is a normalized frame with its capture time.
type TimedFrame struct {
	Landmarks []types.Landmark
	At        time.Time
}

// MotionState holds the per-session motion context: the previous frame,
// a bounded history of per-joint velocities and a bounded history of
// timestamped frames. One instance per gesture session; Update must see
// frames in arrival order (the frame source guarantees monotonic
// timestamps).
type MotionState struct {
	prevLandmarks []types.Landmark
	prevTime      time.Time
	hasPrev       bool

	velocities *ring[[]types.Landmark]
	frames     *ring[TimedFrame]
}

func NewMotionState() *MotionState {
	return &MotionState{
		velocities: newRing[[]types.Landmark](historyCap),
		frames:     newRing[TimedFrame](historyCap),
	}
}

// Update ingests one normalized frame. Per-joint velocity against the
// previous frame is pushed onto the velocity history; a non-positive
// time delta or a joint-count mismatch fails soft to all-zero
// velocities. The previous-frame slot is updated unconditionally.
func (m *MotionState) Update(frame []types.Landmark, now time.Time) {
	if m.hasPrev {
		m.velocities.Push(velocity(m.prevLandmarks, frame, now.Sub(m.prevTime)))
	}
	m.frames.Push(TimedFrame{Landmarks: frame, At: now})

	m.prevLandmarks = frame
	m.prevTime = now
	m.hasPrev = true
}

// Velocities returns the buffered per-joint velocities, oldest first.
func (m *MotionState) Velocities() [][]types.Landmark {
	return m.velocities.Items()
}

// Frames returns the buffered timestamped frames, oldest first.
func (m *MotionState) Frames() []TimedFrame {
	return m.frames.Items()
}

func velocity(prev, cur []types.Landmark, dt time.Duration) []types.Landmark {
	out := make([]types.Landmark, len(cur))
	seconds := dt.Seconds()
	if seconds <= 0 || len(prev) != len(cur) {
		return out
	}
	for i := range cur {
		out[i] = types.Landmark{
			X: (cur[i].X - prev[i].X) / seconds,
			Y: (cur[i].Y - prev[i].Y) / seconds,
			Z: (cur[i].Z - prev[i].Z) / seconds,
		}
	}
	return out
}
