package gesture

import (
	"time"

	"GestureLink/pkg/types"
)

// Event is one stabilized gesture observation.
type Event struct {
	Label      Label   `json:"label"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Timestamp  int64   `json:"timestamp"`
}

// Pipeline runs normalize -> motion tracking -> classify -> smooth for
// one gesture session and fans stabilized events out to subscribers.
// It is single-writer: Process must be called from one goroutine, in
// frame arrival order.
type Pipeline struct {
	motion   *MotionState
	smoother *Smoother

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Event)
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		motion:   NewMotionState(),
		smoother: NewSmoother(),
	}
}

// Subscribe registers a callback for stabilized events and returns a
// deregistration handle. Callbacks run synchronously, in registration
// order, once per processed frame.
func (p *Pipeline) Subscribe(fn func(Event)) (unsubscribe func()) {
	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// Process consumes one detection cycle. Only the first hand is used
// when several are present; a cycle with no hands produces no event.
func (p *Pipeline) Process(hands []types.Hand, now time.Time) (Event, bool) {
	if len(hands) == 0 {
		return Event{}, false
	}

	// Motion tracks the raw joints: normalization pins the wrist to the
	// origin, which would hide whole-hand movement from the kinematic
	// rules.
	p.motion.Update(hands[0].Landmarks, now)
	frame := Normalize(hands[0].Landmarks)
	raw := Classify(frame, p.motion)
	stable, confidence := p.smoother.Smooth(raw)

	ev := Event{
		Label:      stable,
		Text:       stable.Display(),
		Confidence: confidence,
		Timestamp:  now.UnixMilli(),
	}
	for _, s := range p.subs {
		s.fn(ev)
	}
	return ev, true
}
