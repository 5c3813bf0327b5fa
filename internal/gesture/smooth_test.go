package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func feed(s *Smoother, labels ...Label) (Label, float64) {
	var stable Label
	var confidence float64
	for _, l := range labels {
		stable, confidence = s.Smooth(l)
	}
	return stable, confidence
}

func TestSmootherMajorityWins(t *testing.T) {
	s := NewSmoother()
	stable, confidence := feed(s,
		ThumbUp, ThumbUp, ThumbUp, ThumbUp, ThumbUp, ThumbUp, ThumbUp, ThumbUp, Fist)
	assert.Equal(t, ThumbUp, stable)
	assert.Equal(t, 0.9, confidence)
}

func TestSmootherStrictMaximum(t *testing.T) {
	s := NewSmoother()
	stable, _ := feed(s,
		ThumbUp, ThumbUp, Fist, Fist, Fist, OpenHand, OpenHand, OpenHand, OpenHand)
	assert.Equal(t, OpenHand, stable)
}

func TestSmootherTieKeepsFirstSeen(t *testing.T) {
	s := NewSmoother()
	// 4 votes each inside the window; the first-seen label wins the tie
	stable, _ := feed(s,
		ThumbUp, ThumbUp, ThumbUp, ThumbUp, Fist, Fist, Fist, Fist)
	assert.Equal(t, ThumbUp, stable)
}

func TestSmootherIgnoresUnknownVotes(t *testing.T) {
	s := NewSmoother()
	feed(s, OpenHand, OpenHand, OpenHand, OpenHand, OpenHand)
	// a single bad frame must not flip the stable label
	stable, confidence := s.Smooth(Unknown)
	assert.Equal(t, OpenHand, stable)
	assert.Equal(t, 0.9, confidence)
}

func TestSmootherNeedsFloorToSwitch(t *testing.T) {
	s := NewSmoother()
	feed(s, OpenHand, OpenHand, OpenHand)
	assert.Equal(t, OpenHand, s.Stable())

	// two stray votes are below the acceptance floor
	stable, _ := feed(s, Fist, Fist)
	assert.Equal(t, OpenHand, stable)

	// the third one is not, once OpenHand has left the window majority
	stable, _ = feed(s, Fist, Fist, Fist, Fist)
	assert.Equal(t, Fist, stable)
}

func TestSmootherLowConfidenceBeforeFirstStable(t *testing.T) {
	s := NewSmoother()
	stable, confidence := s.Smooth(ThumbUp)
	assert.Equal(t, Unknown, stable)
	assert.Equal(t, 0.4, confidence)
}
