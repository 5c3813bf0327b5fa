package gesture

const (
	voteWindow = 9
	voteFloor  = 3
)

// Smoother is a majority-vote filter over the recent raw labels. It
// trades about a window of latency for flicker suppression: a new
// stable label is accepted only once it has a strict majority count of
// at least voteFloor inside the window, otherwise the previous stable
// label sticks.
type Smoother struct {
	history *ring[Label]
	stable  Label
}

func NewSmoother() *Smoother {
	return &Smoother{
		history: newRing[Label](historyCap),
		stable:  Unknown,
	}
}

// Stable returns the current stable label.
func (s *Smoother) Stable() Label {
	return s.stable
}

// Smooth appends one raw label and returns the stable label plus a
// confidence. UNKNOWN never receives votes, so a single bad frame in an
// otherwise consistent run cannot flip the output. Confidence is binary:
// 0.9 once a real label is stable, 0.4 before that.
func (s *Smoother) Smooth(raw Label) (Label, float64) {
	s.history.Push(raw)

	counts := make(map[Label]int)
	order := make([]Label, 0, voteWindow)
	for _, l := range s.history.Last(voteWindow) {
		if l == Unknown {
			continue
		}
		if _, seen := counts[l]; !seen {
			order = append(order, l)
		}
		counts[l]++
	}

	best := Unknown
	bestCount := 0
	for _, l := range order {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	if bestCount >= voteFloor {
		s.stable = best
	}

	confidence := 0.4
	if s.stable != Unknown {
		confidence = 0.9
	}
	return s.stable, confidence
}
