package gesture

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"GestureLink/pkg/types"
)

// Geometric margins on normalized frames. y grows downward, so an
// extended fingertip sits above its PIP joint.
const (
	extendMargin = 0.02
	curlTol      = 0.005
	touchDist    = 0.07
	heartDist    = 0.05
	pointMargin  = 0.02
	pointReach   = 0.04
	sideReach    = 0.05
	tuckDist     = 0.08
	spreadDist   = 0.04
	palmDepth    = 0.03
	horizDom     = 1.5

	waveMinSamples  = 10
	waveSpeedFloor  = 0.1
	waveMinActive   = 5
	waveMinTravel   = 0.3
	waveMinChanges  = 3
	stopMinSamples  = 5
	stopSpeedWindow = 10
	stopRestSpeed   = 0.05
	stopMoveSpeed   = 0.15
	stopMinMoving   = 3

	callMeMaxTilt = 30.0 * math.Pi / 180.0
)

type rule struct {
	label Label
	match func(pose, *MotionState) bool
}

// Priority order is the tie-break: the first matching rule wins and no
// later rule is consulted. The order is a contract; reordering changes
// the classification of ambiguous poses.
var rules = []rule{
	{Wave, func(p pose, m *MotionState) bool { return isWave(m) }},
	{Stop, isStop},
	{CallMe, staticRule(isCallMe)},
	{RockSign, staticRule(isRockSign)},
	{ThumbUp, staticRule(isThumbUp)},
	{ThumbDown, staticRule(isThumbDown)},
	{Fist, staticRule(isFist)},
	{RaisedFist, staticRule(isRaisedFist)},
	{OKSign, staticRule(isOKSign)},
	{Pinch, staticRule(isPinch)},
	{PeaceSign, staticRule(isPeaceSign)},
	{VictoryAlt, staticRule(isVictoryAlt)},
	{Claw, staticRule(isClaw)},
	{PointUp, staticRule(isPointUp)},
	{PointRight, staticRule(isPointRight)},
	{PointLeft, staticRule(isPointLeft)},
	{PointDown, staticRule(isPointDown)},
	{PalmUp, staticRule(isPalmUp)},
	{PalmDown, staticRule(isPalmDown)},
	{ThreeFingers, staticRule(isThreeFingers)},
	{FourFingers, staticRule(isFourFingers)},
	{FingerHeart, staticRule(isFingerHeart)},
	{CrossFingers, staticRule(isCrossFingers)},
	{HandshakeStart, staticRule(isHandshake)},
	{Pray, staticRule(isPray)},
	{OpenHand, staticRule(isOpenHand)},
}

func staticRule(f func(pose) bool) func(pose, *MotionState) bool {
	return func(p pose, _ *MotionState) bool { return f(p) }
}

// Classify maps one normalized frame plus motion context to a raw
// label. Frames with fewer than 21 joints fail closed to UNKNOWN.
func Classify(frame []types.Landmark, motion *MotionState) Label {
	if len(frame) < NumLandmarks {
		return Unknown
	}
	p := pose{f: frame}
	for _, r := range rules {
		if r.match(p, motion) {
			return r.label
		}
	}
	return Unknown
}

type pose struct {
	f []types.Landmark
}

var fingerTips = [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}
var fingerPIPs = [4]int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
var fingerMCPs = [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

func (p pose) extended(tip, pip int) bool {
	return p.f[tip].Y < p.f[pip].Y-extendMargin
}

func (p pose) curled(tip, pip int) bool {
	return p.f[tip].Y > p.f[pip].Y-curlTol
}

func (p pose) allExtended() bool {
	for i := range fingerTips {
		if !p.extended(fingerTips[i], fingerPIPs[i]) {
			return false
		}
	}
	return true
}

func (p pose) allCurled() bool {
	for i := range fingerTips {
		if !p.curled(fingerTips[i], fingerPIPs[i]) {
			return false
		}
	}
	return true
}

// wrapped reports a full curl: every fingertip at or below its knuckle.
func (p pose) wrapped() bool {
	for i := range fingerTips {
		if p.f[fingerTips[i]].Y < p.f[fingerMCPs[i]].Y {
			return false
		}
	}
	return true
}

func (p pose) tipDist(a, b int) float64 {
	return distanceXY(p.f[a], p.f[b])
}

func (p pose) thumbRaised() bool {
	return p.f[ThumbTip].Y < p.f[ThumbIP].Y-extendMargin
}

func isCallMe(p pose) bool {
	if !p.curled(IndexTip, IndexPIP) || !p.curled(MiddleTip, MiddlePIP) || !p.curled(RingTip, RingPIP) {
		return false
	}
	if !p.extended(PinkyTip, PinkyPIP) && p.tipDist(PinkyTip, PinkyMCP) < 0.15 {
		return false
	}
	if p.tipDist(ThumbTip, IndexMCP) < tuckDist {
		return false
	}
	// knuckle line within 30 degrees of vertical
	vx := p.f[PinkyMCP].X - p.f[IndexMCP].X
	vy := p.f[PinkyMCP].Y - p.f[IndexMCP].Y
	return math.Atan2(math.Abs(vx), math.Abs(vy)) <= callMeMaxTilt
}

func isRockSign(p pose) bool {
	return p.extended(IndexTip, IndexPIP) && p.extended(PinkyTip, PinkyPIP) &&
		p.curled(MiddleTip, MiddlePIP) && p.curled(RingTip, RingPIP) &&
		!p.thumbRaised()
}

func isThumbUp(p pose) bool {
	return p.allCurled() && p.thumbRaised() && p.f[ThumbTip].Y < -pointMargin
}

func isThumbDown(p pose) bool {
	return p.allCurled() &&
		p.f[ThumbTip].Y > p.f[ThumbIP].Y+extendMargin &&
		p.f[ThumbTip].Y > pointMargin
}

func isFist(p pose) bool {
	return p.allCurled() && p.wrapped() &&
		p.tipDist(ThumbTip, IndexTip) > heartDist &&
		p.f[MiddleMCP].Y >= -pointMargin
}

func isRaisedFist(p pose) bool {
	return p.allCurled() && p.wrapped() &&
		p.tipDist(ThumbTip, IndexTip) > heartDist &&
		p.f[MiddleMCP].Y < -pointMargin
}

func isOKSign(p pose) bool {
	return p.tipDist(ThumbTip, IndexTip) < touchDist &&
		p.extended(MiddleTip, MiddlePIP) &&
		p.extended(RingTip, RingPIP) &&
		p.extended(PinkyTip, PinkyPIP)
}

func isPinch(p pose) bool {
	return p.tipDist(ThumbTip, IndexTip) < touchDist &&
		!p.curled(IndexTip, IndexPIP)
}

// crossedFingers reports index/middle tips on swapped sides of their
// own knuckles.
func (p pose) crossedFingers() bool {
	tipSide := p.f[IndexTip].X - p.f[MiddleTip].X
	mcpSide := p.f[IndexMCP].X - p.f[MiddleMCP].X
	return tipSide*mcpSide < 0
}

func twoFingersUp(p pose) bool {
	return p.extended(IndexTip, IndexPIP) && p.extended(MiddleTip, MiddlePIP) &&
		p.curled(RingTip, RingPIP) && p.curled(PinkyTip, PinkyPIP)
}

func isPeaceSign(p pose) bool {
	return twoFingersUp(p) && !p.crossedFingers() &&
		p.tipDist(IndexTip, MiddleTip) > spreadDist
}

func isVictoryAlt(p pose) bool {
	return twoFingersUp(p) && !p.crossedFingers() &&
		p.tipDist(IndexTip, MiddleTip) <= spreadDist
}

func isClaw(p pose) bool {
	for i := range fingerTips {
		if !p.curled(fingerTips[i], fingerPIPs[i]) {
			return false
		}
		// hooked, not wrapped: tip still above the knuckle
		if p.f[fingerTips[i]].Y >= p.f[fingerMCPs[i]].Y-curlTol {
			return false
		}
	}
	return true
}

func otherFingersCurled(p pose) bool {
	return p.curled(MiddleTip, MiddlePIP) && p.curled(RingTip, RingPIP) &&
		p.curled(PinkyTip, PinkyPIP)
}

func isPointUp(p pose) bool {
	return otherFingersCurled(p) && p.extended(IndexTip, IndexPIP) &&
		p.f[IndexTip].Y < -pointMargin
}

func pointSideways(p pose) (dx float64, ok bool) {
	if !otherFingersCurled(p) {
		return 0, false
	}
	dx = p.f[IndexTip].X - p.f[IndexMCP].X
	dy := p.f[IndexTip].Y - p.f[IndexMCP].Y
	return dx, math.Abs(dx) > pointReach && math.Abs(dx) > horizDom*math.Abs(dy)
}

func isPointRight(p pose) bool {
	dx, ok := pointSideways(p)
	return ok && dx > 0
}

func isPointLeft(p pose) bool {
	dx, ok := pointSideways(p)
	return ok && dx < 0
}

func isPointDown(p pose) bool {
	return otherFingersCurled(p) &&
		p.f[IndexTip].Y > p.f[IndexPIP].Y+pointMargin &&
		p.f[IndexTip].Y > pointMargin
}

func (p pose) meanTipDepth() float64 {
	var sum float64
	for _, tip := range fingerTips {
		sum += p.f[tip].Z
	}
	return sum / float64(len(fingerTips))
}

func isPalmUp(p pose) bool {
	return p.allExtended() && p.meanTipDepth() < -palmDepth
}

func isPalmDown(p pose) bool {
	return p.allExtended() && p.meanTipDepth() > palmDepth
}

func isThreeFingers(p pose) bool {
	return p.extended(IndexTip, IndexPIP) && p.extended(MiddleTip, MiddlePIP) &&
		p.extended(RingTip, RingPIP) && p.curled(PinkyTip, PinkyPIP)
}

func isFourFingers(p pose) bool {
	return p.allExtended() && p.tipDist(ThumbTip, IndexMCP) < tuckDist
}

func isFingerHeart(p pose) bool {
	return p.tipDist(ThumbTip, IndexTip) < heartDist &&
		p.curled(IndexTip, IndexPIP) && otherFingersCurled(p)
}

func isCrossFingers(p pose) bool {
	return twoFingersUp(p) && p.crossedFingers()
}

func isHandshake(p pose) bool {
	dir := 0.0
	for i := range fingerTips {
		dx := p.f[fingerTips[i]].X - p.f[fingerMCPs[i]].X
		dy := p.f[fingerTips[i]].Y - p.f[fingerMCPs[i]].Y
		if math.Abs(dx) < sideReach || math.Abs(dx) <= horizDom*math.Abs(dy) {
			return false
		}
		if dir*dx < 0 {
			return false
		}
		dir = dx
	}
	return true
}

func isPray(p pose) bool {
	return p.allExtended() &&
		p.tipDist(IndexTip, PinkyTip) < 0.10 &&
		p.tipDist(ThumbTip, IndexPIP) < tuckDist
}

func isOpenHand(p pose) bool {
	return p.allExtended()
}

// wristSpeeds extracts the wrist speed of every buffered velocity
// sample, oldest first. Fail-soft samples read as zero speed.
func wristSpeeds(m *MotionState) []float64 {
	vels := m.Velocities()
	speeds := make([]float64, 0, len(vels))
	for _, v := range vels {
		if len(v) <= Wrist {
			speeds = append(speeds, 0)
			continue
		}
		speeds = append(speeds, math.Hypot(v[Wrist].X, v[Wrist].Y))
	}
	return speeds
}

// isWave looks for repeated horizontal direction reversals of the wrist:
// at least waveMinChanges sign flips among horizontally dominant samples,
// waveMinActive samples above the speed floor and accumulated horizontal
// travel above waveMinTravel.
func isWave(m *MotionState) bool {
	if m == nil {
		return false
	}
	vels := m.Velocities()
	if len(vels) < waveMinSamples {
		return false
	}
	var (
		changes int
		active  int
		travel  float64
		prevDir float64
	)
	for _, v := range vels {
		if len(v) <= Wrist {
			continue
		}
		vx, vy := v[Wrist].X, v[Wrist].Y
		if math.Hypot(vx, vy) < waveSpeedFloor {
			continue
		}
		active++
		if math.Abs(vx) <= horizDom*math.Abs(vy) {
			continue
		}
		travel += math.Abs(vx)
		dir := math.Copysign(1, vx)
		if prevDir != 0 && dir != prevDir {
			changes++
		}
		prevDir = dir
	}
	return changes >= waveMinChanges && travel > waveMinTravel && active >= waveMinActive
}

// isStop fires on a deceleration-to-rest signature of an open,
// camera-facing palm: the hand was recently moving but the average
// wrist speed over the last samples has dropped to near zero.
func isStop(p pose, m *MotionState) bool {
	if m == nil || !p.allExtended() {
		return false
	}
	speeds := wristSpeeds(m)
	if len(speeds) < stopMinSamples {
		return false
	}
	moving := 0
	for _, s := range speeds {
		if s > stopMoveSpeed {
			moving++
		}
	}
	window := speeds
	if len(window) > stopSpeedWindow {
		window = window[len(window)-stopSpeedWindow:]
	}
	return moving >= stopMinMoving && stat.Mean(window, nil) < stopRestSpeed
}
