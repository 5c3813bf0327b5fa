package gesture

// Label is the closed set of gestures the classifier can produce.
type Label string

const (
	ThumbUp        Label = "THUMB_UP"
	ThumbDown      Label = "THUMB_DOWN"
	Fist           Label = "FIST"
	RaisedFist     Label = "RAISED_FIST"
	OKSign         Label = "OK_SIGN"
	Pinch          Label = "PINCH"
	PeaceSign      Label = "PEACE_SIGN"
	VictoryAlt     Label = "VICTORY_ALT"
	RockSign       Label = "ROCK_SIGN"
	CallMe         Label = "CALL_ME"
	Claw           Label = "CLAW"
	PointUp        Label = "POINT_UP"
	PointDown      Label = "POINT_DOWN"
	PointLeft      Label = "POINT_LEFT"
	PointRight     Label = "POINT_RIGHT"
	Wave           Label = "WAVE"
	PalmUp         Label = "PALM_UP"
	PalmDown       Label = "PALM_DOWN"
	Stop           Label = "STOP"
	ThreeFingers   Label = "THREE_FINGERS"
	FourFingers    Label = "FOUR_FINGERS"
	FingerHeart    Label = "FINGER_HEART"
	CrossFingers   Label = "CROSS_FINGERS"
	HandshakeStart Label = "HANDSHAKE_START"
	Pray           Label = "PRAY"
	OpenHand       Label = "OPEN_HAND"
	Unknown        Label = "UNKNOWN"
)

var displayText = map[Label]string{
	ThumbUp:        "👍 Thumbs Up",
	ThumbDown:      "👎 Thumbs Down",
	Fist:           "✊ Fist",
	RaisedFist:     "✊ Raised Fist",
	OKSign:         "👌 OK",
	Pinch:          "🤏 Pinch",
	PeaceSign:      "✌️ Peace",
	VictoryAlt:     "✌️ Victory",
	RockSign:       "🤘 Rock On",
	CallMe:         "🤙 Call Me",
	Claw:           "🦖 Claw",
	PointUp:        "☝️ Pointing Up",
	PointDown:      "👇 Pointing Down",
	PointLeft:      "👈 Pointing Left",
	PointRight:     "👉 Pointing Right",
	Wave:           "👋 Wave",
	PalmUp:         "🤲 Palm Up",
	PalmDown:       "🫳 Palm Down",
	Stop:           "✋ Stop",
	ThreeFingers:   "3️⃣ Three Fingers",
	FourFingers:    "4️⃣ Four Fingers",
	FingerHeart:    "🫰 Finger Heart",
	CrossFingers:   "🤞 Fingers Crossed",
	HandshakeStart: "🤝 Handshake",
	Pray:           "🙏 Pray",
	OpenHand:       "🖐️ Open Hand",
}

// Display returns the fixed display string for a label, empty for UNKNOWN.
func (l Label) Display() string {
	return displayText[l]
}
