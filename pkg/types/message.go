package types

import (
	"github.com/pion/webrtc/v3"
)

// Role is assigned once per session by the room registry and never changes.
type Role string

const (
	RoleCaller Role = "caller"
	RoleCallee Role = "callee"
)

// Message is the envelope for every frame on the signaling channel.
type Message struct {
	Type      string                     `json:"type"`
	Room      string                     `json:"room,omitempty"`
	PeerID    string                     `json:"peer_id,omitempty"`
	From      string                     `json:"from,omitempty"`
	Role      Role                       `json:"role,omitempty"`
	RoomSize  int                        `json:"room_size,omitempty"`
	Message   string                     `json:"message,omitempty"`
	Error     string                     `json:"error,omitempty"`
	Timestamp int64                      `json:"timestamp,omitempty"`
	Offer     *webrtc.SessionDescription `json:"offer,omitempty"`
	Answer    *webrtc.SessionDescription `json:"answer,omitempty"`
	Candidate *webrtc.ICECandidateInit   `json:"candidate,omitempty"`
}

// Signaling message types. join is acknowledged with joined; offer,
// answer and candidate are relayed verbatim to the other room members.
const (
	MsgJoin      = "join"
	MsgJoined    = "joined"
	MsgRoomReady = "room_ready"
	MsgOffer     = "offer"
	MsgAnswer    = "answer"
	MsgCandidate = "candidate"
	MsgPeerLeft  = "peer_left"
	MsgError     = "error"
)

// Landmark represents a single 3D coordinate (x, y, z).
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand contains all information for a single detected hand.
type Hand struct {
	Handedness string     `json:"handedness"`
	Landmarks  []Landmark `json:"landmarks"`
	Confidence float64    `json:"confidence"`
}

// HandTrackingData is one detection cycle from the external model:
// zero or more hands with a capture timestamp in epoch milliseconds.
type HandTrackingData struct {
	Type      string `json:"type"`
	Payload   []Hand `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}
