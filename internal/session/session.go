// Package session implements the peer-side negotiation state machine:
// role handling, offer/answer ordering, candidate buffering and the
// guards that make an unreliable signaling channel safe to drive a
// peer connection with.
package session

import (
	"fmt"
	"log"
	"sync"

	"github.com/pion/webrtc/v3"

	"GestureLink/pkg/types"
)

// State is the explicit negotiation state. Illegal transitions are
// no-ops, not errors.
type State int

const (
	StateIdle State = iota
	StateHaveLocalOffer
	StateHaveRemoteOffer
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHaveLocalOffer:
		return "have-local-offer"
	case StateHaveRemoteOffer:
		return "have-remote-offer"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Link is the subset of a peer connection the state machine drives.
type Link interface {
	CreateOffer() (webrtc.SessionDescription, error)
	CreateAnswer() (webrtc.SessionDescription, error)
	SetLocalDescription(webrtc.SessionDescription) error
	SetRemoteDescription(webrtc.SessionDescription) error
	AddICECandidate(webrtc.ICECandidateInit) error
	Close() error
}

// Sender delivers signaling messages to the remote peer.
type Sender interface {
	Send(types.Message) error
}

// Session is the per-room negotiation state. Events arrive from the
// signaling read loop and from pion callbacks, so all mutation happens
// under one lock.
type Session struct {
	mu sync.Mutex

	roomID string
	role   types.Role
	state  State
	send   Sender
	link   Link

	roomReady  bool
	mediaReady bool
	offerSent  bool
	remoteSet  bool

	pendingOffer      *webrtc.SessionDescription
	pendingCandidates []webrtc.ICECandidateInit
}

func New(roomID string, send Sender) *Session {
	return &Session{
		roomID: roomID,
		state:  StateIdle,
		send:   send,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Role() types.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// SetRole records the role assigned by the registry. Roles are assigned
// once; a second assignment is ignored.
func (s *Session) SetRole(role types.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != "" {
		log.Printf("Role already assigned (%s), ignoring %s", s.role, role)
		return
	}
	s.role = role
}

// HandleRoomReady marks the room as full. The caller may now send its
// offer if local media is also ready.
func (s *Session) HandleRoomReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomReady = true
	return s.maybeOffer()
}

// MediaReady binds the peer connection once local media has been
// acquired. A deferred remote offer is processed now; otherwise the
// caller path may fire.
func (s *Session) MediaReady(link Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.link = link
	s.mediaReady = true

	if s.pendingOffer != nil {
		offer := *s.pendingOffer
		s.pendingOffer = nil
		return s.applyOffer(offer)
	}
	return s.maybeOffer()
}

// maybeOffer sends the offer when all three preconditions hold: role is
// caller, the room is ready and local media is attached. The one-shot
// guard keeps the room-ready/media-ready race from producing two
// offers; it latches only once the offer has reached the sender, so a
// transient failure leaves the path retryable on the next event.
// Callers must hold the lock.
func (s *Session) maybeOffer() error {
	if s.role != types.RoleCaller || !s.roomReady || !s.mediaReady || s.offerSent {
		return nil
	}

	offer, err := s.link.CreateOffer()
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	if err := s.link.SetLocalDescription(offer); err != nil {
		return fmt.Errorf("failed to set local description: %w", err)
	}
	if err := s.send.Send(types.Message{
		Type:  types.MsgOffer,
		Room:  s.roomID,
		Offer: &offer,
	}); err != nil {
		return fmt.Errorf("failed to send offer: %w", err)
	}
	s.offerSent = true
	s.state = StateHaveLocalOffer
	return nil
}

// HandleOffer processes a remote offer, deferring it until local media
// is available.
func (s *Session) HandleOffer(offer webrtc.SessionDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return nil
	}
	if !s.mediaReady {
		s.pendingOffer = &offer
		log.Printf("Offer received before local media, deferring")
		return nil
	}
	return s.applyOffer(offer)
}

// applyOffer runs the answerer path. Callers must hold the lock.
func (s *Session) applyOffer(offer webrtc.SessionDescription) error {
	if err := s.link.SetRemoteDescription(offer); err != nil {
		return fmt.Errorf("failed to set remote description: %w", err)
	}
	s.state = StateHaveRemoteOffer
	s.remoteSet = true
	s.drainCandidates()

	answer, err := s.link.CreateAnswer()
	if err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	if err := s.link.SetLocalDescription(answer); err != nil {
		return fmt.Errorf("failed to set local description: %w", err)
	}
	return s.send.Send(types.Message{
		Type:   types.MsgAnswer,
		Room:   s.roomID,
		Answer: &answer,
	})
}

// HandleAnswer applies a remote answer only while a local offer is
// outstanding; duplicate or delayed answers are discarded unchanged.
func (s *Session) HandleAnswer(answer webrtc.SessionDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHaveLocalOffer || s.remoteSet {
		log.Printf("Discarding answer in state %s", s.state)
		return nil
	}
	if err := s.link.SetRemoteDescription(answer); err != nil {
		return fmt.Errorf("failed to set remote description: %w", err)
	}
	s.remoteSet = true
	s.drainCandidates()
	return nil
}

// HandleCandidate applies a remote candidate, buffering it while the
// connection cannot accept candidates yet. Buffered candidates are
// drained in arrival order.
func (s *Session) HandleCandidate(candidate webrtc.ICECandidateInit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return nil
	}
	if s.link == nil || !s.remoteSet {
		s.pendingCandidates = append(s.pendingCandidates, candidate)
		return nil
	}
	if err := s.link.AddICECandidate(candidate); err != nil {
		return fmt.Errorf("failed to add ICE candidate: %w", err)
	}
	return nil
}

func (s *Session) drainCandidates() {
	for _, c := range s.pendingCandidates {
		if err := s.link.AddICECandidate(c); err != nil {
			log.Printf("Failed to apply buffered candidate: %v", err)
		}
	}
	s.pendingCandidates = nil
}

// SendLocalCandidate forwards a locally discovered candidate to the
// remote peer.
func (s *Session) SendLocalCandidate(candidate webrtc.ICECandidateInit) error {
	s.mu.Lock()
	roomID := s.roomID
	closed := s.state == StateClosed
	s.mu.Unlock()

	if closed {
		return nil
	}
	return s.send.Send(types.Message{
		Type:      types.MsgCandidate,
		Room:      roomID,
		Candidate: &candidate,
	})
}

// ChannelOpen marks the session connected. Connectivity is defined by
// the gesture data channel opening, not by peer-connection creation.
func (s *Session) ChannelOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.state = StateConnected
	log.Printf("Session connected in room %s as %s", s.roomID, s.role)
}

// Close tears the session down; in-flight signaling for it becomes a
// no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	s.pendingOffer = nil
	s.pendingCandidates = nil
	if s.link != nil {
		return s.link.Close()
	}
	return nil
}
