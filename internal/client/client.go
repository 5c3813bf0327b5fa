// Package client is the headless peer: it joins a room over the
// signaling channel, negotiates the peer connection and bridges the
// local gesture pipeline onto the data channel.
package client

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	pionwebrtc "github.com/pion/webrtc/v3"

	"GestureLink/internal/config"
	"GestureLink/internal/gesture"
	"GestureLink/internal/rtc"
	"GestureLink/internal/session"
	"GestureLink/internal/shared"
	"GestureLink/internal/signaling"
	"GestureLink/internal/transport"
	"GestureLink/pkg/types"
)

// Call is one attempt to establish a gesture session in a room.
type Call struct {
	cfg    *config.Config
	roomID string

	sig      *signaling.Client
	conn     *websocket.Conn
	session  *session.Session
	peer     *rtc.Peer
	pipeline *gesture.Pipeline
	mirror   *shared.EventMirror

	mu        sync.Mutex
	channel   *transport.Channel
	lastLabel gesture.Label

	// OnRemoteGesture fires for every gesture event received from the
	// remote peer.
	OnRemoteGesture func(transport.Payload)
}

// Dial connects to the signaling server and joins the room. Media is
// not acquired yet; that happens once the join is acknowledged.
func Dial(cfg *config.Config, roomID string) (*Call, error) {
	conn, _, err := websocket.DefaultDialer.Dial(cfg.SignalingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial signaling server: %w", err)
	}

	c := &Call{
		cfg:      cfg,
		roomID:   roomID,
		conn:     conn,
		sig:      signaling.NewClient(conn, "local"),
		pipeline: gesture.NewPipeline(),
	}
	c.session = session.New(roomID, c.sig)

	if cfg.MirrorFile != "" {
		mirror, err := shared.NewEventMirror(cfg.MirrorFile, 4096)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to open event mirror: %w", err)
		}
		c.mirror = mirror
	}

	c.pipeline.Subscribe(c.publish)

	if err := c.sig.Send(types.Message{Type: types.MsgJoin, Room: roomID}); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to join room: %w", err)
	}
	return c, nil
}

// Pipeline exposes the local gesture pipeline so frame sources can feed
// it and callers can add subscribers.
func (c *Call) Pipeline() *gesture.Pipeline {
	return c.pipeline
}

// Session exposes the negotiation state, mainly for status reporting.
func (c *Call) Session() *session.Session {
	return c.session
}

// publish runs synchronously for every stabilized event: it mirrors the
// event and forwards label changes to the remote peer. Consecutive
// identical labels are not resent.
func (c *Call) publish(ev gesture.Event) {
	if c.mirror != nil {
		if err := c.mirror.WriteJSON(ev); err != nil {
			log.Printf("Failed to mirror event: %v", err)
		}
	}

	c.mu.Lock()
	ch := c.channel
	changed := ev.Label != c.lastLabel
	if changed {
		c.lastLabel = ev.Label
	}
	c.mu.Unlock()

	if ch == nil || !changed || ev.Label == gesture.Unknown {
		return
	}
	if err := ch.SendEvent(ev); err != nil {
		log.Printf("Failed to send gesture event: %v", err)
	}
}

// Run drives the signaling read loop until the connection drops or the
// remote peer leaves.
func (c *Call) Run() error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("signaling read error: %w", err)
		}

		var msg types.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Ignoring malformed signaling message: %v", err)
			continue
		}
		if err := c.handle(msg); err != nil {
			// session-level error: log and stay in the current state
			log.Printf("Error handling %s: %v", msg.Type, err)
		}
		if msg.Type == types.MsgPeerLeft {
			return nil
		}
	}
}

func (c *Call) handle(msg types.Message) error {
	switch msg.Type {
	case types.MsgJoined:
		log.Printf("Joined room %s as %s (size %d)", msg.Room, msg.Role, msg.RoomSize)
		c.session.SetRole(msg.Role)
		return c.acquireMedia()

	case types.MsgRoomReady:
		log.Printf("Room %s ready", msg.Room)
		return c.session.HandleRoomReady()

	case types.MsgOffer:
		if msg.Offer == nil {
			return fmt.Errorf("no offer provided")
		}
		return c.session.HandleOffer(*msg.Offer)

	case types.MsgAnswer:
		if msg.Answer == nil {
			return fmt.Errorf("no answer provided")
		}
		return c.session.HandleAnswer(*msg.Answer)

	case types.MsgCandidate:
		if msg.Candidate == nil {
			return fmt.Errorf("no candidate provided")
		}
		return c.session.HandleCandidate(*msg.Candidate)

	case types.MsgPeerLeft:
		log.Printf("Peer %s left room %s", msg.PeerID, msg.Room)
		return c.session.Close()

	case types.MsgError:
		log.Printf("Signaling error: %s", msg.Error)
		return nil

	default:
		log.Printf("Unhandled signaling message type: %s", msg.Type)
		return nil
	}
}

// acquireMedia creates the peer connection with local tracks and hands
// it to the state machine. The caller additionally opens the gesture
// channel before any offer exists so it rides the negotiated SDP.
func (c *Call) acquireMedia() error {
	peer, err := rtc.NewPeer(c.cfg.STUNServer)
	if err != nil {
		// fatal to this attempt, recoverable by redialing
		return fmt.Errorf("media acquisition failed: %w", err)
	}
	c.peer = peer

	peer.OnICECandidate(func(candidate pionwebrtc.ICECandidateInit) {
		if err := c.session.SendLocalCandidate(candidate); err != nil {
			log.Printf("Failed to forward candidate: %v", err)
		}
	})
	peer.OnGestureChannel(c.attachChannel)

	if c.session.Role() == types.RoleCaller {
		dc, err := peer.CreateGestureChannel()
		if err != nil {
			return err
		}
		c.attachChannel(dc)
	}
	return c.session.MediaReady(peer)
}

func (c *Call) attachChannel(dc *pionwebrtc.DataChannel) {
	ch := transport.NewChannel(dc)
	ch.OnPayload(func(p transport.Payload) {
		if c.OnRemoteGesture != nil {
			c.OnRemoteGesture(p)
		}
	})
	dc.OnOpen(func() {
		c.mu.Lock()
		c.channel = ch
		c.mu.Unlock()
		c.session.ChannelOpen()
	})
	dc.OnClose(func() {
		c.mu.Lock()
		if c.channel == ch {
			c.channel = nil
		}
		c.mu.Unlock()
	})
}

// Close tears down the session, the data channel and all locally owned
// media.
func (c *Call) Close() error {
	if err := c.session.Close(); err != nil {
		log.Printf("Error closing session: %v", err)
	}
	if c.mirror != nil {
		c.mirror.Close()
	}
	return c.conn.Close()
}
