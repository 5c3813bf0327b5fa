package signaling

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"GestureLink/internal/sessionlog"
	"GestureLink/pkg/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler owns the websocket endpoint: one goroutine per connection,
// reading signaling messages and driving the registry.
type Handler struct {
	registry *Registry
	sessions *sessionlog.Log
}

func NewHandler(registry *Registry, sessions *sessionlog.Log) *Handler {
	return &Handler{registry: registry, sessions: sessions}
}

func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	client := NewClient(conn, uuid.NewString())
	joinedRoom := ""

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Read error from %s: %v", client.ID(), err)
			break
		}

		var msg types.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			client.SendError("invalid JSON message")
			continue
		}

		switch msg.Type {
		case types.MsgJoin:
			if joinedRoom != "" {
				// protocol violation, drop and keep the session alive
				log.Printf("Duplicate join from %s ignored", client.ID())
				continue
			}
			if msg.Room == "" {
				client.SendError("join requires a room id")
				continue
			}
			size, role, err := h.registry.Join(msg.Room, client)
			if err != nil {
				client.SendError(err.Error())
				continue
			}
			joinedRoom = msg.Room
			if err := client.Send(types.Message{
				Type:     types.MsgJoined,
				Room:     msg.Room,
				PeerID:   client.ID(),
				RoomSize: size,
				Role:     role,
			}); err != nil {
				log.Printf("Failed to send joined ack to %s: %v", client.ID(), err)
			}
			// the joiner hears its own ack before the ready notification
			if size == 2 {
				if err := client.Send(types.Message{
					Type:     types.MsgRoomReady,
					Room:     msg.Room,
					RoomSize: size,
				}); err != nil {
					log.Printf("Failed to send room_ready to %s: %v", client.ID(), err)
				}
			}
			if h.sessions != nil {
				if err := h.sessions.RecordJoin(msg.Room, client.ID(), string(role)); err != nil {
					log.Printf("Failed to record join: %v", err)
				}
			}
			log.Printf("Peer %s joined room %s as %s (size %d)", client.ID(), msg.Room, role, size)

		case types.MsgOffer, types.MsgAnswer, types.MsgCandidate:
			if joinedRoom == "" {
				client.SendError("not in a room")
				continue
			}
			if err := h.registry.Relay(joinedRoom, client.ID(), msg); err != nil {
				log.Printf("Relay error from %s: %v", client.ID(), err)
			}

		default:
			log.Printf("Unhandled message type from %s: %s", client.ID(), msg.Type)
		}
	}

	if joinedRoom != "" {
		h.registry.Leave(joinedRoom, client.ID())
		if h.sessions != nil {
			if err := h.sessions.RecordLeave(joinedRoom, client.ID()); err != nil {
				log.Printf("Failed to record leave: %v", err)
			}
		}
	}
	log.Printf("Peer %s disconnected", client.ID())
}
