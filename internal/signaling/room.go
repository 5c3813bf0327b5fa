// Package signaling is the server side of session setup: it tracks
// which peers belong to which room, assigns caller/callee roles and
// relays offer/answer/candidate messages between room members.
package signaling

import (
	"fmt"
	"log"
	"sync"

	"GestureLink/pkg/types"
)

// Member is anything the registry can deliver signaling messages to.
type Member interface {
	ID() string
	Send(types.Message) error
}

// room keeps its members in join order; role assignment depends on it.
type room struct {
	id      string
	members []Member
}

func (r *room) indexOf(memberID string) int {
	for i, m := range r.members {
		if m.ID() == memberID {
			return i
		}
	}
	return -1
}

// Registry owns all rooms. Empty rooms are deleted when the last
// member leaves.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*room),
	}
}

// Join adds a member to a room, creating the room on first join, and
// returns the room size and the member's role: the first joiner is the
// callee, every later joiner a caller. When the room reaches exactly
// two members the existing members are told the room is ready; the
// joiner learns it from the returned size, after its join has been
// acknowledged.
func (reg *Registry) Join(roomID string, m Member) (int, types.Role, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rm, exists := reg.rooms[roomID]
	if !exists {
		rm = &room{id: roomID}
		reg.rooms[roomID] = rm
	}
	if rm.indexOf(m.ID()) >= 0 {
		return 0, "", fmt.Errorf("peer %s already joined room %s", m.ID(), roomID)
	}

	rm.members = append(rm.members, m)
	size := len(rm.members)
	role := types.RoleCaller
	if size == 1 {
		role = types.RoleCallee
	}

	if size == 2 {
		ready := types.Message{
			Type:     types.MsgRoomReady,
			Room:     roomID,
			RoomSize: size,
		}
		for _, member := range rm.members {
			if member.ID() == m.ID() {
				continue
			}
			if err := member.Send(ready); err != nil {
				log.Printf("Failed to send room_ready to %s: %v", member.ID(), err)
			}
		}
	}
	return size, role, nil
}

// Leave removes a member, notifies the remaining members and garbage
// collects the room once it is empty.
func (reg *Registry) Leave(roomID, memberID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rm, exists := reg.rooms[roomID]
	if !exists {
		return
	}
	i := rm.indexOf(memberID)
	if i < 0 {
		return
	}
	rm.members = append(rm.members[:i], rm.members[i+1:]...)

	if len(rm.members) == 0 {
		delete(reg.rooms, roomID)
		return
	}
	left := types.Message{
		Type:   types.MsgPeerLeft,
		Room:   roomID,
		PeerID: memberID,
	}
	for _, member := range rm.members {
		if err := member.Send(left); err != nil {
			log.Printf("Failed to send peer_left to %s: %v", member.ID(), err)
		}
	}
}

// Relay forwards a message to every other member of the room.
func (reg *Registry) Relay(roomID, fromID string, msg types.Message) error {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rm, exists := reg.rooms[roomID]
	if !exists {
		return fmt.Errorf("room %s not found", roomID)
	}
	msg.From = fromID
	for _, member := range rm.members {
		if member.ID() == fromID {
			continue
		}
		if err := member.Send(msg); err != nil {
			log.Printf("Failed to relay %s to %s: %v", msg.Type, member.ID(), err)
		}
	}
	return nil
}

// RoomSize reports the current member count of a room.
func (reg *Registry) RoomSize(roomID string) int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rm, exists := reg.rooms[roomID]
	if !exists {
		return 0
	}
	return len(rm.members)
}
