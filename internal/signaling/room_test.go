package signaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GestureLink/pkg/types"
)

type fakeMember struct {
	id       string
	received []types.Message
}

func (m *fakeMember) ID() string { return m.id }

func (m *fakeMember) Send(msg types.Message) error {
	m.received = append(m.received, msg)
	return nil
}

func (m *fakeMember) byType(msgType string) []types.Message {
	var out []types.Message
	for _, msg := range m.received {
		if msg.Type == msgType {
			out = append(out, msg)
		}
	}
	return out
}

func TestFirstJoinerIsCallee(t *testing.T) {
	reg := NewRegistry()
	a := &fakeMember{id: "peer-a"}

	size, role, err := reg.Join("room-1", a)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
	assert.Equal(t, types.RoleCallee, role)
	// alone in the room: no ready notification
	assert.Empty(t, a.byType(types.MsgRoomReady))
}

func TestSecondJoinerIsCallerAndRoomBecomesReady(t *testing.T) {
	reg := NewRegistry()
	a := &fakeMember{id: "peer-a"}
	b := &fakeMember{id: "peer-b"}

	_, _, err := reg.Join("room-1", a)
	require.NoError(t, err)
	size, role, err := reg.Join("room-1", b)
	require.NoError(t, err)

	assert.Equal(t, 2, size)
	assert.Equal(t, types.RoleCaller, role)

	ready := a.byType(types.MsgRoomReady)
	require.Len(t, ready, 1)
	assert.Equal(t, 2, ready[0].RoomSize)
	assert.Equal(t, "room-1", ready[0].Room)

	// the joiner is not notified by the registry; its handler tells it
	// after the join has been acknowledged
	assert.Empty(t, b.byType(types.MsgRoomReady))
}

func TestDuplicateJoinRejected(t *testing.T) {
	reg := NewRegistry()
	a := &fakeMember{id: "peer-a"}

	_, _, err := reg.Join("room-1", a)
	require.NoError(t, err)
	_, _, err = reg.Join("room-1", a)
	assert.Error(t, err)
	assert.Equal(t, 1, reg.RoomSize("room-1"))
}

func TestRelayReachesOnlyOtherMembers(t *testing.T) {
	reg := NewRegistry()
	a := &fakeMember{id: "peer-a"}
	b := &fakeMember{id: "peer-b"}
	reg.Join("room-1", a)
	reg.Join("room-1", b)

	err := reg.Relay("room-1", "peer-a", types.Message{Type: types.MsgOffer})
	require.NoError(t, err)

	assert.Empty(t, a.byType(types.MsgOffer))
	offers := b.byType(types.MsgOffer)
	require.Len(t, offers, 1)
	assert.Equal(t, "peer-a", offers[0].From)
}

func TestRelayToMissingRoomFails(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Relay("nope", "peer-a", types.Message{Type: types.MsgOffer}))
}

func TestLeaveNotifiesRemaining(t *testing.T) {
	reg := NewRegistry()
	a := &fakeMember{id: "peer-a"}
	b := &fakeMember{id: "peer-b"}
	reg.Join("room-1", a)
	reg.Join("room-1", b)

	reg.Leave("room-1", "peer-b")

	left := a.byType(types.MsgPeerLeft)
	require.Len(t, left, 1)
	assert.Equal(t, "peer-b", left[0].PeerID)
	assert.Equal(t, 1, reg.RoomSize("room-1"))
}

func TestEmptyRoomIsCollected(t *testing.T) {
	reg := NewRegistry()
	a := &fakeMember{id: "peer-a"}
	reg.Join("room-1", a)
	reg.Leave("room-1", "peer-a")

	assert.Equal(t, 0, reg.RoomSize("room-1"))

	// a fresh join starts the room over: first joiner is callee again
	b := &fakeMember{id: "peer-b"}
	size, role, err := reg.Join("room-1", b)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
	assert.Equal(t, types.RoleCallee, role)
}

func TestThirdJoinerIsCallerWithoutNewReady(t *testing.T) {
	reg := NewRegistry()
	a := &fakeMember{id: "peer-a"}
	b := &fakeMember{id: "peer-b"}
	c := &fakeMember{id: "peer-c"}
	reg.Join("room-1", a)
	reg.Join("room-1", b)

	size, role, err := reg.Join("room-1", c)
	require.NoError(t, err)
	assert.Equal(t, 3, size)
	assert.Equal(t, types.RoleCaller, role)
	// ready fires only at exactly two members
	assert.Len(t, a.byType(types.MsgRoomReady), 1)
	assert.Empty(t, c.byType(types.MsgRoomReady))
}
