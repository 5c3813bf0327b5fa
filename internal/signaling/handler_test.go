package signaling

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GestureLink/pkg/types"
)

func startSignalingServer(t *testing.T) string {
	t.Helper()
	handler := NewHandler(NewRegistry(), nil)
	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialAndJoin(t *testing.T, url, room string) (*websocket.Conn, types.Message) {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.WriteJSON(types.Message{Type: types.MsgJoin, Room: room}))
	ack := readMessage(t, conn)
	require.Equal(t, types.MsgJoined, ack.Type)
	return conn, ack
}

func readMessage(t *testing.T, conn *websocket.Conn) types.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg types.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestJoinAcknowledgedWithRoleAndSize(t *testing.T) {
	url := startSignalingServer(t)

	_, ack := dialAndJoin(t, url, "room-1")
	assert.Equal(t, 1, ack.RoomSize)
	assert.Equal(t, types.RoleCallee, ack.Role)
	assert.NotEmpty(t, ack.PeerID)
	assert.Equal(t, "room-1", ack.Room)
}

func TestSecondJoinTriggersRoomReadyOnBoth(t *testing.T) {
	url := startSignalingServer(t)

	connA, _ := dialAndJoin(t, url, "room-1")
	connB, ackB := dialAndJoin(t, url, "room-1")
	assert.Equal(t, 2, ackB.RoomSize)
	assert.Equal(t, types.RoleCaller, ackB.Role)

	readyA := readMessage(t, connA)
	assert.Equal(t, types.MsgRoomReady, readyA.Type)
	assert.Equal(t, 2, readyA.RoomSize)

	readyB := readMessage(t, connB)
	assert.Equal(t, types.MsgRoomReady, readyB.Type)
}

func TestOfferRelayedToOtherPeer(t *testing.T) {
	url := startSignalingServer(t)

	connA, ackA := dialAndJoin(t, url, "room-1")
	connB, _ := dialAndJoin(t, url, "room-1")
	readMessage(t, connA) // room_ready
	readMessage(t, connB) // room_ready

	require.NoError(t, connB.WriteJSON(types.Message{
		Type:    types.MsgOffer,
		Room:    "room-1",
		Message: "sdp-goes-here",
	}))

	relayed := readMessage(t, connA)
	assert.Equal(t, types.MsgOffer, relayed.Type)
	assert.NotEmpty(t, relayed.From)
	assert.NotEqual(t, ackA.PeerID, relayed.From)
}

func TestDisconnectBroadcastsPeerLeft(t *testing.T) {
	url := startSignalingServer(t)

	connA, _ := dialAndJoin(t, url, "room-1")
	connB, ackB := dialAndJoin(t, url, "room-1")
	readMessage(t, connA) // room_ready
	readMessage(t, connB) // room_ready

	connB.Close()

	left := readMessage(t, connA)
	assert.Equal(t, types.MsgPeerLeft, left.Type)
	assert.Equal(t, ackB.PeerID, left.PeerID)
}

func TestRelayBeforeJoinReturnsError(t *testing.T) {
	url := startSignalingServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.WriteJSON(types.Message{Type: types.MsgOffer, Room: "room-1"}))
	resp := readMessage(t, conn)
	assert.Equal(t, types.MsgError, resp.Type)
}
