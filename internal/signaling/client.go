package signaling

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"GestureLink/pkg/types"
)

// Client wraps one signaling websocket. Writes are serialized because
// the registry may relay into a connection while its own read loop is
// acknowledging.
type Client struct {
	conn *websocket.Conn
	id   string
	mu   sync.Mutex
}

func NewClient(conn *websocket.Conn, id string) *Client {
	return &Client{conn: conn, id: id}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Send(msg types.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg.Timestamp = time.Now().UnixMilli()
	return c.conn.WriteJSON(msg)
}

func (c *Client) SendError(errorMsg string) {
	c.Send(types.Message{
		Type:  types.MsgError,
		Error: errorMsg,
	})
}

func (c *Client) Close() error {
	return c.conn.Close()
}
