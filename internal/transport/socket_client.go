package transport

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/brineforge/arena-server/internal/session"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second
	pongWait  = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SignedInbound pairs a decoded inbound message with the client it came
// from, the unit the engine's command loop consumes.
type SignedInbound struct {
	Client  *SocketClient
	Message interface{}
}

// SocketClient is the middleman between a websocket connection and the
// engine's Hub, ported from the teacher's SocketClient.
type SocketClient struct {
	session.ClientData
	conn      *websocket.Conn
	send      chan interface{}
	inbound   chan<- SignedInbound
	once      sync.Once
	closeOnce sync.Once
	onClose   func(*SocketClient)
}

// NewSocketClient wraps conn for use with the engine, routing decoded
// inbound messages onto inbound and invoking onClose when the connection is
// torn down so the engine can remove it from its ClientList.
func NewSocketClient(conn *websocket.Conn, inbound chan<- SignedInbound, onClose func(*SocketClient)) *SocketClient {
	return &SocketClient{
		conn:    conn,
		send:    make(chan interface{}, 16),
		inbound: inbound,
		onClose: onClose,
	}
}

func (c *SocketClient) Data() *session.ClientData {
	return &c.ClientData
}

// Close is idempotent: the hub may tear a session down from both the
// kill-self path and the unregister path in the same dispatch.
func (c *SocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *SocketClient) Destroy() {
	c.once.Do(func() {
		if c.onClose != nil {
			c.onClose(c)
		}
		_ = c.conn.Close()
	})
}

func (c *SocketClient) Send(message interface{}) {
	select {
	case c.send <- message:
	default:
		c.Destroy()
	}
}

func (c *SocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

func (c *SocketClient) readPump() {
	defer c.Destroy()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("close error:", err)
			}
			return
		}

		decoded, err := DecodeInbound(raw)
		if err != nil {
			log.Println("decode error:", err)
			continue
		}
		c.inbound <- SignedInbound{Client: c, Message: decoded}
	}
}

func (c *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)
	defer func() {
		pingTicker.Stop()
		c.Destroy()
	}()

	for {
		select {
		case out, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			encoded, err := EncodeOutbound(out)
			if err != nil {
				log.Println("encoding error:", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, encoded); err != nil {
				return
			}
		case <-pingTicker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
