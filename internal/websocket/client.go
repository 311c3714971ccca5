package websocket

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type wsClient struct {
	Conn     *websocket.Conn
	Outbound chan *ServerFrame
	done     chan struct{} // Signal for coordinating goroutine shutdown
	mu       sync.Mutex    // Mutex for connection access
	isClosed bool          // Flag to track connection state
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		Conn:     conn,
		Outbound: make(chan *ServerFrame, 16),
		done:     make(chan struct{}),
	}
}

// Send enqueues a frame for the write pump. It fails once the connection is
// shutting down instead of blocking forever.
func (cl *wsClient) Send(frame *ServerFrame) error {
	select {
	case cl.Outbound <- frame:
		return nil
	case <-cl.done:
		return fmt.Errorf("connection closed")
	}
}

func (cl *wsClient) keepAlive() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.Conn.WriteMessage(websocket.PingMessage, nil)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("Ping error: %v", err)
				return
			}
		}
	}
}

func (cl *wsClient) writePump() {
	defer func() {
		cl.mu.Lock()
		cl.isClosed = true
		cl.Conn.Close()
		cl.mu.Unlock()
	}()

	for {
		select {
		case <-cl.done:
			return
		case frame, ok := <-cl.Outbound:
			if !ok {
				return
			}

			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.Conn.WriteJSON(frame)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("Error sending frame: %v", err)
				return
			}
		}
	}
}
