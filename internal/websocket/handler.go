package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"portfolio-backend/internal/assistant"
	chatlogservice "portfolio-backend/internal/service/chatlog"
	"portfolio-backend/internal/session"
	"portfolio-backend/utils"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	assistantService *assistant.Service
	logService       *chatlogservice.Service
}

func NewHandler(assistantService *assistant.Service, logService *chatlogservice.Service) *Handler {
	return &Handler{
		assistantService: assistantService,
		logService:       logService,
	}
}

// turnLogger feeds completed turns to the chat log service with the request
// metadata captured at upgrade time.
type turnLogger struct {
	service   *chatlogservice.Service
	ipAddress string
	userAgent string
}

func (l *turnLogger) LogTurn(ctx context.Context, entry session.Entry) error {
	_, err := l.service.Write(ctx, chatlogservice.WriteParams{
		SessionID:      entry.SessionID,
		ConversationID: entry.ConversationID,
		UserMessage:    entry.UserMessage,
		AIResponse:     entry.AIResponse,
		Referrer:       entry.Referrer,
		IPAddress:      l.ipAddress,
		UserAgent:      l.userAgent,
	})
	return err
}

// Chat upgrades the request and runs one chat session for the lifetime of the
// connection.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written its handshake error response.
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	cl := newWSClient(conn)
	logger := &turnLogger{
		service:   h.logService,
		ipAddress: utils.RealClientIP(r),
		userAgent: utils.UserAgent(r),
	}

	c := &chatConn{
		client:    cl,
		assistant: h.assistantService,
		logger:    logger,
		referrer:  r.Header.Get("Origin"),
	}

	incConnections()
	go cl.keepAlive()
	go cl.writePump()
	c.readLoop()
	decConnections()
}

// chatConn owns one connection's session and at most one in-flight stream.
type chatConn struct {
	client    *wsClient
	assistant *assistant.Service
	logger    *turnLogger
	referrer  string

	mu           sync.Mutex
	session      *session.Session
	streamCancel context.CancelFunc
}

// ensureSession creates the session on the first frame. A hello frame can seed
// the analytics session id; any other frame gets the minted fallback.
func (c *chatConn) ensureSession(sessionID string) *session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		c.session = session.New(c.logger, session.Options{
			SessionID: sessionID,
			Referrer:  c.referrer,
		})
	}
	return c.session
}

func (c *chatConn) setCancel(cancel context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.streamCancel = cancel
}

func (c *chatConn) cancelStream() {
	c.mu.Lock()
	cancel := c.streamCancel
	c.streamCancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *chatConn) readLoop() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in readLoop: %v", r)
		}
		c.cancelStream()
		close(c.client.done)
	}()

	c.client.Conn.SetReadLimit(512 * 1024)

	for {
		_, raw, err := c.client.Conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure ||
					closeErr.Code == websocket.CloseGoingAway ||
					closeErr.Code == websocket.CloseNoStatusReceived {
					break
				}
			}
			log.Printf("Error reading frame: %v", err)
			break
		}

		var frame ClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.client.Send(&ServerFrame{Type: FrameError, Message: "Invalid frame"})
			continue
		}

		switch frame.Type {
		case FrameHello:
			c.ensureSession(frame.SessionID)
		case FrameMessage:
			c.handleMessage(frame.Text)
		case FrameStop:
			c.cancelStream()
		case FrameClear:
			c.cancelStream()
			conversationID := c.ensureSession("").Clear()
			c.client.Send(&ServerFrame{Type: FrameCleared, ConversationID: conversationID})
		default:
			c.client.Send(&ServerFrame{Type: FrameError, Message: "Unknown frame type"})
		}
	}
}

func (c *chatConn) handleMessage(text string) {
	if strings.TrimSpace(text) == "" {
		c.client.Send(&ServerFrame{Type: FrameError, Message: "Message text is required"})
		return
	}

	sess := c.ensureSession("")
	if !sess.Submit(text) {
		c.client.Send(&ServerFrame{Type: FrameError, Message: "A response is already in progress"})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.setCancel(cancel)
	incStreams()

	go func() {
		defer decStreams()
		defer c.setCancel(nil)
		c.stream(ctx, sess)
	}()
}

func (c *chatConn) stream(ctx context.Context, sess *session.Session) {
	err := c.assistant.Stream(ctx, sess.Turns(), func(chunk string) error {
		sess.Chunk(chunk)
		if err := c.client.Send(&ServerFrame{Type: FrameChunk, Text: chunk}); err != nil {
			return err
		}
		addChunksDelivered(1)
		return nil
	})

	if err != nil {
		// A stopped or abandoned stream is never logged as a completed turn.
		sess.Cancel()
		if ctx.Err() == nil {
			c.client.Send(&ServerFrame{Type: FrameError, Message: err.Error()})
		}
		return
	}

	sess.Complete()
	c.client.Send(&ServerFrame{Type: FrameDone, ConversationID: sess.ConversationID()})
}
