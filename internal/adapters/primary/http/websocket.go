package http

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// Socket event types
const (
	EventStatus = "status"
	EventResult = "result"
	EventError  = "error"
)

// GenerateMessage is the single request a client sends on /ws/generate
type GenerateMessage struct {
	FileName string                    `json:"fileName"`
	Data     string                    `json:"data"` // base64, optionally a data URL
	Options  entities.TransformOptions `json:"options"`
	Demo     bool                      `json:"demo"`
}

// SocketEvent is streamed to the client while a deck is generated
type SocketEvent struct {
	Type    string            `json:"type"`
	Message string            `json:"message,omitempty"`
	Result  *GenerateResponse `json:"result,omitempty"`
	Time    time.Time         `json:"time"`
}

// createUpgrader creates a WebSocket upgrader with proper origin validation
func (s *Server) createUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.isValidOrigin,
	}
}

// socketClient serializes writes to one connection
type socketClient struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	logger *slog.Logger
}

func (c *socketClient) send(event SocketEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	event.Time = time.Now()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(event); err != nil {
		c.logger.Debug("socket write failed", slog.String("type", event.Type), slog.String("error", err.Error()))
	}
}

func (c *socketClient) sendError(message string) {
	c.send(SocketEvent{Type: EventError, Message: message})
}

func (c *socketClient) closeNormally() {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readUntilClosed keeps pong handling alive and cancels generation when the
// peer goes away
func (c *socketClient) readUntilClosed(cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("socket closed by peer", slog.String("error", err.Error()))
			}
			return
		}
	}
}

// pingLoop sends pings until done is closed
func (c *socketClient) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// handleGenerateSocket runs one generation over a WebSocket, streaming
// status events followed by a result or error event
func (s *Server) handleGenerateSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.createUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	id := uuid.NewString()
	logger := s.logger.With(slog.String("session", id))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s.sessions.Register(id, cancel, conn)
	s.monitor.RecordSocketSession()
	defer func() {
		s.sessions.Unregister(id)
		_ = conn.Close()
	}()

	client := &socketClient{conn: conn, logger: logger}

	// base64 grows uploads by a third
	conn.SetReadLimit(s.config.GetMaxUploadBytes()*4/3 + 64<<10)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))

	var msg GenerateMessage
	if err := conn.ReadJSON(&msg); err != nil {
		logger.Warn("invalid generation request", slog.String("error", err.Error()))
		client.sendError("Invalid request")
		client.closeNormally()
		return
	}

	data, err := decodeUpload(msg.Data)
	if err != nil {
		logger.Warn("invalid upload encoding", slog.String("error", err.Error()))
		client.sendError("Invalid file data")
		client.closeNormally()
		return
	}

	done := make(chan struct{})
	defer close(done)
	go client.readUntilClosed(cancel)
	go client.pingLoop(done)

	start := time.Now()
	result, err := s.deck.Generate(ctx, ports.GenerateRequest{
		FileName:  msg.FileName,
		Data:      data,
		Options:   msg.Options,
		ForceDemo: msg.Demo,
	}, func(message string) {
		client.send(SocketEvent{Type: EventStatus, Message: message})
	})
	s.recordGeneration(start, result, err)
	if err != nil {
		status := statusForError(err)
		logger.Error("socket generation failed", slog.Int("status", status), slog.String("error", err.Error()))
		client.sendError(clientMessage(err, status))
		client.closeNormally()
		return
	}

	response := s.generateResponse(result, msg.FileName)
	client.send(SocketEvent{Type: EventResult, Result: &response})
	client.closeNormally()
}

// decodeUpload decodes base64 file data, accepting a data URL prefix
func decodeUpload(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, "data:") {
		_, payload, ok := strings.Cut(data, ",")
		if !ok {
			return nil, errors.New("malformed data URL")
		}
		data = payload
	}

	if data == "" {
		return nil, entities.ErrEmptyDocument
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	return decoded, nil
}

// isValidOrigin accepts same-origin requests, configured CORS origins and
// loopback pages when the server itself is bound to loopback
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil || originURL.Host == "" {
		s.logger.Warn("WebSocket connection rejected: invalid origin", slog.String("origin", origin))
		return false
	}

	for _, allowed := range s.config.GetCORSOrigins() {
		if allowed == "*" || strings.EqualFold(allowed, originURL.Scheme+"://"+originURL.Host) {
			return true
		}

		// *.example.com style entries
		if domain, ok := strings.CutPrefix(allowed, "*."); ok && strings.HasSuffix(originURL.Hostname(), "."+domain) {
			return true
		}
	}

	if isLoopbackHost(s.config.Host) && isLoopbackHost(originURL.Hostname()) {
		return true
	}

	s.logger.Warn("WebSocket connection rejected: origin not allowed",
		slog.String("origin", origin),
		slog.Any("allowed_origins", s.config.GetCORSOrigins()))
	return false
}

func isLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
