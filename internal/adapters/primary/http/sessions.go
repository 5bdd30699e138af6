package http

import (
	"context"
	"io"
	"sync"
)

// session is one in-flight WebSocket generation
type session struct {
	cancel context.CancelFunc
	conn   io.Closer
}

// SessionManager tracks open generation sockets so shutdown can end them
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionManager creates an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
	}
}

// Register adds a session
func (m *SessionManager) Register(id string, cancel context.CancelFunc, conn io.Closer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &session{cancel: cancel, conn: conn}
}

// Unregister removes a session without closing it
func (m *SessionManager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// CloseAll cancels and closes every session
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		s.cancel()
		_ = s.conn.Close()
		delete(m.sessions, id)
	}
}

// Count returns the number of open sessions
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
