package preview

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// handleWebSocket registers a client and sends it the current markup. Later
// messages come from broadcast after each render pass.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	id := uuid.NewString()
	logger := s.logger.With("client", id, "remote", r.RemoteAddr)
	logger.Info("preview client connected")

	// Registration and the first message run on the loop so they are
	// ordered with broadcasts.
	err = s.do(r.Context(), func() {
		s.mu.Lock()
		s.clients[conn] = id
		s.mu.Unlock()
		s.send(conn, Message{Type: MessageRender, Pass: s.renderer.Passes(), Markup: s.body.InnerHTML()})
	})
	if err != nil {
		conn.Close()
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
	logger.Info("preview client disconnected")
}

// broadcast sends msg to every client. It runs on the loop, which makes it
// the only writer.
func (s *Server) broadcast(msg Message) {
	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		s.send(client, msg)
	}
}

func (s *Server) send(conn *websocket.Conn, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Debug("dropping preview client", "client", s.clientID(conn), "error", err)
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}
}

func (s *Server) clientID(conn *websocket.Conn) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[conn]
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close closes all client connections.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}
