package ws

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mcoot/truthdare-go/internal/model"
)

// Manager tracks websocket subscribers per room
type Manager struct {
	upgrader websocket.Upgrader
	rooms    map[model.RoomCode]map[*Conn]struct{}
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewManager creates a new Manager
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		rooms:  make(map[model.RoomCode]map[*Conn]struct{}),
		logger: logger.With(slog.String("component", "ws")),
	}
}

// Serve upgrades the request and subscribes it to the room until the peer
// disconnects or the room closes. initial messages are queued first.
// alive, if set, is checked once the subscriber is added; a room torn
// down before then gets a close frame straight away.
func (m *Manager) Serve(w http.ResponseWriter, r *http.Request, code model.RoomCode, alive func() bool, initial ...[]byte) {
	socket, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response
		m.logger.Warn("ws upgrade failed",
			slog.String("room_code", string(code)),
			slog.Any("error", err))
		return
	}

	conn := newConn(socket, uuid.NewString())
	for _, msg := range initial {
		conn.send <- msg
	}
	m.add(code, conn)
	if alive != nil && !alive() {
		m.remove(code, conn)
	}

	go conn.writePump()
	conn.readPump()
	m.remove(code, conn)
}

// Broadcast queues message for every subscriber of the room
func (m *Manager) Broadcast(code model.RoomCode, message []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dropped := 0
	for conn := range m.rooms[code] {
		select {
		case conn.send <- message:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		m.logger.Warn("ws messages dropped - client buffer full",
			slog.String("room_code", string(code)),
			slog.Int("dropped", dropped))
	}
}

// CloseRoom disconnects every subscriber of the room
func (m *Manager) CloseRoom(code model.RoomCode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.rooms[code]
	if !ok {
		return
	}
	for conn := range conns {
		close(conn.send)
	}
	delete(m.rooms, code)
	m.logger.Info("ws room closed",
		slog.String("room_code", string(code)),
		slog.Int("disconnected_clients", len(conns)))
}

// CloseAll disconnects every subscriber
func (m *Manager) CloseAll() {
	m.mu.Lock()
	codes := make([]model.RoomCode, 0, len(m.rooms))
	for code := range m.rooms {
		codes = append(codes, code)
	}
	m.mu.Unlock()

	for _, code := range codes {
		m.CloseRoom(code)
	}
}

// ConnCount returns the number of subscribers of the room
func (m *Manager) ConnCount(code model.RoomCode) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[code])
}

func (m *Manager) add(code model.RoomCode, conn *Conn) {
	m.mu.Lock()
	conns, ok := m.rooms[code]
	if !ok {
		conns = make(map[*Conn]struct{})
		m.rooms[code] = conns
	}
	conns[conn] = struct{}{}
	total := len(conns)
	m.mu.Unlock()

	m.logger.Info("ws client connected",
		slog.String("room_code", string(code)),
		slog.String("client_id", conn.id),
		slog.Int("total_clients", total))
}

func (m *Manager) remove(code model.RoomCode, conn *Conn) {
	m.mu.Lock()
	conns, ok := m.rooms[code]
	if ok {
		if _, member := conns[conn]; member {
			delete(conns, conn)
			close(conn.send)
			if len(conns) == 0 {
				delete(m.rooms, code)
			}
		}
	}
	m.mu.Unlock()

	m.logger.Info("ws client disconnected",
		slog.String("room_code", string(code)),
		slog.String("client_id", conn.id),
		slog.Duration("connection_duration", time.Since(conn.connectedAt)))
}
