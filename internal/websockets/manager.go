package websockets

import (
	"collector/internal/logger"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// IngestEvent is pushed to connected clients after every successful ingest.
// The feed is telemetry only: fire-and-forget, never consulted by the
// ingestion path.
type IngestEvent struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ProjectName  string    `json:"project"`
	SubmissionID string    `json:"submissionId,omitempty"`
	Outcome      string    `json:"outcome"`
	Timestamp    time.Time `json:"timestamp"`
}

type Manager struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	log     logger.Logger
}

func New() *Manager {
	return &Manager{
		clients: make(map[*websocket.Conn]bool),
		log:     logger.New("websockets"),
	}
}

// HandleWebSocket owns the connection for its lifetime. Inbound messages are
// drained and discarded; the read loop exists only to detect disconnects.
func (m *Manager) HandleWebSocket(conn *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	m.mu.Lock()
	m.clients[conn] = true
	clientCount := len(m.clients)
	m.mu.Unlock()

	log.Info("client connected", "clients", clientCount)

	defer func() {
		m.mu.Lock()
		delete(m.clients, conn)
		m.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Info("client disconnected")
			return
		}
	}
}

// NotifyIngest broadcasts the outcome to every connected client. Clients that
// fail to accept the write are dropped.
func (m *Manager) NotifyIngest(projectName string, outcome string, submissionID string) {
	log := m.log.Function("NotifyIngest")

	event := IngestEvent{
		ID:           uuid.New().String(),
		Type:         "ingest",
		ProjectName:  projectName,
		SubmissionID: submissionID,
		Outcome:      outcome,
		Timestamp:    time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Er("failed to marshal ingest event", err, "event", event)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn("dropping client after failed write", "error", err)
			delete(m.clients, conn)
			_ = conn.Close()
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
