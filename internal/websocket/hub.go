package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans live patient updates out to caregiver clients. Connections are
// keyed by patient: a caregiver watching a patient subscribes to that
// patient's Redis channel, shared across all of their open tabs.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID][]*websocket.Conn
	redisClient *redis.Client
	cancelFuncs map[uuid.UUID]context.CancelFunc
}

func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID][]*websocket.Conn),
		redisClient: redisClient,
		cancelFuncs: make(map[uuid.UUID]context.CancelFunc),
	}
}

// HandleWebSocket upgrades the request and watches the patient named in
// the patient_id query param.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(r.URL.Query().Get("patient_id"))
	if err != nil {
		http.Error(w, "patient_id query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.registerConnection(patientID, conn)

	// Acknowledge locally so the client knows the stream is live before
	// the first Redis-delivered event arrives.
	h.Send(patientID, models.WSMessage{Type: models.EventConnected, PatientID: patientID.String()})

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(patientID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(patientID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[patientID] = append(h.connections[patientID], conn)

	// First watcher for this patient starts the pub/sub subscription
	if len(h.connections[patientID]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[patientID] = cancel
		go h.subscribeToPubSub(ctx, patientID)
	}

	log.Printf("WebSocket connected: patient %s (total: %d)", patientID, len(h.connections[patientID]))
}

func (h *Hub) unregisterConnection(patientID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	conns := h.connections[patientID]
	for i, c := range conns {
		if c == conn {
			h.connections[patientID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	// Last watcher gone, cancel pub/sub
	if len(h.connections[patientID]) == 0 {
		delete(h.connections, patientID)
		if cancel, ok := h.cancelFuncs[patientID]; ok {
			cancel()
			delete(h.cancelFuncs, patientID)
		}
	}

	log.Printf("WebSocket disconnected: patient %s", patientID)
}

func (h *Hub) subscribeToPubSub(ctx context.Context, patientID uuid.UUID) {
	pubsub := h.redisClient.Subscribe(ctx, services.PatientChannel(patientID))
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(patientID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(patientID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[patientID] {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}

// Send pushes a message to every watcher of the patient on this instance,
// bypassing Redis.
func (h *Hub) Send(patientID uuid.UUID, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.broadcast(patientID, data)
}
