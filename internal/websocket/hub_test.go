package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"reminisce-backend/internal/models"
)

// unreachableRedis gives the hub a real client whose subscription simply
// never delivers; local hub behavior is what these tests exercise.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func TestHandleWebSocketRequiresPatientID(t *testing.T) {
	h := NewHub(unreachableRedis())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	rr := httptest.NewRecorder()
	h.HandleWebSocket(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestHandleWebSocketSendsConnectedAck(t *testing.T) {
	h := NewHub(unreachableRedis())
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	patientID := uuid.New()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?patient_id=" + patientID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg models.WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read ack: %v", err)
	}
	if msg.Type != models.EventConnected {
		t.Fatalf("type = %q, want %q", msg.Type, models.EventConnected)
	}
	if msg.PatientID != patientID.String() {
		t.Fatalf("patient_id = %q", msg.PatientID)
	}
}
