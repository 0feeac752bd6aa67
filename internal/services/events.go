package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reminisce-backend/internal/models"
)

// PatientChannel is the Redis pub/sub channel carrying live updates for
// one patient's caregivers.
func PatientChannel(patientID uuid.UUID) string {
	return "patient_updates:" + patientID.String()
}

// PublishPatientUpdate fans an event out to every websocket client watching
// the patient. Publish failures are logged, not returned; a missed live
// update never fails the operation that caused it.
func PublishPatientUpdate(ctx context.Context, rdb *redis.Client, patientID uuid.UUID, eventType string, payload interface{}) {
	msg := models.WSMessage{
		Type:      eventType,
		PatientID: patientID.String(),
		Payload:   payload,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal patient update: %v", err)
		return
	}
	if err := rdb.Publish(ctx, PatientChannel(patientID), data).Err(); err != nil {
		log.Printf("publish patient update: %v", err)
	}
}
