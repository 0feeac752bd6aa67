package handlers

import (
	"encoding/json"
	"net/http"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/repository"
)

type MemoryHandler struct {
	memoryRepo  *repository.MemoryRepo
	patientRepo *repository.PatientRepo
}

func NewMemoryHandler(memoryRepo *repository.MemoryRepo, patientRepo *repository.PatientRepo) *MemoryHandler {
	return &MemoryHandler{memoryRepo: memoryRepo, patientRepo: patientRepo}
}

func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	patientID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.patientRepo.GetByID(r.Context(), patientID); err != nil {
		handleRepoError(w, r, err, "Patient not found")
		return
	}

	var req models.CreateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.PhotoURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "photo_url is required", r))
		return
	}

	memory := &models.MemoryCard{
		PatientID:        patientID,
		PhotoURL:         req.PhotoURL,
		DateTaken:        req.DateTaken,
		Location:         req.Location,
		Caption:          req.Caption,
		EmotionalContext: req.EmotionalContext,
		PeopleInvolved:   req.PeopleInvolved,
	}
	if err := h.memoryRepo.Create(r.Context(), memory); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create memory", r))
		return
	}
	writeJSON(w, http.StatusCreated, memory)
}

func (h *MemoryHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	memories, err := h.memoryRepo.ListByPatient(r.Context(), patientID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list memories", r))
		return
	}
	if memories == nil {
		memories = []*models.MemoryCard{}
	}
	writeJSON(w, http.StatusOK, memories)
}

func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "memoryID")
	if !ok {
		return
	}
	memory, err := h.memoryRepo.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, r, err, "Memory not found")
		return
	}
	writeJSON(w, http.StatusOK, memory)
}

func (h *MemoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "memoryID")
	if !ok {
		return
	}
	memory, err := h.memoryRepo.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, r, err, "Memory not found")
		return
	}

	var req models.UpdateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.PhotoURL != nil {
		if *req.PhotoURL == "" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "photo_url cannot be empty", r))
			return
		}
		memory.PhotoURL = *req.PhotoURL
	}
	if req.DateTaken != nil {
		memory.DateTaken = req.DateTaken
	}
	if req.Location != nil {
		memory.Location = req.Location
	}
	if req.Caption != nil {
		memory.Caption = req.Caption
	}
	if req.EmotionalContext != nil {
		memory.EmotionalContext = req.EmotionalContext
	}
	if req.PeopleInvolved != nil {
		memory.PeopleInvolved = req.PeopleInvolved
	}

	if err := h.memoryRepo.Update(r.Context(), memory); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update memory", r))
		return
	}
	writeJSON(w, http.StatusOK, memory)
}

func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "memoryID")
	if !ok {
		return
	}
	if err := h.memoryRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete memory", r))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
