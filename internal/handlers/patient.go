package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/repository"
)

type PatientHandler struct {
	patientRepo *repository.PatientRepo
}

func NewPatientHandler(patientRepo *repository.PatientRepo) *PatientHandler {
	return &PatientHandler{patientRepo: patientRepo}
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.PreferredName) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "preferred_name is required", r))
		return
	}

	patient := &models.PatientProfile{
		PreferredName:       strings.TrimSpace(req.PreferredName),
		FamilyRelationships: req.FamilyRelationships,
		LifeEvents:          req.LifeEvents,
		PersonalityTraits:   req.PersonalityTraits,
		MedicalNotes:        req.MedicalNotes,
	}
	if err := h.patientRepo.Create(r.Context(), patient); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create patient", r))
		return
	}
	writeJSON(w, http.StatusCreated, patient)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientRepo.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list patients", r))
		return
	}
	if patients == nil {
		patients = []*models.PatientProfile{}
	}
	writeJSON(w, http.StatusOK, patients)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	patient, err := h.patientRepo.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, r, err, "Patient not found")
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	patient, err := h.patientRepo.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, r, err, "Patient not found")
		return
	}

	var req models.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.PreferredName != nil {
		if strings.TrimSpace(*req.PreferredName) == "" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "preferred_name cannot be empty", r))
			return
		}
		patient.PreferredName = strings.TrimSpace(*req.PreferredName)
	}
	if req.FamilyRelationships != nil {
		patient.FamilyRelationships = req.FamilyRelationships
	}
	if req.LifeEvents != nil {
		patient.LifeEvents = req.LifeEvents
	}
	if req.PersonalityTraits != nil {
		patient.PersonalityTraits = req.PersonalityTraits
	}
	if req.MedicalNotes != nil {
		patient.MedicalNotes = req.MedicalNotes
	}

	if err := h.patientRepo.Update(r.Context(), patient); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update patient", r))
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.patientRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete patient", r))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PatientHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	stats, err := h.patientRepo.Stats(r.Context(), id)
	if err != nil {
		handleRepoError(w, r, err, "Patient not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
