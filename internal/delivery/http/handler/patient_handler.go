package handler

import (
	"encoding/json"
	"net/http"

	"docscript/internal/delivery/dto"
	"docscript/internal/usecase"
	"docscript/pkg/response"
	"docscript/pkg/validator"

	"github.com/gorilla/mux"
)

const patientFieldsRequired = "Patient Name, Mobile, and Date are mandatory."

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// decodePatient writes the 400 response itself and reports whether the request is usable.
func (h *PatientHandler) decodePatient(w http.ResponseWriter, r *http.Request) (*dto.PatientRequest, bool) {
	var req dto.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return nil, false
	}

	if err := h.validator.Validate(&req); err != nil {
		details := h.validator.FormatValidationErrors(err)
		response.ValidationError(w, requiredMessage(details, patientFieldsRequired), details)
		return nil, false
	}

	return &req, true
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.SuccessWithCount(w, http.StatusOK, patients, len(patients))
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), id)
	if err != nil {
		h.writePatientError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "", patient)
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePatient(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), req)
	if err != nil {
		response.InternalServerError(w, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	req, ok := h.decodePatient(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), id, req)
	if err != nil {
		h.writePatientError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	patient, err := h.patientUsecase.DeletePatient(r.Context(), id)
	if err != nil {
		h.writePatientError(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", patient)
}

func (h *PatientHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]

	patients, err := h.patientUsecase.SearchPatients(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to search patients")
		return
	}

	response.SuccessWithCount(w, http.StatusOK, patients, len(patients))
}

func (h *PatientHandler) ExportPatients(w http.ResponseWriter, r *http.Request) {
	data, err := h.patientUsecase.ExportPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to export patients")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=patients.xlsx")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *PatientHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.patientUsecase.GetStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load stats")
		return
	}

	response.Success(w, http.StatusOK, "", stats)
}

func (h *PatientHandler) writePatientError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
