package handler

import (
	"encoding/json"
	"net/http"

	"docscript/internal/delivery/dto"
	"docscript/internal/usecase"
	"docscript/pkg/response"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase) *ClinicHandler {
	return &ClinicHandler{clinicUsecase: clinicUsecase}
}

func (h *ClinicHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	clinic, err := h.clinicUsecase.GetConfig(r.Context())
	if err != nil {
		h.writeClinicError(w, err, "Failed to load config")
		return
	}

	response.Success(w, http.StatusOK, "", clinic)
}

// UpdateConfig merges whatever subset of fields the body carries.
func (h *ClinicHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	clinic, err := h.clinicUsecase.UpdateConfig(r.Context(), &req)
	if err != nil {
		h.writeClinicError(w, err, "Failed to update config")
		return
	}

	response.Success(w, http.StatusOK, "Config updated successfully", clinic)
}

func (h *ClinicHandler) writeClinicError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrClinicNotFound:
		response.NotFound(w, "Clinic not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
