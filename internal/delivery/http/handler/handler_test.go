package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docscript/internal/delivery/dto"
	"docscript/internal/usecase"
	"docscript/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPatientUsecase struct {
	usecase.PatientUsecase
	err error
}

func (f *failingPatientUsecase) ListPatients(context.Context) ([]*dto.PatientResponse, error) {
	return nil, f.err
}

func (f *failingPatientUsecase) GetPatient(context.Context, uuid.UUID) (*dto.PatientResponse, error) {
	return nil, f.err
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPatientHandler_StoreFailureIsInternal(t *testing.T) {
	h := NewPatientHandler(&failingPatientUsecase{err: errors.New("connection refused")}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.ListPatients(rec, httptest.NewRequest(http.MethodGet, "/api/patients", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to list patients", body["error"])
}

func TestPatientHandler_NotFoundMapping(t *testing.T) {
	h := NewPatientHandler(&failingPatientUsecase{err: usecase.ErrPatientNotFound}, validator.NewValidator())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/patients/x", nil), map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.GetPatient(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/patients/x", nil), map[string]string{"id": "x"})
	rec = httptest.NewRecorder()
	h.GetPatient(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Patient not found", decode(t, rec)["error"])
}

func TestPatientHandler_CreateValidation(t *testing.T) {
	h := NewPatientHandler(&failingPatientUsecase{}, validator.NewValidator())

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing mobile", `{"name":"Ali","date":"2024-01-01"}`, "Patient Name, Mobile, and Date are mandatory."},
		{"bad sex", `{"name":"Ali","mobile":"1","date":"2024-01-01","sex":"X"}`, "Validation failed"},
		{"malformed", `{"name":`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.CreatePatient(rec, httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec)["error"])
		})
	}
}

func TestRequiredMessage(t *testing.T) {
	assert.Equal(t, "m", requiredMessage(map[string]string{"name": "name is required"}, "m"))
	assert.Empty(t, requiredMessage(map[string]string{"email": "email must be a valid email address"}, "m"))
}
