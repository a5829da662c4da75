package converter

import (
	"docscript/internal/delivery/dto"
	"docscript/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:         patient.ID,
		Name:       patient.Name,
		Age:        patient.Age,
		Sex:        patient.Sex,
		Mobile:     patient.Mobile,
		Date:       patient.Date,
		Complaints: patient.Complaints,
		Diseases:   DiseasesToResponse(patient.Diseases),
		Advice:     patient.Advice,
		Treatment:  patient.Treatment,
		ClinicID:   patient.ClinicID,
		CreatedAt:  patient.CreatedAt,
		UpdatedAt:  patient.UpdatedAt,
	}
}

// PatientsToResponse keeps the input order and never returns nil.
func PatientsToResponse(patients []entity.Patient) []*dto.PatientResponse {
	responses := make([]*dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, PatientToResponse(&patients[i]))
	}
	return responses
}

func DiseasesToResponse(d entity.Diseases) dto.DiseasesRequest {
	return dto.DiseasesRequest{
		Hypertension:     d.Hypertension,
		DiabetesMellitus: d.DiabetesMellitus,
		HepatitisB:       d.HepatitisB,
		HepatitisC:       d.HepatitisC,
	}
}

func DiseasesToEntity(d dto.DiseasesRequest) entity.Diseases {
	return entity.Diseases{
		Hypertension:     d.Hypertension,
		DiabetesMellitus: d.DiabetesMellitus,
		HepatitisB:       d.HepatitisB,
		HepatitisC:       d.HepatitisC,
	}
}

// RequestToPatient builds a new record; omitted diseases default to all false.
func RequestToPatient(req *dto.PatientRequest) *entity.Patient {
	patient := &entity.Patient{
		Name:       req.Name,
		Age:        req.Age,
		Sex:        req.Sex,
		Mobile:     req.Mobile,
		Date:       req.Date,
		Complaints: req.Complaints,
		Advice:     req.Advice,
		Treatment:  req.Treatment,
	}
	if req.Diseases != nil {
		patient.Diseases = DiseasesToEntity(*req.Diseases)
	}
	return patient
}

// ApplyPatientRequest replaces every field of an existing record, keeping
// the stored diseases when the request omits them.
func ApplyPatientRequest(patient *entity.Patient, req *dto.PatientRequest) {
	patient.Name = req.Name
	patient.Age = req.Age
	patient.Sex = req.Sex
	patient.Mobile = req.Mobile
	patient.Date = req.Date
	patient.Complaints = req.Complaints
	patient.Advice = req.Advice
	patient.Treatment = req.Treatment
	if req.Diseases != nil {
		patient.Diseases = DiseasesToEntity(*req.Diseases)
	}
}
