package usecase

import (
	"context"
	"errors"
	"time"

	"docscript/internal/converter"
	"docscript/internal/delivery/dto"
	"docscript/internal/domain/entity"
	"docscript/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrPatientNotFound = errors.New("patient not found")

const (
	recentPatientsLimit = 5
	clinicStatusOnline  = "Online"
)

type PatientUsecase interface {
	ListPatients(ctx context.Context) ([]*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	CreatePatient(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.PatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	SearchPatients(ctx context.Context, query string) ([]*dto.PatientResponse, error)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	ExportPatients(ctx context.Context) ([]byte, error)
}

// patientUsecase scopes every operation to the clinic it was built with.
type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	clinicID    uuid.UUID
	now         func() time.Time
}

func NewPatientUsecase(log *logrus.Logger, patientRepo repository.PatientRepository, clinicID uuid.UUID) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
		clinicID:    clinicID,
		now:         time.Now,
	}
}

func (u *patientUsecase) ListPatients(ctx context.Context) ([]*dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.clinicID)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponse(patients), nil
}

func (u *patientUsecase) findPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	patient := converter.RequestToPatient(req)
	patient.ClinicID = u.clinicID

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	converter.ApplyPatientRequest(patient, req)
	if err := u.patientRepo.Update(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.patientRepo.Delete(ctx, u.clinicID, id); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) SearchPatients(ctx context.Context, query string) ([]*dto.PatientResponse, error) {
	patients, err := u.patientRepo.Search(ctx, u.clinicID, query)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponse(patients), nil
}

// GetStats counts visits whose date equals today's UTC date.
func (u *patientUsecase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	today := u.now().UTC().Format(entity.DateLayout)

	total, err := u.patientRepo.Count(ctx, u.clinicID)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	visitsToday, err := u.patientRepo.CountByDate(ctx, u.clinicID, today)
	if err != nil {
		u.log.Warnf("Failed to count today's visits: %+v", err)
		return nil, err
	}

	recent, err := u.patientRepo.FindRecent(ctx, u.clinicID, recentPatientsLimit)
	if err != nil {
		u.log.Warnf("Failed to find recent patients: %+v", err)
		return nil, err
	}

	return &dto.StatsResponse{
		TotalPatients:  total,
		VisitsToday:    visitsToday,
		ClinicStatus:   clinicStatusOnline,
		RecentPatients: converter.PatientsToResponse(recent),
	}, nil
}

func (u *patientUsecase) ExportPatients(ctx context.Context) ([]byte, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.clinicID)
	if err != nil {
		u.log.Warnf("Failed to list patients for export: %+v", err)
		return nil, err
	}

	data, err := generatePatientWorkbook(patients)
	if err != nil {
		u.log.Warnf("Failed to build patient workbook: %+v", err)
		return nil, err
	}
	return data, nil
}
