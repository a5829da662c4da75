package usecase

import (
	"context"
	"errors"
	"fmt"

	"docscript/internal/converter"
	"docscript/internal/delivery/dto"
	"docscript/internal/domain/entity"
	"docscript/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrClinicNotFound = errors.New("clinic not found")

type ClinicUsecase interface {
	GetConfig(ctx context.Context) (*entity.Clinic, error)
	UpdateConfig(ctx context.Context, req *dto.UpdateClinicRequest) (*entity.Clinic, error)
}

type clinicUsecase struct {
	log        *logrus.Logger
	clinicRepo repository.ClinicRepository
	clinicID   uuid.UUID
}

func NewClinicUsecase(log *logrus.Logger, clinicRepo repository.ClinicRepository, clinicID uuid.UUID) ClinicUsecase {
	return &clinicUsecase{
		log:        log,
		clinicRepo: clinicRepo,
		clinicID:   clinicID,
	}
}

func (u *clinicUsecase) GetConfig(ctx context.Context) (*entity.Clinic, error) {
	clinic, err := u.clinicRepo.FindByID(ctx, u.clinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}
	return clinic, nil
}

func (u *clinicUsecase) UpdateConfig(ctx context.Context, req *dto.UpdateClinicRequest) (*entity.Clinic, error) {
	clinic, err := u.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	converter.MergeClinicRequest(clinic, req)
	if err := u.clinicRepo.Update(ctx, clinic); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrClinicNotFound
		}
		u.log.Warnf("Failed to update clinic: %+v", err)
		return nil, err
	}

	return clinic, nil
}

// ResolveClinic picks the clinic every patient operation is scoped to: the
// configured id, else the oldest clinic row, else a freshly seeded default.
// A configured id with no row yet is seeded under that id.
func ResolveClinic(ctx context.Context, log *logrus.Logger, clinicRepo repository.ClinicRepository, configuredID string) (uuid.UUID, error) {
	if configuredID != "" {
		id, err := uuid.Parse(configuredID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid CLINIC_ID %q: %w", configuredID, err)
		}

		clinic, err := clinicRepo.FindByID(ctx, id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to load clinic: %w", err)
		}
		if clinic != nil {
			log.Infof("Using configured clinic %s", id)
			return id, nil
		}

		seeded := entity.DefaultClinic()
		seeded.ID = id
		if err := clinicRepo.Create(ctx, seeded); err != nil {
			return uuid.Nil, fmt.Errorf("failed to seed clinic: %w", err)
		}
		log.Infof("Seeded configured clinic %s", id)
		return id, nil
	}

	clinic, err := clinicRepo.FindFirst(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load clinic: %w", err)
	}
	if clinic != nil {
		log.Infof("Using existing clinic %s", clinic.ID)
		return clinic.ID, nil
	}

	seeded := entity.DefaultClinic()
	if err := clinicRepo.Create(ctx, seeded); err != nil {
		return uuid.Nil, fmt.Errorf("failed to seed clinic: %w", err)
	}
	log.Infof("Seeded default clinic %s", seeded.ID)
	return seeded.ID, nil
}
