package repository

import (
	"context"

	"docscript/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientRepository scopes every query to the clinic passed in.
// Finders return (nil, nil) when no row matches.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, clinicID, id uuid.UUID) (*entity.Patient, error)
	FindAll(ctx context.Context, clinicID uuid.UUID) ([]entity.Patient, error)
	FindRecent(ctx context.Context, clinicID uuid.UUID, limit int) ([]entity.Patient, error)
	Search(ctx context.Context, clinicID uuid.UUID, query string) ([]entity.Patient, error)
	Count(ctx context.Context, clinicID uuid.UUID) (int64, error)
	CountByDate(ctx context.Context, clinicID uuid.UUID, date string) (int64, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, clinicID, id uuid.UUID) error
}
