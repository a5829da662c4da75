package repository

import (
	"context"

	"docscript/internal/domain/entity"

	"github.com/google/uuid"
)

type ClinicRepository interface {
	Create(ctx context.Context, clinic *entity.Clinic) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Clinic, error)
	FindFirst(ctx context.Context) (*entity.Clinic, error)
	Update(ctx context.Context, clinic *entity.Clinic) error
}
