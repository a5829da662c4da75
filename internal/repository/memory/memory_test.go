package memory

import (
	"context"
	"testing"

	"docscript/internal/domain/entity"
	domainRepo "docscript/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_DuplicateEmailIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "doc@clinic.test"}))
	require.NoError(t, repo.Create(ctx, &entity.User{Email: "Doc@clinic.test"}))

	err := repo.Create(ctx, &entity.User{Email: "doc@clinic.test"})
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)

	found, err := repo.FindByEmail(ctx, "DOC@clinic.test")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUpdate_MissingRowIsNotInserted(t *testing.T) {
	ctx := context.Background()

	users := NewUserRepository()
	err := users.Update(ctx, &entity.User{ID: uuid.New(), Email: "ghost@clinic.test"})
	assert.ErrorIs(t, err, domainRepo.ErrRecordNotFound)
	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	patients := NewPatientRepository()
	clinicID := uuid.New()
	p := &entity.Patient{Name: "Ali", ClinicID: clinicID}
	require.NoError(t, patients.Create(ctx, p))

	moved := *p
	moved.ClinicID = uuid.New()
	assert.ErrorIs(t, patients.Update(ctx, &moved), domainRepo.ErrRecordNotFound)

	p.Name = "Ali Raza"
	require.NoError(t, patients.Update(ctx, p))

	clinics := NewClinicRepository()
	assert.ErrorIs(t, clinics.Update(ctx, &entity.Clinic{ID: uuid.New()}), domainRepo.ErrRecordNotFound)
}
