// Package memory provides map-backed repositories with the same contracts as
// the gorm implementations. Duplicate emails fail with a postgres unique
// violation so callers exercise their real error mapping.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"docscript/internal/domain/entity"
	domainRepo "docscript/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type clock struct {
	mu   sync.Mutex
	last time.Time
}

// next returns strictly increasing timestamps so newest-first ordering is stable.
func (c *clock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().UTC()
	if !now.After(c.last) {
		now = c.last.Add(time.Microsecond)
	}
	c.last = now
	return now
}

type UserRepository struct {
	mu    sync.RWMutex
	clock clock
	users map[uuid.UUID]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]entity.User)}
}

var _ domainRepo.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return &pgconn.PgError{Code: uniqueViolation, ConstraintName: "idx_users_email", Message: "duplicate key value violates unique constraint"}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	now := r.clock.next()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *UserRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domainRepo.ErrRecordNotFound
	}
	user.UpdatedAt = r.clock.next()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type PatientRepository struct {
	mu       sync.RWMutex
	clock    clock
	patients map[uuid.UUID]entity.Patient
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{patients: make(map[uuid.UUID]entity.Patient)}
}

var _ domainRepo.PatientRepository = (*PatientRepository)(nil)

func (r *PatientRepository) Create(_ context.Context, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	now := r.clock.next()
	patient.CreatedAt, patient.UpdatedAt = now, now
	r.patients[patient.ID] = *patient
	return nil
}

func (r *PatientRepository) FindByID(_ context.Context, clinicID, id uuid.UUID) (*entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok || p.ClinicID != clinicID {
		return nil, nil
	}
	return &p, nil
}

func (r *PatientRepository) filter(clinicID uuid.UUID, match func(entity.Patient) bool) []entity.Patient {
	patients := make([]entity.Patient, 0)
	for _, p := range r.patients {
		if p.ClinicID == clinicID && match(p) {
			patients = append(patients, p)
		}
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].CreatedAt.After(patients[j].CreatedAt) })
	return patients
}

func (r *PatientRepository) FindAll(_ context.Context, clinicID uuid.UUID) ([]entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(clinicID, func(entity.Patient) bool { return true }), nil
}

func (r *PatientRepository) FindRecent(ctx context.Context, clinicID uuid.UUID, limit int) ([]entity.Patient, error) {
	patients, _ := r.FindAll(ctx, clinicID)
	if len(patients) > limit {
		patients = patients[:limit]
	}
	return patients, nil
}

func (r *PatientRepository) Search(_ context.Context, clinicID uuid.UUID, query string) ([]entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lower := strings.ToLower(query)
	return r.filter(clinicID, func(p entity.Patient) bool {
		return strings.Contains(strings.ToLower(p.Name), lower) || strings.Contains(p.Mobile, query)
	}), nil
}

func (r *PatientRepository) Count(_ context.Context, clinicID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filter(clinicID, func(entity.Patient) bool { return true }))), nil
}

func (r *PatientRepository) CountByDate(_ context.Context, clinicID uuid.UUID, date string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filter(clinicID, func(p entity.Patient) bool { return p.Date == date }))), nil
}

func (r *PatientRepository) Update(_ context.Context, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patients[patient.ID]; !ok || p.ClinicID != patient.ClinicID {
		return domainRepo.ErrRecordNotFound
	}
	patient.UpdatedAt = r.clock.next()
	r.patients[patient.ID] = *patient
	return nil
}

func (r *PatientRepository) Delete(_ context.Context, clinicID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patients[id]; ok && p.ClinicID == clinicID {
		delete(r.patients, id)
	}
	return nil
}

type ClinicRepository struct {
	mu      sync.RWMutex
	clock   clock
	clinics []entity.Clinic
}

func NewClinicRepository() *ClinicRepository {
	return &ClinicRepository{}
}

var _ domainRepo.ClinicRepository = (*ClinicRepository)(nil)

func (r *ClinicRepository) Create(_ context.Context, clinic *entity.Clinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if clinic.ID == uuid.Nil {
		clinic.ID = uuid.New()
	}
	now := r.clock.next()
	clinic.CreatedAt, clinic.UpdatedAt = now, now
	r.clinics = append(r.clinics, *clinic)
	return nil
}

func (r *ClinicRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Clinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clinics {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ClinicRepository) FindFirst(_ context.Context) (*entity.Clinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.clinics) == 0 {
		return nil, nil
	}
	first := r.clinics[0]
	return &first, nil
}

func (r *ClinicRepository) Update(_ context.Context, clinic *entity.Clinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.clinics {
		if r.clinics[i].ID == clinic.ID {
			clinic.UpdatedAt = r.clock.next()
			r.clinics[i] = *clinic
			return nil
		}
	}
	return domainRepo.ErrRecordNotFound
}
