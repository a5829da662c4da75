package repository

import (
	"context"
	"errors"
	"strings"

	"docscript/internal/domain/entity"
	domainRepo "docscript/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, clinicID, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, clinicID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindRecent(ctx context.Context, clinicID uuid.UUID, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// Search matches name case-insensitively and mobile case-sensitively, both as substrings.
func (r *patientRepository) Search(ctx context.Context, clinicID uuid.UUID, query string) ([]entity.Patient, error) {
	pattern := "%" + escapeLike(query) + "%"

	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Where("name ILIKE ? OR mobile LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context, clinicID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Patient{}).
		Where("clinic_id = ?", clinicID).
		Count(&count).Error
	return count, err
}

func (r *patientRepository) CountByDate(ctx context.Context, clinicID uuid.UUID, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Patient{}).
		Where("clinic_id = ? AND date = ?", clinicID, date).
		Count(&count).Error
	return count, err
}

// Update writes every column of an existing row; it never inserts.
func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	result := r.db.WithContext(ctx).Model(patient).
		Where("clinic_id = ?", patient.ClinicID).
		Select("*").Omit("created_at").
		Updates(patient)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrRecordNotFound
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		Delete(&entity.Patient{}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
