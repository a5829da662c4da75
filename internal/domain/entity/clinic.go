package entity

import (
	"time"

	"github.com/google/uuid"
)

// Clinic holds the branding printed on every prescription.
type Clinic struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	DrNameEn      string    `gorm:"column:dr_name_en;type:varchar(255);not null;default:''" json:"drNameEn"`
	DrDegreesEn   string    `gorm:"column:dr_degrees_en;type:text;not null;default:''" json:"drDegreesEn"`
	DrNameUr      string    `gorm:"column:dr_name_ur;type:varchar(255);not null;default:''" json:"drNameUr"`
	DrDegreesUr   string    `gorm:"column:dr_degrees_ur;type:text;not null;default:''" json:"drDegreesUr"`
	ClinicAddress string    `gorm:"type:text;not null;default:''" json:"clinicAddress"`
	ClinicContact string    `gorm:"type:varchar(255);not null;default:''" json:"clinicContact"`
	Logo          *string   `gorm:"type:text" json:"logo"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Clinic) TableName() string {
	return "clinics"
}

// DefaultClinic returns the branding a fresh deployment is seeded with.
func DefaultClinic() *Clinic {
	return &Clinic{
		Name:          "REHMAN MEDICAL CENTER",
		DrNameEn:      "Dr. Muhammad Ahmed",
		DrDegreesEn:   "MBBS, FCPS (Medicine)\nGeneral Physician & Consultant",
		DrNameUr:      "ڈاکٹر محمد احمد",
		DrDegreesUr:   "ایم بی بی ایس، ایف سی پی ایس\nماہر امراضِ جگر و معدہ",
		ClinicAddress: "Plot 45-C, Medical Lane, Phase 5, Karachi",
		ClinicContact: "021-34567890 / 0300-1234567",
	}
}
