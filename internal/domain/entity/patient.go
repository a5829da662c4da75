package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a single prescription visit recorded for a clinic.
type Patient struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Age        string    `gorm:"type:varchar(32);not null;default:''" json:"age"`
	Sex        string    `gorm:"type:varchar(16);not null;default:''" json:"sex"`
	Mobile     string    `gorm:"type:varchar(32);not null;index" json:"mobile"`
	Date       string    `gorm:"type:varchar(32);not null;index" json:"date"`
	Complaints string    `gorm:"type:text;not null;default:''" json:"complaints"`
	Diseases   Diseases  `gorm:"embedded;embeddedPrefix:disease_" json:"diseases"`
	Advice     string    `gorm:"type:text;not null;default:''" json:"advice"`
	Treatment  string    `gorm:"type:text;not null;default:''" json:"treatment"`
	ClinicID   uuid.UUID `gorm:"type:uuid;not null;index" json:"clinicId"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Clinic *Clinic `gorm:"foreignKey:ClinicID" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

// Diseases is the fixed set of chronic conditions ticked on a prescription.
type Diseases struct {
	Hypertension     bool `gorm:"not null;default:false" json:"hypertension"`
	DiabetesMellitus bool `gorm:"not null;default:false" json:"diabetesMellitus"`
	HepatitisB       bool `gorm:"not null;default:false" json:"hepatitisB"`
	HepatitisC       bool `gorm:"not null;default:false" json:"hepatitisC"`
}

// Sex constants
const (
	SexMale   = "Male"
	SexFemale = "Female"
	SexOther  = "Other"
)

// DateLayout is the layout visit dates are written in.
const DateLayout = "2006-01-02"
