package dto

import (
	"time"

	"github.com/google/uuid"
)

// DiseasesRequest mirrors entity.Diseases; a nil pointer on update keeps the stored flags.
type DiseasesRequest struct {
	Hypertension     bool `json:"hypertension"`
	DiabetesMellitus bool `json:"diabetesMellitus"`
	HepatitisB       bool `json:"hepatitisB"`
	HepatitisC       bool `json:"hepatitisC"`
}

type PatientRequest struct {
	Name       string           `json:"name" validate:"required"`
	Age        string           `json:"age"`
	Sex        string           `json:"sex" validate:"omitempty,oneof=Male Female Other"`
	Mobile     string           `json:"mobile" validate:"required"`
	Date       string           `json:"date" validate:"required"`
	Complaints string           `json:"complaints"`
	Diseases   *DiseasesRequest `json:"diseases"`
	Advice     string           `json:"advice"`
	Treatment  string           `json:"treatment"`
}

type PatientResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Age        string          `json:"age"`
	Sex        string          `json:"sex"`
	Mobile     string          `json:"mobile"`
	Date       string          `json:"date"`
	Complaints string          `json:"complaints"`
	Diseases   DiseasesRequest `json:"diseases"`
	Advice     string          `json:"advice"`
	Treatment  string          `json:"treatment"`
	ClinicID   uuid.UUID       `json:"clinicId"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type StatsResponse struct {
	TotalPatients  int64              `json:"totalPatients"`
	VisitsToday    int64              `json:"visitsToday"`
	ClinicStatus   string             `json:"clinicStatus"`
	RecentPatients []*PatientResponse `json:"recentPatients"`
}
