package converter

import (
	"docscript/internal/delivery/dto"
	"docscript/internal/domain/entity"
)

// MergeClinicRequest copies every field present in the request onto the clinic.
func MergeClinicRequest(clinic *entity.Clinic, req *dto.UpdateClinicRequest) {
	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.DrNameEn != nil {
		clinic.DrNameEn = *req.DrNameEn
	}
	if req.DrDegreesEn != nil {
		clinic.DrDegreesEn = *req.DrDegreesEn
	}
	if req.DrNameUr != nil {
		clinic.DrNameUr = *req.DrNameUr
	}
	if req.DrDegreesUr != nil {
		clinic.DrDegreesUr = *req.DrDegreesUr
	}
	if req.ClinicAddress != nil {
		clinic.ClinicAddress = *req.ClinicAddress
	}
	if req.ClinicContact != nil {
		clinic.ClinicContact = *req.ClinicContact
	}
	if req.Logo.Set {
		clinic.Logo = req.Logo.Value
	}
}
