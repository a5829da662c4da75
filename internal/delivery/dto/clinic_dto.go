package dto

import (
	"bytes"
	"encoding/json"
)

// NullableString tells an absent JSON field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// UpdateClinicRequest is merged field by field; nil pointers leave the stored value alone.
type UpdateClinicRequest struct {
	Name          *string        `json:"name"`
	DrNameEn      *string        `json:"drNameEn"`
	DrDegreesEn   *string        `json:"drDegreesEn"`
	DrNameUr      *string        `json:"drNameUr"`
	DrDegreesUr   *string        `json:"drDegreesUr"`
	ClinicAddress *string        `json:"clinicAddress"`
	ClinicContact *string        `json:"clinicContact"`
	Logo          NullableString `json:"logo"`
}
