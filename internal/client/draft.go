package client

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// MandatoryFieldsNotice matches the server's message for the same rule.
const MandatoryFieldsNotice = "Patient Name, Mobile, and Date are mandatory."

var ErrMissingMandatory = errors.New("patient name, mobile and date are mandatory")

type Diseases struct {
	Hypertension     bool `json:"hypertension"`
	DiabetesMellitus bool `json:"diabetesMellitus"`
	HepatitisB       bool `json:"hepatitisB"`
	HepatitisC       bool `json:"hepatitisC"`
}

// Draft is the prescription form being filled in.
type Draft struct {
	Name       string   `json:"name"`
	Age        string   `json:"age"`
	Sex        string   `json:"sex"`
	Mobile     string   `json:"mobile"`
	Date       string   `json:"date"`
	Complaints string   `json:"complaints"`
	Diseases   Diseases `json:"diseases"`
	Advice     string   `json:"advice"`
	Treatment  string   `json:"treatment"`

	now func() time.Time
}

func NewDraft() *Draft {
	return newDraftAt(time.Now)
}

func newDraftAt(now func() time.Time) *Draft {
	d := &Draft{now: now}
	d.Reset()
	return d
}

// Reset restores the blank form: sex Male, today's UTC date, no diseases.
func (d *Draft) Reset() {
	now := d.now
	if now == nil {
		now = time.Now
	}
	*d = Draft{
		Sex:  "Male",
		Date: now().UTC().Format(dateLayout),
		now:  now,
	}
}

func (d *Draft) Validate() error {
	if d.Name == "" || d.Mobile == "" || d.Date == "" {
		return ErrMissingMandatory
	}
	return nil
}
