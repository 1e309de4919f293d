package payload

import (
	"github.com/go-playground/validator/v10"
)

// Availability states a panel understands for one schedule slot.
const (
	AvailabilityOn        = "on"
	AvailabilityOff       = "off"
	AvailabilityTentative = "tentative"
)

// ScheduleEntry is one cast member's working slot for one date.
type ScheduleEntry struct {
	CastID   string `json:"cast_id" validate:"required"`
	CastName string `json:"cast_name" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Start    string `json:"start" validate:"required,datetime=15:04"`
	End      string `json:"end" validate:"required,datetime=15:04"`
	Status   string `json:"status" validate:"required,oneof=on off tentative"`
}

// Schedule is the ordered list of entries a schedule-update job carries.
// Entry order is preserved through to the panel form.
type Schedule struct {
	Entries []ScheduleEntry `json:"entries" validate:"required,min=1,dive"`
}

// Kind returns KindScheduleUpdate.
func (p *Schedule) Kind() Kind {
	return KindScheduleUpdate
}

// Validate validates the Schedule and every entry using the validator.
func (p *Schedule) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
