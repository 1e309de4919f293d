package payload

import (
	"github.com/go-playground/validator/v10"
)

// CastProfile is the profile update payload for one cast member.
// Measurements are centimeters; zero values mean "leave unchanged".
type CastProfile struct {
	CastID     string   `json:"cast_id" validate:"required"`
	Name       string   `json:"name" validate:"required,min=1"`
	Age        int      `json:"age,omitempty" validate:"omitempty,gte=18,lte=99"`
	Height     int      `json:"height,omitempty" validate:"omitempty,gte=100,lte=220"`
	Bust       int      `json:"bust,omitempty" validate:"omitempty,gte=50,lte=150"`
	Waist      int      `json:"waist,omitempty" validate:"omitempty,gte=40,lte=150"`
	Hip        int      `json:"hip,omitempty" validate:"omitempty,gte=50,lte=150"`
	CupSize    string   `json:"cup_size,omitempty" validate:"omitempty,max=3"`
	Comment    string   `json:"comment,omitempty"`
	ImagePaths []string `json:"image_paths,omitempty" validate:"omitempty,dive,required"`
}

// Kind returns KindCastUpdate.
func (p *CastProfile) Kind() Kind {
	return KindCastUpdate
}

// Validate validates the CastProfile using the validator.
func (p *CastProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
