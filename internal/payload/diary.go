package payload

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DiaryPost is the diary payload: a titled body with optional images.
// ImagePaths keep their order; panels that show a gallery use the first
// image as the thumbnail.
type DiaryPost struct {
	Title      string     `json:"title" validate:"required,min=1,max=200"`
	Body       string     `json:"body" validate:"required,min=1"`
	ImagePaths []string   `json:"image_paths,omitempty" validate:"omitempty,dive,required"`
	PublishAt  *time.Time `json:"publish_at,omitempty"`
}

// Kind returns KindDiaryPost.
func (p *DiaryPost) Kind() Kind {
	return KindDiaryPost
}

// Validate validates the DiaryPost using the validator.
func (p *DiaryPost) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
