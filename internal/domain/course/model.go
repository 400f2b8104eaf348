package course

import (
	"context"

	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
)

// Course is a generated course owned by a user. Only the fields the
// billing surface needs are modelled here; content lives elsewhere.
type Course struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"user_id" json:"user_id"`
	Title  string `bson:"title" json:"title"`
	Topic  string `bson:"topic,omitempty" json:"topic,omitempty"`
	types.BaseModel `bson:",inline"`
}

func New(ctx context.Context) *Course {
	return &Course{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COURSE),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// Validate validates the course
func (c *Course) Validate() error {
	if c.UserID == "" {
		return ierr.NewError("invalid user id").
			WithHint("User ID is required").
			Mark(ierr.ErrValidation)
	}
	if c.Title == "" {
		return ierr.NewError("invalid title").
			WithHint("Title is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the collection name for courses
func (c *Course) TableName() string {
	return "courses"
}
