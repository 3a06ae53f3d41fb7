package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

type Course struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"required"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name string `json:"name" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Name core.OptionalString `json:"name"`
}

// Apply merges the fields that were provided into c.
func (uc UpdateCourse) Apply(c Course) Course {
	if uc.Name.Set {
		c.Name = core.CleanString(uc.Name.Value.String)
	}
	return c
}
