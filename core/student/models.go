package student

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
)

type Student struct {
	ID         int64       `json:"id" db:"id"`
	Name       string      `json:"name" db:"name" validate:"required"`
	Email      null.String `json:"email" db:"email" validate:"omitempty,email"`
	CourseID   null.Int64  `json:"course_id" db:"course_id" validate:"omitempty,min=1"`
	CourseName null.String `json:"course_name" db:"course_name"` // display only
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`   // UTC
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name     string      `json:"name" validate:"required"`
	Email    null.String `json:"email" validate:"omitempty,email"`
	CourseID null.Int64  `json:"course_id" validate:"omitempty,min=1"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanNullString(ns.Email)
	ns.CourseID = cleanRef(ns.CourseID)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Omitted fields are left untouched; null clears optional fields.
type UpdateStudent struct {
	Name     core.OptionalString `json:"name"`
	Email    core.OptionalString `json:"email"`
	CourseID core.OptionalInt64  `json:"course_id"`
}

// Apply merges the fields that were provided into s.
func (us UpdateStudent) Apply(s Student) Student {
	if us.Name.Set {
		s.Name = core.CleanString(us.Name.Value.String)
	}
	if us.Email.Set {
		s.Email = core.CleanNullString(us.Email.Value)
	}
	if us.CourseID.Set {
		s.CourseID = cleanRef(us.CourseID.Value)
		s.CourseName = null.String{}
	}
	return s
}

// cleanRef treats a zero reference as no reference.
func cleanRef(id null.Int64) null.Int64 {
	return null.NewInt64(id.Int64, id.Valid && id.Int64 != 0)
}
