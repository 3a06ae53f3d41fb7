package grade

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
)

type Grade struct {
	ID          int64        `json:"id" db:"id"`
	StudentID   int64        `json:"student_id" db:"student_id" validate:"required,min=1"`
	StudentName null.String  `json:"student_name" db:"student_name"` // display only
	CourseID    null.Int64   `json:"course_id" db:"course_id" validate:"omitempty,min=1"`
	CourseName  null.String  `json:"course_name" db:"course_name"` // display only
	Score       null.Float64 `json:"score" db:"score"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"` // UTC
}

// NewGrade contains information needed to record a new Grade.
type NewGrade struct {
	StudentID int64        `json:"student_id" validate:"required,min=1"`
	CourseID  null.Int64   `json:"course_id" validate:"omitempty,min=1"`
	Score     null.Float64 `json:"score"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.CourseID = cleanRef(ng.CourseID)
	return validate.Struct(ng)
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
type UpdateGrade struct {
	StudentID core.OptionalInt64   `json:"student_id"`
	CourseID  core.OptionalInt64   `json:"course_id"`
	Score     core.OptionalFloat64 `json:"score"`
}

// Apply merges the fields that were provided into g.
func (ug UpdateGrade) Apply(g Grade) Grade {
	if ug.StudentID.Set {
		// null fails validation as a zero ID
		g.StudentID = ug.StudentID.Value.Int64
		g.StudentName = null.String{}
	}
	if ug.CourseID.Set {
		g.CourseID = cleanRef(ug.CourseID.Value)
		g.CourseName = null.String{}
	}
	if ug.Score.Set {
		g.Score = ug.Score.Value
	}
	return g
}

func cleanRef(id null.Int64) null.Int64 {
	return null.NewInt64(id.Int64, id.Valid && id.Int64 != 0)
}
