package report

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

// Service computes reports on read; nothing is cached.
type Service struct {
	students student.Repository
	courses  course.Repository
	grades   grade.Repository
}

func NewService(students student.Repository, courses course.Repository, grades grade.Repository) *Service {
	return &Service{students: students, courses: courses, grades: grades}
}

func (svc *Service) Averages(ctx context.Context) (Averages, error) {
	students, err := svc.students.QueryStudents(ctx)
	if err != nil {
		return Averages{}, errors.Wrap(err, "querying students")
	}
	courses, err := svc.courses.QueryCourses(ctx)
	if err != nil {
		return Averages{}, errors.Wrap(err, "querying courses")
	}
	grades, err := svc.grades.QueryGrades(ctx)
	if err != nil {
		return Averages{}, errors.Wrap(err, "querying grades")
	}
	return ComputeAverages(students, courses, grades), nil
}

func (svc *Service) ExportGrades(ctx context.Context, w io.Writer) error {
	grades, err := svc.grades.QueryGrades(ctx)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return WriteGradesCSV(w, grades)
}
