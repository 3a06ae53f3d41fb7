package sqlxrepos

import (
	"context"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/course"
)

const selectCourses = `SELECT id, name FROM courses`

type courseRepository struct {
	exec core.DBExecutor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) course.Repository {
	return &courseRepository{exec: exec}
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	err := repo.exec.QueryRowxContext(ctx,
		`INSERT INTO courses (name) VALUES ($1) RETURNING id`,
		crs.Name,
	).Scan(&crs.ID)
	if err != nil {
		return course.Course{}, core.NewOperationError("inserting course", err)
	}
	return crs, nil
}

func (repo courseRepository) QueryCourses(ctx context.Context) ([]course.Course, error) {
	courses := make([]course.Course, 0)
	if err := repo.exec.SelectContext(ctx, &courses, selectCourses+` ORDER BY id`); err != nil {
		return nil, core.NewOperationError("querying courses", err)
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id int64) (course.Course, error) {
	var crs course.Course
	if err := repo.exec.GetContext(ctx, &crs, selectCourses+` WHERE id = $1`, id); err != nil {
		return course.Course{}, trapNoRowsErr(err, course.ErrNotFound, "getting course")
	}
	return crs, nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	err := execAffecting(ctx, repo.exec, course.ErrNotFound, "updating course",
		`UPDATE courses SET name = $1 WHERE id = $2`,
		crs.Name, crs.ID,
	)
	if err != nil {
		return course.Course{}, err
	}
	return repo.GetCourseByID(ctx, crs.ID)
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := repo.exec.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return core.NewOperationError("deleting course", err)
	}
	return nil
}
