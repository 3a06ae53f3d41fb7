package sqlxrepos

import (
	"context"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/student"
)

const selectStudents = `
	SELECT s.id, s.name, s.email, s.course_id, c.name AS course_name, s.created_at
	FROM students s
	LEFT JOIN courses c ON c.id = s.course_id`

type studentRepository struct {
	exec core.DBExecutor
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) student.Repository {
	return &studentRepository{exec: exec}
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	var id int64
	err := repo.exec.QueryRowxContext(ctx,
		`INSERT INTO students (name, email, course_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		std.Name, std.Email, std.CourseID, std.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return student.Student{}, core.NewOperationError("inserting student", err)
	}
	// not atomic: a concurrent delete makes this a not found
	return repo.GetStudentByID(ctx, id)
}

func (repo studentRepository) QueryStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	if err := repo.exec.SelectContext(ctx, &students, selectStudents+` ORDER BY s.id`); err != nil {
		return nil, core.NewOperationError("querying students", err)
	}
	for i := range students {
		students[i].CreatedAt = students[i].CreatedAt.UTC()
	}
	return students, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id int64) (student.Student, error) {
	var std student.Student
	if err := repo.exec.GetContext(ctx, &std, selectStudents+` WHERE s.id = $1`, id); err != nil {
		return student.Student{}, trapNoRowsErr(err, student.ErrNotFound, "getting student")
	}
	std.CreatedAt = std.CreatedAt.UTC()
	return std, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	err := execAffecting(ctx, repo.exec, student.ErrNotFound, "updating student",
		`UPDATE students SET name = $1, email = $2, course_id = $3 WHERE id = $4`,
		std.Name, std.Email, std.CourseID, std.ID,
	)
	if err != nil {
		return student.Student{}, err
	}
	return repo.GetStudentByID(ctx, std.ID)
}

func (repo studentRepository) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := repo.exec.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return core.NewOperationError("deleting student", err)
	}
	return nil
}
