package sqlxrepos

import (
	"context"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
)

const selectGrades = `
	SELECT g.id, g.student_id, s.name AS student_name, g.course_id, c.name AS course_name, g.score, g.created_at
	FROM grades g
	LEFT JOIN students s ON s.id = g.student_id
	LEFT JOIN courses c ON c.id = g.course_id`

type gradeRepository struct {
	exec core.DBExecutor
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(exec core.DBExecutor) grade.Repository {
	return &gradeRepository{exec: exec}
}

func (repo gradeRepository) CreateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	var id int64
	err := repo.exec.QueryRowxContext(ctx,
		`INSERT INTO grades (student_id, course_id, score, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		grd.StudentID, grd.CourseID, grd.Score, grd.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return grade.Grade{}, core.NewOperationError("inserting grade", err)
	}
	return repo.GetGradeByID(ctx, id)
}

func (repo gradeRepository) QueryGrades(ctx context.Context) ([]grade.Grade, error) {
	grades := make([]grade.Grade, 0)
	if err := repo.exec.SelectContext(ctx, &grades, selectGrades+` ORDER BY g.id`); err != nil {
		return nil, core.NewOperationError("querying grades", err)
	}
	for i := range grades {
		grades[i].CreatedAt = grades[i].CreatedAt.UTC()
	}
	return grades, nil
}

func (repo gradeRepository) GetGradeByID(ctx context.Context, id int64) (grade.Grade, error) {
	var grd grade.Grade
	if err := repo.exec.GetContext(ctx, &grd, selectGrades+` WHERE g.id = $1`, id); err != nil {
		return grade.Grade{}, trapNoRowsErr(err, grade.ErrNotFound, "getting grade")
	}
	grd.CreatedAt = grd.CreatedAt.UTC()
	return grd, nil
}

func (repo gradeRepository) UpdateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	err := execAffecting(ctx, repo.exec, grade.ErrNotFound, "updating grade",
		`UPDATE grades SET student_id = $1, course_id = $2, score = $3 WHERE id = $4`,
		grd.StudentID, grd.CourseID, grd.Score, grd.ID,
	)
	if err != nil {
		return grade.Grade{}, err
	}
	return repo.GetGradeByID(ctx, grd.ID)
}

func (repo gradeRepository) DeleteGrade(ctx context.Context, id int64) error {
	if _, err := repo.exec.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id); err != nil {
		return core.NewOperationError("deleting grade", err)
	}
	return nil
}
