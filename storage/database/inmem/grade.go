package inmemdb

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/grade"
)

type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db}
}

// resolve must not be called while holding the grade table lock.
func (repo *gradeRepository) resolve(grd grade.Grade) grade.Grade {
	grd.StudentName = repo.db.studentName(grd.StudentID)
	grd.CourseName = repo.db.courseName(grd.CourseID)
	return grd
}

func (repo *gradeRepository) CreateGrade(_ context.Context, grd grade.Grade) (grade.Grade, error) {
	tbl := repo.db.grade
	tbl.Lock()
	tbl.pkCount++
	grd.ID = tbl.pkCount
	grd.StudentName = null.String{}
	grd.CourseName = null.String{}
	stored := grd
	tbl.table[grd.ID] = &stored
	tbl.Unlock()

	return repo.resolve(grd), nil
}

func (repo *gradeRepository) QueryGrades(_ context.Context) ([]grade.Grade, error) {
	tbl := repo.db.grade
	tbl.RLock()
	grades := make([]grade.Grade, 0, len(tbl.table))
	for _, id := range sortedIDs(tbl.table) {
		grades = append(grades, *tbl.table[id])
	}
	tbl.RUnlock()

	for i := range grades {
		grades[i] = repo.resolve(grades[i])
	}
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(_ context.Context, id int64) (grade.Grade, error) {
	tbl := repo.db.grade
	tbl.RLock()
	grd, ok := tbl.table[id]
	var found grade.Grade
	if ok {
		found = *grd
	}
	tbl.RUnlock()

	if !ok {
		return grade.Grade{}, grade.ErrNotFound
	}
	return repo.resolve(found), nil
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, grd grade.Grade) (grade.Grade, error) {
	tbl := repo.db.grade
	tbl.Lock()
	origGrd, ok := tbl.table[grd.ID]
	if !ok {
		tbl.Unlock()
		return grade.Grade{}, grade.ErrNotFound
	}
	origGrd.StudentID = grd.StudentID
	origGrd.CourseID = grd.CourseID
	origGrd.Score = grd.Score
	updated := *origGrd
	tbl.Unlock()

	return repo.resolve(updated), nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, id int64) error {
	tbl := repo.db.grade
	tbl.Lock()
	defer tbl.Unlock()
	delete(tbl.table, id)
	return nil
}
