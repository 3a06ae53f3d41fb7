package inmemdb

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

// resolve must not be called while holding the student table lock.
func (repo *studentRepository) resolve(std student.Student) student.Student {
	std.CourseName = repo.db.courseName(std.CourseID)
	return std
}

func (repo *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	tbl := repo.db.student
	tbl.Lock()
	tbl.pkCount++
	std.ID = tbl.pkCount
	std.CourseName = null.String{}
	stored := std
	tbl.table[std.ID] = &stored
	tbl.Unlock()

	return repo.resolve(std), nil
}

func (repo *studentRepository) QueryStudents(_ context.Context) ([]student.Student, error) {
	tbl := repo.db.student
	tbl.RLock()
	students := make([]student.Student, 0, len(tbl.table))
	for _, id := range sortedIDs(tbl.table) {
		students = append(students, *tbl.table[id])
	}
	tbl.RUnlock()

	for i := range students {
		students[i] = repo.resolve(students[i])
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id int64) (student.Student, error) {
	tbl := repo.db.student
	tbl.RLock()
	std, ok := tbl.table[id]
	var found student.Student
	if ok {
		found = *std
	}
	tbl.RUnlock()

	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	return repo.resolve(found), nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, std student.Student) (student.Student, error) {
	tbl := repo.db.student
	tbl.Lock()
	origStd, ok := tbl.table[std.ID]
	if !ok {
		tbl.Unlock()
		return student.Student{}, student.ErrNotFound
	}
	// ID and CreatedAt are immutable
	origStd.Name = std.Name
	origStd.Email = std.Email
	origStd.CourseID = std.CourseID
	updated := *origStd
	tbl.Unlock()

	return repo.resolve(updated), nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id int64) error {
	tbl := repo.db.student
	tbl.Lock()
	defer tbl.Unlock()
	delete(tbl.table, id)
	return nil
}
