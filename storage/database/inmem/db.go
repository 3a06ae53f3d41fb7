package inmemdb

import (
	"sort"
	"sync"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

type (
	// DB is a volatile store; it is lost when the process exits.
	// Each table has its own lock and primary key counter; keys are never reused.
	DB struct {
		student *studentTable
		course  *courseTable
		grade   *gradeTable
	}

	studentTable struct {
		sync.RWMutex
		pkCount int64
		table   map[int64]*student.Student
	}

	courseTable struct {
		sync.RWMutex
		pkCount int64
		table   map[int64]*course.Course
	}

	gradeTable struct {
		sync.RWMutex
		pkCount int64
		table   map[int64]*grade.Grade
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[int64]*student.Student)},
		course:  &courseTable{table: make(map[int64]*course.Course)},
		grade:   &gradeTable{table: make(map[int64]*grade.Grade)},
	}
	return db, nil
}

// studentName and courseName emulate a LEFT JOIN: unknown IDs resolve to null.

func (db *DB) studentName(id int64) null.String {
	db.student.RLock()
	defer db.student.RUnlock()

	if std, ok := db.student.table[id]; ok {
		return null.StringFrom(std.Name)
	}
	return null.String{}
}

func (db *DB) courseName(id null.Int64) null.String {
	if !id.Valid {
		return null.String{}
	}

	db.course.RLock()
	defer db.course.RUnlock()

	if crs, ok := db.course.table[id.Int64]; ok {
		return null.StringFrom(crs.Name)
	}
	return null.String{}
}

func sortedIDs[T any](table map[int64]T) []int64 {
	ids := make([]int64, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
