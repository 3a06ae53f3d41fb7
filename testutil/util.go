package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
	"github.com/trezcool/gradebook/storage/database"
)

// PrepareDB returns a migrated and emptied test database configured through the DB_* env vars.
// Tests are skipped unless TEST_DATABASE is set.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("TEST_DATABASE") == "" {
		t.Skip("TEST_DATABASE not set: skipping database tests")
	}

	conf := core.NewConfig()
	if err := database.Migrate(conf, true /* admin */); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ResetDB(t, db)
	return db
}

func ResetDB(t *testing.T, db *sqlx.DB) {
	t.Helper()
	if _, err := db.Exec("TRUNCATE grades, students, courses RESTART IDENTITY"); err != nil {
		t.Fatalf("ResetDB() failed: %v", err)
	}
}

func CreateCourse(t *testing.T, repo course.Repository, name string) course.Course {
	t.Helper()
	crs, err := repo.CreateCourse(context.Background(), course.Course{Name: name})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

// CreateStudent creates a student; a zero courseID means no course.
func CreateStudent(t *testing.T, repo student.Repository, name, email string, courseID int64, createdAt ...time.Time) student.Student {
	t.Helper()
	tstamp := core.Now()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	std := student.Student{
		Name:      name,
		Email:     null.NewString(email, email != ""),
		CourseID:  null.NewInt64(courseID, courseID != 0),
		CreatedAt: tstamp,
	}
	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

// CreateGrade records a grade; a zero courseID means no course.
func CreateGrade(t *testing.T, repo grade.Repository, studentID, courseID int64, score null.Float64) grade.Grade {
	t.Helper()
	grd := grade.Grade{
		StudentID: studentID,
		CourseID:  null.NewInt64(courseID, courseID != 0),
		Score:     score,
		CreatedAt: core.Now(),
	}
	grd, err := repo.CreateGrade(context.Background(), grd)
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return grd
}
