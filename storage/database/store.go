package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
	inmemdb "github.com/trezcool/gradebook/storage/database/inmem"
	sqlxrepos "github.com/trezcool/gradebook/storage/database/sqlx"
)

var schemaTables = []string{"courses", "students", "grades"}

// Store holds the repositories of the persistence mode chosen at startup.
type Store struct {
	Students student.Repository
	Courses  course.Repository
	Grades   grade.Repository

	db *sqlx.DB // nil in memory mode
}

func NewInMemoryStore() *Store {
	db, _ := inmemdb.Open()
	return &Store{
		Students: inmemdb.NewStudentRepository(db),
		Courses:  inmemdb.NewCourseRepository(db),
		Grades:   inmemdb.NewGradeRepository(db),
	}
}

func NewSQLStore(db *sqlx.DB) *Store {
	return &Store{
		Students: sqlxrepos.NewStudentRepository(db),
		Courses:  sqlxrepos.NewCourseRepository(db),
		Grades:   sqlxrepos.NewGradeRepository(db),
		db:       db,
	}
}

// UsingDB is the mode flag: true when backed by the relational database.
func (s *Store) UsingDB() bool {
	return s.db != nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Connect tries the database exactly once and falls back to an in-memory store on any failure.
// The choice holds for the whole process lifetime.
func Connect(ctx context.Context, conf *core.Config, logger core.Logger) *Store {
	if conf.Database.Host == "" || conf.Database.User == "" {
		logger.Warn("database not configured: using in-memory store")
		return NewInMemoryStore()
	}

	db, err := probe(ctx, conf)
	if err != nil {
		logger.Warn("database connection failed: using in-memory store", err)
		return NewInMemoryStore()
	}
	logger.Info(fmt.Sprintf("connected to database %q at %s", conf.Database.Name, conf.Database.Address()))
	return NewSQLStore(db)
}

func probe(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	if conf.Database.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.Database.ConnectTimeout)
		defer cancel()
	}

	db, err := Open(conf)
	if err != nil {
		return nil, core.NewConnectivityError("open", err)
	}
	fail := func(stage string, err error) (*sqlx.DB, error) {
		_ = db.Close()
		return nil, core.NewConnectivityError(stage, err)
	}

	if err = db.PingContext(ctx); err != nil {
		return fail("ping", err)
	}
	if conf.Database.AutoMigrate {
		if err = Migrate(conf, false); err != nil {
			return fail("migrate", err)
		}
	}
	for _, table := range schemaTables {
		if _, err = db.ExecContext(ctx, "SELECT 1 FROM "+table+" LIMIT 0"); err != nil {
			return fail("schema", err)
		}
	}
	return db, nil
}
