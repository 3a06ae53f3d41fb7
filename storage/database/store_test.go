package database_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/storage/database"
	"github.com/trezcool/gradebook/testutil"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	infos []string
}

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Error(string, ...interface{}) {}
func (l *recordingLogger) Fatal(string, ...interface{}) {}

func (l *recordingLogger) Info(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warn(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func dbConfig() *core.Config {
	return &core.Config{
		Database: core.DatabaseConfig{
			Engine:         "postgres",
			Host:           "db",
			Port:           5432,
			User:           "app",
			Password:       "p@ss",
			Name:           "student_mgmt",
			DisableTLS:     true,
			ConnectTimeout: 10 * time.Second,
		},
	}
}

func TestURL(t *testing.T) {
	conf := dbConfig()
	assert.Equal(t, "postgres://app:p%40ss@db:5432/student_mgmt?connect_timeout=10&sslmode=disable&timezone=utc", database.URL(conf, false))
	assert.Equal(t, database.URL(conf, false), database.URL(conf, true), "no admin configured")

	conf.Database.AdminUser = "root"
	conf.Database.AdminPassword = "toor"
	conf.Database.DisableTLS = false
	conf.Database.ConnectTimeout = 0
	assert.Equal(t, "postgres://root:toor@db:5432/student_mgmt?sslmode=require&timezone=utc", database.URL(conf, true))
	assert.Equal(t, "postgres://app:p%40ss@db:5432/student_mgmt?sslmode=require&timezone=utc", database.URL(conf, false))
}

func TestConnect_notConfigured(t *testing.T) {
	for _, tt := range []struct {
		name string
		edit func(conf *core.Config)
	}{
		{name: "no host", edit: func(conf *core.Config) { conf.Database.Host = "" }},
		{name: "no user", edit: func(conf *core.Config) { conf.Database.User = "" }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			conf := dbConfig()
			tt.edit(conf)
			logger := new(recordingLogger)

			store := database.Connect(context.Background(), conf, logger)
			assert.False(t, store.UsingDB())
			assert.NotNil(t, store.Students)
			assert.Len(t, logger.warns, 1)
			assert.NoError(t, store.Close())
		})
	}
}

func TestConnect_unreachable(t *testing.T) {
	conf := dbConfig()
	conf.Database.Host = "127.0.0.1"
	conf.Database.Port = 1 // nothing listens there
	conf.Database.ConnectTimeout = time.Second
	logger := new(recordingLogger)

	store := database.Connect(context.Background(), conf, logger)
	assert.False(t, store.UsingDB())
	assert.Equal(t, []string{"database connection failed: using in-memory store"}, logger.warns)

	// the fallback store is fully usable
	crs := testutil.CreateCourse(t, store.Courses, "Math")
	assert.EqualValues(t, 1, crs.ID)
}

func TestConnect_database(t *testing.T) {
	testutil.PrepareDB(t)
	conf := core.NewConfig()
	logger := new(recordingLogger)

	store := database.Connect(context.Background(), conf, logger)
	t.Cleanup(func() { _ = store.Close() })
	assert.True(t, store.UsingDB())
	assert.Empty(t, logger.warns)
	assert.Len(t, logger.infos, 1)
}

type pingDB struct {
	core.DB
	failures int
	pings    int
}

func (db *pingDB) PingContext(context.Context) error {
	db.pings++
	if db.pings <= db.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitReady(t *testing.T) {
	ctx := context.Background()

	db := &pingDB{failures: 2}
	require.NoError(t, database.WaitReady(ctx, db, 5))
	assert.Equal(t, 3, db.pings)

	db = &pingDB{failures: 10}
	assert.EqualError(t, database.WaitReady(ctx, db, 2), "DB ping timeout: connection refused")
	assert.Equal(t, 2, db.pings)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	db = &pingDB{failures: 10}
	assert.EqualError(t, database.WaitReady(cctx, db, 5), "DB ping cancelled: context canceled")
}

func TestNewInMemoryStore(t *testing.T) {
	s1, s2 := database.NewInMemoryStore(), database.NewInMemoryStore()
	testutil.CreateCourse(t, s1.Courses, "Math")

	courses, err := s2.Courses.QueryCourses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses, "stores do not share state")
}
