package database

import (
	"context"
	"embed"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// URL returns the connection URL of the app database.
// admin selects the admin credentials when they are configured.
func URL(conf *core.Config, admin bool) string {
	dbConf := conf.Database
	user := url.UserPassword(dbConf.User, dbConf.Password)
	if admin && dbConf.AdminUser != "" {
		user = url.UserPassword(dbConf.AdminUser, dbConf.AdminPassword)
	}

	sslMode := "require"
	if dbConf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")
	if secs := int(dbConf.ConnectTimeout / time.Second); secs > 0 {
		q.Set("connect_timeout", strconv.Itoa(secs))
	}

	u := url.URL{
		Scheme:   dbConf.Engine,
		User:     user,
		Host:     dbConf.Address(),
		Path:     dbConf.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Open creates the connection pool; it does not connect.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(conf.Database.Engine, URL(conf, false))
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	db.SetMaxOpenConns(10)
	return db, nil
}

// WaitReady waits for the database to be ready. Waits 100ms longer between each attempt.
func WaitReady(ctx context.Context, db core.DB, maxAttempts int) error {
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping cancelled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// NewMigrator returns a migrate instance over the embedded migrations.
func NewMigrator(conf *core.Config, admin bool) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "creating migration source")
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, URL(conf, admin))
	if err != nil {
		return nil, errors.Wrap(err, "creating migrator")
	}
	return m, nil
}

// Migrate applies all pending migrations. Being up to date is not an error.
func Migrate(conf *core.Config, admin bool) error {
	m, err := NewMigrator(conf, admin)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
