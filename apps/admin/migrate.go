package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/storage/database"
)

var migrateFunc = runMigration // mockable

func (cli *commandLine) migrate(args []string) error {
	command := args[0]
	var n int
	switch command {
	case "up", "down", "version":
	case "steps", "force":
		if len(args) < 2 {
			return fmt.Errorf("%s must be of form: migrate %s N", command, command)
		}
		var err error
		if n, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("%s: N must be a number (got '%s')", command, args[1])
		}
	default:
		return fmt.Errorf("%q: no such command", command)
	}
	return migrateFunc(cli.conf, cli.out, command, n)
}

// runMigration runs command with the admin credentials.
func runMigration(conf *core.Config, out io.Writer, command string, n int) error {
	m, err := database.NewMigrator(conf, true /* admin */)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(n)
	case "force":
		err = m.Force(n)
	case "version":
		version, dirty, vErr := m.Version()
		if vErr == migrate.ErrNilVersion {
			fmt.Fprintln(out, "no migration applied")
			return nil
		}
		if vErr != nil {
			return errors.Wrap(vErr, "reading version")
		}
		fmt.Fprintf(out, "version %d (dirty: %t)\n", version, dirty)
		return nil
	}

	if err != nil && err != migrate.ErrNoChange {
		return errors.Wrapf(err, "migrate %s", command)
	}
	return nil
}
