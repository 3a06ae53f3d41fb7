package main

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/report"
)

var createFileFunc = func(path string) (io.WriteCloser, error) { return os.Create(path) } // mockable

func (cli *commandLine) export(path string) (err error) {
	store, err := cli.openStore(cli.conf)
	if err != nil {
		return errors.Wrap(err, "opening store")
	}
	defer func() { _ = store.Close() }()

	var w io.Writer = cli.out
	if path != "" {
		file, cErr := createFileFunc(path)
		if cErr != nil {
			return errors.Wrap(cErr, "creating export file")
		}
		defer func() {
			if cErr := file.Close(); cErr != nil && err == nil {
				err = errors.Wrap(cErr, "closing export file")
			}
		}()
		w = file
	}

	svc := report.NewService(store.Students, store.Courses, store.Grades)
	return svc.ExportGrades(context.Background(), w)
}
