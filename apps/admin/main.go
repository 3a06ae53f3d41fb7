package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/storage/database"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// start CLI
	cli := commandLine{
		conf:      core.NewConfig(),
		out:       os.Stdout,
		openStore: openSQLStore,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

// openSQLStore requires the database: admin commands never fall back to memory.
func openSQLStore(conf *core.Config) (*database.Store, error) {
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.WaitReady(context.Background(), db, 30); err != nil {
		_ = db.Close()
		return nil, err
	}
	return database.NewSQLStore(db), nil
}
