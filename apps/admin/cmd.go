package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf      *core.Config
	out       io.Writer
	openStore func(conf *core.Config) (*database.Store, error)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate [-prompt] up|down|version|steps N|force V - manage the database schema")
	fmt.Fprintln(cli.out, "  export [-o FILE] - write all grades as CSV (stdout by default)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	migrateCmd := flag.NewFlagSet("migrate", flag.ContinueOnError)
	migrateCmd.SetOutput(cli.out)
	migratePrompt := migrateCmd.Bool("prompt", false, "Prompt for the admin database password.")

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCmd.SetOutput(cli.out)
	exportFile := exportCmd.String("o", "", "The file to write to. Defaults to stdout.")

	switch args[1] {
	case "migrate":
		if err := migrateCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if migrateCmd.NArg() == 0 {
			migrateCmd.Usage()
			return errHelp
		}
		if *migratePrompt {
			if err := cli.promptPassword(); err != nil {
				return err
			}
		}
		return cli.migrate(migrateCmd.Args())
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.export(*exportFile)
	default:
		cli.printUsage()
		return errHelp
	}
}

// promptPassword reads the password of the account migrations run with.
func (cli *commandLine) promptPassword() error {
	fmt.Fprint(cli.out, "Enter database password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if cli.conf.Database.AdminUser != "" {
		cli.conf.Database.AdminPassword = string(pwd)
	} else {
		cli.conf.Database.Password = string(pwd)
	}
	return nil
}
