// Command procvm loads a program and runs it to completion (or to a
// fatal error), optionally dropping into the interactive debugger
// before the first instruction.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/abernard/procvm/pkg/debugger"
	"github.com/abernard/procvm/pkg/loader"
	"github.com/abernard/procvm/pkg/machine"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	app := &cli.App{
		Name:  "procvm",
		Usage: "run a procvm program to completion",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "program file to run"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "start in single-step debug mode"},
			&cli.BoolFlag{Name: "embedded", Usage: "read --file as a paste-ready embedded listing instead of the binary format"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "trace every instruction"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		var merr *machine.Error
		if errors.As(err, &merr) {
			fmt.Fprintln(os.Stderr, merr.Error())
			os.Exit(1)
		}
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		logrus.SetLevel(logrus.TraceLevel)
	}

	fp, err := os.Open(c.String("file"))
	if err != nil {
		return err
	}
	defer fp.Close()

	var m *machine.Machine
	if c.Bool("embedded") {
		m, err = loader.ReadEmbedded(fp)
	} else {
		m, err = loader.ReadProgram(fp)
	}
	if err != nil {
		return err
	}

	opts := machine.RunOptions{Debug: c.Bool("debug")}
	if opts.Debug {
		opts.Debugger = &debugger.Debugger{In: os.Stdin, Out: os.Stdout}
	}
	return machine.Run(m, opts)
}
