// Command procdump loads a program, prints it (disassembly, data
// segment, CPU state) and writes it back out as dump.bin — the round
// trip the machine.Error-free "core" path never exercises itself.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/abernard/procvm/pkg/debugger"
	"github.com/abernard/procvm/pkg/disasm"
	"github.com/abernard/procvm/pkg/loader"
	"github.com/abernard/procvm/pkg/machine"
)

func main() {
	app := &cli.App{
		Name:  "procdump",
		Usage: "disassemble and dump a procvm program",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "program file to read"},
			&cli.BoolFlag{Name: "embedded", Usage: "read --file as a paste-ready embedded listing instead of the binary format"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "dump.bin", Usage: "binary dump output path"},
			&cli.BoolFlag{Name: "no-dump", Usage: "print only, skip writing the binary dump"},
			&cli.BoolFlag{Name: "literal", Usage: "also print the paste-ready embedded listing"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
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

	debugger.PrintProgram(os.Stdout, m)
	debugger.PrintData(os.Stdout, m)
	debugger.PrintCPU(os.Stdout, m)

	if c.Bool("literal") {
		fmt.Println(disasm.FormatLiteral(m))
	}

	if c.Bool("no-dump") {
		return nil
	}
	out, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer out.Close()
	return loader.Dump(out, m)
}
