package debugger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abernard/procvm/pkg/machine"
)

// Debugger is the interactive single-step REPL invoked by
// machine.Run between instructions while debug mode is on. It reads
// commands from In and writes prompts/output to Out; both are plain
// io.Reader/io.Writer so tests can drive it with a strings.Reader and
// capture its output with a bytes.Buffer, with no globals involved.
type Debugger struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

var _ machine.Debugger = (*Debugger)(nil)

// Ask implements machine.Debugger. It re-prompts after any command
// other than 'c' (leave debug mode) or 's'/RET (advance one
// instruction), so a single Ask call can print several inspector
// views before control returns to the simulation loop.
func (d *Debugger) Ask(m *machine.Machine) (bool, error) {
	if d.reader == nil {
		d.reader = bufio.NewReader(d.In)
	}
	for {
		fmt.Fprint(d.Out, "DEBUG?")
		line, err := d.reader.ReadString('\n')
		if line == "" {
			if err == io.EOF {
				return false, nil
			}
			if err != nil {
				return false, err
			}
		}

		cmd := byte('\n')
		if trimmed := strings.TrimRight(line, "\r\n"); len(trimmed) > 0 {
			cmd = trimmed[0]
		}

		switch cmd {
		case 'h':
			d.printHelp()
		case 'c':
			return false, nil
		case 's', '\n':
			return true, nil
		case 'r':
			PrintCPU(d.Out, m)
		case 'd':
			PrintData(d.Out, m)
		case 't', 'p':
			PrintProgram(d.Out, m)
		case 'm':
			PrintCPU(d.Out, m)
			PrintData(d.Out, m)
		default:
			// unrecognized command: silently re-prompt
		}

		if err == io.EOF {
			return false, nil
		}
	}
}

func (d *Debugger) printHelp() {
	fmt.Fprint(d.Out, "Available commands:\n"+
		"       h       help\n"+
		"       c       continue (exit interactive debug mode)\n"+
		"       s       step by step (next instruction)\n"+
		"       RET     step by step (next instruction)\n"+
		"       r       print registers\n"+
		"       d       print data memory\n"+
		"       t       print text (program) memory\n"+
		"       p       print text (program) memory\n"+
		"       m       print registers and data memory\n")
}
