// Package debugger implements the interactive single-step REPL and
// the textual inspectors it (and the dump tool) render state with.
package debugger

import (
	"fmt"
	"io"

	"github.com/abernard/procvm/pkg/disasm"
	"github.com/abernard/procvm/pkg/machine"
)

// PrintCPU writes PC, CC, and every register in hex and decimal.
func PrintCPU(w io.Writer, m *machine.Machine) {
	fmt.Fprintf(w, "\n*** CPU ***\nPC:  0x%08x   CC: %s\n", m.PC, m.CC)
	for i, reg := range m.Registers {
		if i%3 == 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "R%02d: 0x%08x %d\t", i, uint32(reg), reg)
	}
	fmt.Fprintln(w, "\n")
}

// PrintData writes every cell of the data segment in hex and
// decimal, with DataSize and DataEnd in the header.
func PrintData(w io.Writer, m *machine.Machine) {
	fmt.Fprintf(w, "*** DATA (size %d, end = 0x%08x (%d)) ***", m.DataSize(), m.DataEnd, m.DataEnd)
	for i, cell := range m.Data {
		if i%3 == 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "0x%04x: 0x%08x %d\t", i, uint32(cell), uint32(cell))
	}
	fmt.Fprintln(w, "\n")
}

// PrintProgram writes each instruction by address, raw word, and
// disassembled form.
func PrintProgram(w io.Writer, m *machine.Machine) {
	fmt.Fprintf(w, "\n*** PROGRAM (size: %d) ***", m.TextSize())
	for i, instr := range m.Text {
		fmt.Fprintf(w, "\n0x%04x: 0x%08x\t%s", i, uint32(instr.Raw), disasm.Disassemble(instr))
	}
	fmt.Fprintln(w, "\n")
}
