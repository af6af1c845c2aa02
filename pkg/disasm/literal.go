package disasm

import (
	"fmt"
	"strings"

	"github.com/abernard/procvm/pkg/machine"
)

// FormatLiteral renders m's text and data segments as a paste-ready
// Go-ish listing, four words per line, the way the original dump tool
// printed a C array literal to stdout alongside writing dump.bin.
// pkg/loader.ReadEmbedded parses exactly this format back in.
func FormatLiteral(m *machine.Machine) string {
	var b strings.Builder

	fmt.Fprintln(&b, "Instruction text[] = {")
	writeWords(&b, textWords(m))
	fmt.Fprintln(&b, "};")
	fmt.Fprintf(&b, "unsigned textsize = %d\n\n", m.TextSize())

	fmt.Fprintln(&b, "Word data[] = {")
	writeWords(&b, dataWords(m))
	fmt.Fprintln(&b, "};")
	fmt.Fprintf(&b, "unsigned datasize = %d\n", m.DataSize())
	fmt.Fprintf(&b, "unsigned dataend = %d\n", m.DataEnd)

	return b.String()
}

func textWords(m *machine.Machine) []uint32 {
	out := make([]uint32, len(m.Text))
	for i, instr := range m.Text {
		out[i] = uint32(instr.Raw)
	}
	return out
}

func dataWords(m *machine.Machine) []uint32 {
	out := make([]uint32, len(m.Data))
	for i, cell := range m.Data {
		out[i] = uint32(cell)
	}
	return out
}

func writeWords(b *strings.Builder, words []uint32) {
	for i, w := range words {
		if i%4 == 0 {
			b.WriteByte('\t')
		}
		fmt.Fprintf(b, "0x%08x, ", w)
		if i%4 == 3 {
			b.WriteByte('\n')
		}
	}
	if len(words)%4 != 0 {
		b.WriteByte('\n')
	}
}
