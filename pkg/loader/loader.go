// Package loader reads and writes the binary program file format and
// the paste-ready embedded-array format, and turns them into a
// machine.Machine. The loader is an external collaborator of the
// executor core: it is the only place raw arrays are built from
// outside input before being handed, once, to machine.New.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/abernard/procvm/pkg/machine"
)

// ReadProgram reads the binary program file format from r:
//
//	u32 textsize, u32 datasize, u32 dataend  (little-endian header)
//	textsize * u32                           (raw instruction words)
//	datasize * u32                           (initial data words)
//
// and returns a freshly constructed Machine. If the file's stack
// region (datasize-dataend) is smaller than machine.MinStackSize,
// machine.New pads datasize upward; the source file itself is never
// rewritten.
func ReadProgram(r io.Reader) (*machine.Machine, error) {
	var header [3]uint32
	for i := range header {
		if err := binary.Read(r, binary.LittleEndian, &header[i]); err != nil {
			return nil, fmt.Errorf("loader: reading header word %d: %w", i, err)
		}
	}
	textsize, datasize, dataend := header[0], header[1], header[2]

	rawText := make([]uint32, textsize)
	if err := binary.Read(r, binary.LittleEndian, rawText); err != nil {
		return nil, fmt.Errorf("loader: reading text segment: %w", err)
	}
	text := make([]machine.Instruction, textsize)
	for i, w := range rawText {
		text[i] = machine.DecodeFields(machine.Word(w))
	}

	rawData := make([]uint32, datasize)
	if err := binary.Read(r, binary.LittleEndian, rawData); err != nil {
		return nil, fmt.Errorf("loader: reading data segment: %w", err)
	}
	data := make([]machine.Word, datasize)
	for i, w := range rawData {
		data[i] = machine.Word(w)
	}

	return machine.New(text, data, dataend), nil
}

// Dump writes m back out in the same layout ReadProgram reads,
// reflecting the machine's *current* state rather than the original
// input — this is what makes dump.bin a round-trip artifact (§8
// property 3). When machine.New padded a short stack region at load
// time, the padded datasize and data segment are what get written.
func Dump(w io.Writer, m *machine.Machine) error {
	header := [3]uint32{m.TextSize(), m.DataSize(), m.DataEnd}
	for i, word := range header {
		if err := binary.Write(w, binary.LittleEndian, word); err != nil {
			return fmt.Errorf("loader: writing header word %d: %w", i, err)
		}
	}
	for _, instr := range m.Text {
		if err := binary.Write(w, binary.LittleEndian, uint32(instr.Raw)); err != nil {
			return fmt.Errorf("loader: writing text segment: %w", err)
		}
	}
	for _, cell := range m.Data {
		if err := binary.Write(w, binary.LittleEndian, uint32(cell)); err != nil {
			return fmt.Errorf("loader: writing data segment: %w", err)
		}
	}
	return nil
}
