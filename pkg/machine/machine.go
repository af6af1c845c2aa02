package machine

// Machine is a virtual machine instance: register file, condition
// code, program counter, stack pointer, and the text/data segments.
//
// A Machine is owned exclusively by whatever loop is driving it (see
// Run); there is no internal locking and none is needed, since the
// loader writes it once and the simulation loop afterward is the
// sole mutator.
type Machine struct {
	Registers [NRegisters]int32
	PC        uint32
	CC        CC
	SP        uint32

	Text    []Instruction // immutable after New
	Data    []Word        // [0,DataEnd) static, [DataEnd,len(Data)) stack
	DataEnd uint32
}

// New constructs a machine from raw text and data arrays, the one-shot
// initialization every loader performs: segments are copied (so the
// caller's slices may be reused or discarded), registers start at
// zero, PC=0, CC=CCUnknown, and SP is set to the top of the stack
// region. If the supplied data is too small to leave at least
// MinStackSize words of stack from DataEnd upward, datasize is padded
// upward; the caller's data is never truncated.
func New(text []Instruction, data []Word, dataEnd uint32) *Machine {
	datasize := uint32(len(data))
	if datasize < dataEnd || datasize-dataEnd < MinStackSize {
		datasize = dataEnd + MinStackSize
	}

	m := &Machine{
		Text:    append([]Instruction(nil), text...),
		Data:    make([]Word, datasize),
		DataEnd: dataEnd,
		CC:      CCUnknown,
	}
	copy(m.Data, data)
	m.SP = datasize - 1
	return m
}

// TextSize is the number of instructions in the text segment.
func (m *Machine) TextSize() uint32 {
	return uint32(len(m.Text))
}

// DataSize is the total size of the data segment, static region plus
// stack region.
func (m *Machine) DataSize() uint32 {
	return uint32(len(m.Data))
}
