package machine

// Instruction is the decoded form of a packed 32-bit word. Bit layout,
// MSB to LSB:
//
//	cop(6) immediate(1) indexed(1) regcond(8) payload(16)
//
// The payload's 16 bits are interpreted three different ways depending
// on the immediate/indexed flags, per the addressing modes documented
// in the package's instruction set:
//
//   - immediate: payload is a signed 16-bit literal (Value).
//   - absolute:  payload's low bits are an unsigned address (Address).
//   - indexed:   payload packs an 8-bit register index (RIndex) and
//     a signed 8-bit offset (Offset); the effective address is
//     registers[RIndex] + Offset.
//
// DecodeFields fills in all three views regardless of which one the
// opcode/flags actually select, so the caller picks the relevant one.
type Instruction struct {
	Raw       Word
	Op        Opcode
	Immediate bool
	Indexed   bool
	RegCond   uint8 // destination/source register, or branch Cond

	Value   int32  // immediate form
	Address uint32 // absolute form
	RIndex  uint8  // indexed form
	Offset  int8   // indexed form
}

// DecodeFields decodes a raw word into its component fields. This
// function is total: every 32-bit word decodes without error, even
// when the resulting Instruction is meaningless (unknown opcode,
// illegal mode combination). Those are rejected later, at execution.
func DecodeFields(word Word) Instruction {
	payload := uint16(word)
	instr := Instruction{
		Raw:       word,
		Op:        Opcode((word >> 26) & 0x3f),
		Immediate: (word>>25)&1 != 0,
		Indexed:   (word>>24)&1 != 0,
		RegCond:   uint8((word >> 16) & 0xff),
		Value:     int32(int16(payload)),
		Address:   uint32(payload),
		RIndex:    uint8(payload >> 8),
		Offset:    int8(payload & 0xff),
	}
	return instr
}

// Register returns the register field masked into a valid index,
// for use on RegCond when it names a register rather than a branch
// condition (LOAD/STORE/ADD/SUB/PUSH destination or source).
func (instr Instruction) Register() uint8 {
	return instr.RegCond & regMask
}

// Cond interprets RegCond as a branch/call predicate.
func (instr Instruction) Cond() Cond {
	return Cond(instr.RegCond)
}

// EffectiveAddress computes the address a non-immediate instruction
// operates on: registers[RIndex]+Offset for the indexed form, or the
// literal Address for the absolute form. The result is not masked —
// a register+offset sum that is negative or overflows int32 wraps
// into a large unsigned value; the bounds check in the executor is
// what rejects that, not this function.
func EffectiveAddress(m *Machine, instr Instruction) uint32 {
	if instr.Indexed {
		base := m.Registers[instr.RIndex&regMask]
		return uint32(base + int32(instr.Offset))
	}
	return instr.Address
}
