package machine_test

import "github.com/abernard/procvm/pkg/machine"

func encodeNone(op machine.Opcode) machine.Word {
	return machine.Word(uint32(op) << 26)
}

func encodeImmediate(op machine.Opcode, reg uint8, value int16) machine.Word {
	return machine.Word(uint32(op)<<26 | 1<<25 | uint32(reg)<<16 | uint32(uint16(value)))
}

func encodeAbsolute(op machine.Opcode, regcond uint8, address uint16) machine.Word {
	return machine.Word(uint32(op)<<26 | uint32(regcond)<<16 | uint32(address))
}

func encodeIndexed(op machine.Opcode, regcond uint8, rindex uint8, offset int8) machine.Word {
	return machine.Word(uint32(op)<<26 | 1<<24 | uint32(regcond)<<16 | uint32(rindex)<<8 | uint32(uint8(offset)))
}

func instr(w machine.Word) machine.Instruction {
	return machine.DecodeFields(w)
}
