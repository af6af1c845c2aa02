// Package disasm renders decoded instructions as assembly-like text,
// for the debugger, the inspectors, and the dump tool. It never
// mutates a machine.Machine; it only reads.
package disasm

import (
	"fmt"

	"github.com/abernard/procvm/pkg/machine"
)

var opcodeNames = [...]string{
	"ILLOP", "NOP", "LOAD", "STORE", "ADD", "SUB",
	"BRANCH", "CALL", "RET", "PUSH", "POP", "HALT",
}

var condNames = [...]string{"NC", "EQ", "NE", "GT", "GE", "LT", "LE"}

func opcodeName(op machine.Opcode) string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("OP%d", op)
}

func condName(c machine.Cond) string {
	if int(c) < len(condNames) {
		return condNames[c]
	}
	return fmt.Sprintf("C%d", c)
}

// operand renders the "register, operand" pair shared by LOAD/ADD/SUB.
// When the mode is indexed with a zero offset, it is rendered exactly
// like an absolute address — this is the original dump tool's
// rendering quirk, carried forward deliberately (it only affects
// display, never EffectiveAddress).
func operand(instr machine.Instruction) string {
	reg := instr.Register()
	switch {
	case instr.Immediate:
		return fmt.Sprintf("R%02d, #%d", reg, instr.Value)
	case !instr.Indexed || instr.Offset == 0:
		return fmt.Sprintf("R%02d, @0x%04x", reg, instr.Address)
	default:
		return fmt.Sprintf("R%02d, %d[R%02d]", reg, instr.Offset, instr.RIndex&0x0f)
	}
}

// target renders the single-address operand BRANCH/CALL/PUSH/POP use.
func target(instr machine.Instruction) string {
	switch {
	case instr.Immediate:
		return fmt.Sprintf("#%d", instr.Value)
	case !instr.Indexed || instr.Offset == 0:
		return fmt.Sprintf("@0x%04x", instr.Address)
	default:
		return fmt.Sprintf("%d[R%02d]", instr.Offset, instr.RIndex&0x0f)
	}
}

// Disassemble renders instr as assembly-like text, e.g.
// "LOAD R01, @0x0004" or "BRANCH EQ, @0x0010".
func Disassemble(instr machine.Instruction) string {
	switch instr.Op {
	case machine.OpILLOP, machine.OpNOP, machine.OpRET, machine.OpHALT:
		return opcodeName(instr.Op)
	case machine.OpLOAD, machine.OpADD, machine.OpSUB:
		return fmt.Sprintf("%s %s", opcodeName(instr.Op), operand(instr))
	case machine.OpSTORE:
		reg := instr.Register()
		if instr.Immediate {
			return "STORE <illegal: immediate>"
		}
		if !instr.Indexed || instr.Offset == 0 {
			return fmt.Sprintf("STORE R%02d, @0x%04x", reg, instr.Address)
		}
		return fmt.Sprintf("STORE R%02d, %d[R%02d]", reg, instr.Offset, instr.RIndex&0x0f)
	case machine.OpBRANCH, machine.OpCALL:
		return fmt.Sprintf("%s %s, %s", opcodeName(instr.Op), condName(instr.Cond()), target(instr))
	case machine.OpPUSH:
		return fmt.Sprintf("PUSH %s", target(instr))
	case machine.OpPOP:
		return fmt.Sprintf("POP %s", target(instr))
	default:
		return fmt.Sprintf("<unknown opcode %d: 0x%08x>", instr.Op, uint32(instr.Raw))
	}
}
