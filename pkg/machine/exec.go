package machine

// DecodeExecute decodes and applies the effect of instr, which must
// be the instruction fetched at the address the simulation loop has
// already advanced PC past (see Run's sequencing note: PC is
// pre-incremented before DecodeExecute runs). It returns false when
// the machine should halt (the HALT opcode), true to keep running,
// and a non-nil *Error for any fatal condition in §7.
//
// DecodeExecute never panics on a malformed instruction: undecodable
// opcodes and illegal mode combinations are reported as errors, not
// crashes.
func DecodeExecute(m *Machine, instr Instruction) (bool, error) {
	addr := m.PC - 1 // address of instr itself; PC was already advanced
	switch instr.Op {
	case OpILLOP:
		return false, newError(KindIllegal, addr, ErrIllegal)
	case OpNOP:
		return true, nil
	case OpLOAD:
		return load(m, instr, addr)
	case OpSTORE:
		return store(m, instr, addr)
	case OpADD:
		return add(m, instr, addr)
	case OpSUB:
		return sub(m, instr, addr)
	case OpBRANCH:
		return branch(m, instr, addr)
	case OpCALL:
		return call(m, instr, addr)
	case OpRET:
		return ret(m, instr, addr)
	case OpPUSH:
		return push(m, instr, addr)
	case OpPOP:
		return pop(m, instr, addr)
	case OpHALT:
		return false, nil
	default:
		return false, newError(KindUnknown, addr, ErrUnknown)
	}
}

func checkDataAddr(m *Machine, dataAddr uint32, addr uint32) error {
	if dataAddr >= m.DataSize() {
		return newError(KindSegData, addr, ErrSegData)
	}
	return nil
}

func checkNotImmediate(instr Instruction, addr uint32) error {
	if instr.Immediate {
		return newError(KindImmediate, addr, ErrImmediate)
	}
	return nil
}

// checkPush reports whether decrementing SP (as PUSH/CALL do) would
// leave it outside [DataEnd, DataSize): if so, the stack is full and
// the access never happens.
func checkPush(m *Machine, addr uint32) error {
	if m.SP <= m.DataEnd {
		return newError(KindSegStack, addr, ErrSegStack)
	}
	return nil
}

// checkPop reports whether incrementing SP (as POP/RET do) would
// leave it outside [DataEnd, DataSize): if so, the stack is empty.
func checkPop(m *Machine, addr uint32) error {
	if m.SP+1 >= m.DataSize() {
		return newError(KindSegStack, addr, ErrSegStack)
	}
	return nil
}

func refreshCC(m *Machine, reg uint8) {
	v := m.Registers[reg]
	switch {
	case v < 0:
		m.CC = CCNegative
	case v > 0:
		m.CC = CCPositive
	default:
		m.CC = CCZero
	}
}

func conditionRespected(m *Machine, instr Instruction, addr uint32) (bool, error) {
	switch instr.Cond() {
	case CondNC:
		return true, nil
	case CondEQ:
		return m.CC == CCZero, nil
	case CondNE:
		return m.CC != CCZero, nil
	case CondGT:
		return m.CC == CCPositive, nil
	case CondGE:
		return m.CC == CCPositive || m.CC == CCZero, nil
	case CondLT:
		return m.CC == CCNegative, nil
	case CondLE:
		return m.CC == CCNegative || m.CC == CCZero, nil
	default:
		return false, newError(KindCondition, addr, ErrCondition)
	}
}

func load(m *Machine, instr Instruction, addr uint32) (bool, error) {
	reg := instr.Register()
	if instr.Immediate {
		m.Registers[reg] = instr.Value
	} else {
		ea := EffectiveAddress(m, instr)
		if err := checkDataAddr(m, ea, addr); err != nil {
			return false, err
		}
		m.Registers[reg] = int32(m.Data[ea])
	}
	refreshCC(m, reg)
	return true, nil
}

func store(m *Machine, instr Instruction, addr uint32) (bool, error) {
	if err := checkNotImmediate(instr, addr); err != nil {
		return false, err
	}
	ea := EffectiveAddress(m, instr)
	if err := checkDataAddr(m, ea, addr); err != nil {
		return false, err
	}
	m.Data[ea] = Word(m.Registers[instr.Register()])
	return true, nil
}

func add(m *Machine, instr Instruction, addr uint32) (bool, error) {
	reg := instr.Register()
	if instr.Immediate {
		m.Registers[reg] += instr.Value
	} else {
		ea := EffectiveAddress(m, instr)
		if err := checkDataAddr(m, ea, addr); err != nil {
			return false, err
		}
		m.Registers[reg] += int32(m.Data[ea])
	}
	refreshCC(m, reg)
	return true, nil
}

func sub(m *Machine, instr Instruction, addr uint32) (bool, error) {
	reg := instr.Register()
	if instr.Immediate {
		m.Registers[reg] -= instr.Value
	} else {
		ea := EffectiveAddress(m, instr)
		if err := checkDataAddr(m, ea, addr); err != nil {
			return false, err
		}
		m.Registers[reg] -= int32(m.Data[ea])
	}
	refreshCC(m, reg)
	return true, nil
}

func branch(m *Machine, instr Instruction, addr uint32) (bool, error) {
	if err := checkNotImmediate(instr, addr); err != nil {
		return false, err
	}
	ok, err := conditionRespected(m, instr, addr)
	if err != nil {
		return false, err
	}
	if ok {
		m.PC = EffectiveAddress(m, instr)
	}
	return true, nil
}

// call pushes the return address (the already pre-incremented PC,
// i.e. the instruction following this CALL) and transfers control,
// but only once the predicate holds and only if there is still room
// on the stack; a call whose predicate is false never touches SP.
func call(m *Machine, instr Instruction, addr uint32) (bool, error) {
	if err := checkNotImmediate(instr, addr); err != nil {
		return false, err
	}
	ok, err := conditionRespected(m, instr, addr)
	if err != nil {
		return false, err
	}
	if ok {
		if err := checkPush(m, addr); err != nil {
			return false, err
		}
		m.Data[m.SP] = Word(m.PC)
		m.SP--
		m.PC = EffectiveAddress(m, instr)
	}
	return true, nil
}

func ret(m *Machine, instr Instruction, addr uint32) (bool, error) {
	if err := checkPop(m, addr); err != nil {
		return false, err
	}
	m.SP++
	m.PC = uint32(m.Data[m.SP])
	return true, nil
}

func push(m *Machine, instr Instruction, addr uint32) (bool, error) {
	var v Word
	if instr.Immediate {
		v = Word(instr.Value)
	} else {
		ea := EffectiveAddress(m, instr)
		if err := checkDataAddr(m, ea, addr); err != nil {
			return false, err
		}
		v = m.Data[ea]
	}
	if err := checkPush(m, addr); err != nil {
		return false, err
	}
	m.Data[m.SP] = v
	m.SP--
	return true, nil
}

func pop(m *Machine, instr Instruction, addr uint32) (bool, error) {
	if err := checkNotImmediate(instr, addr); err != nil {
		return false, err
	}
	ea := EffectiveAddress(m, instr)
	if err := checkDataAddr(m, ea, addr); err != nil {
		return false, err
	}
	if err := checkPop(m, addr); err != nil {
		return false, err
	}
	m.SP++
	m.Data[ea] = m.Data[m.SP]
	return true, nil
}
