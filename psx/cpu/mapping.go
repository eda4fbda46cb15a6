package cpu

import "github.com/valerio/go-psx/psx/bus"

// opcodeFunc executes one decoded instruction. It returns the register the
// instruction wrote directly (not via the load-delay slot) and whether it
// wrote one at all — Step needs this to resolve the ALU-wins-over-load
// conflict in invariant 4.
type opcodeFunc func(c *CPU, m *bus.Bus, instr instruction) (reg uint32, wrote bool)

// primary opcode table, indexed by bits [31:26]. Opcodes 0x00 (SPECIAL) and
// 0x01 (REGIMM) are dispatched separately since they carry their own
// secondary field.
var primaryTable = [64]opcodeFunc{
	0x02: opJ,
	0x03: opJal,
	0x04: opBeq,
	0x05: opBne,
	0x06: opBlez,
	0x07: opBgtz,
	0x08: opAddi,
	0x09: opAddiu,
	0x0A: opSlti,
	0x0B: opSltiu,
	0x0C: opAndi,
	0x0D: opOri,
	0x0E: opXori,
	0x0F: opLui,
	0x10: opCop0,
	0x20: opLb,
	0x21: opLh,
	0x22: opLwl,
	0x23: opLw,
	0x24: opLbu,
	0x25: opLhu,
	0x26: opLwr,
	0x28: opSb,
	0x29: opSh,
	0x2A: opSwl,
	0x2B: opSw,
	0x2E: opSwr,
}

// SPECIAL table, indexed by bits [5:0] when opcode == 0.
var specialTable = [64]opcodeFunc{
	0x00: opSll,
	0x02: opSrl,
	0x03: opSra,
	0x04: opSllv,
	0x06: opSrlv,
	0x07: opSrav,
	0x08: opJr,
	0x09: opJalr,
	0x0C: opSyscall,
	0x0D: opBreak,
	0x10: opMfhi,
	0x11: opMthi,
	0x12: opMflo,
	0x13: opMtlo,
	0x18: opMult,
	0x19: opMultu,
	0x1A: opDiv,
	0x1B: opDivu,
	0x20: opAdd,
	0x21: opAddu,
	0x22: opSub,
	0x23: opSubu,
	0x24: opAnd,
	0x25: opOr,
	0x26: opXor,
	0x27: opNor,
	0x2A: opSlt,
	0x2B: opSltu,
}

// execute decodes the primary/secondary opcode fields and dispatches to the
// matching handler, raising a reserved-instruction exception for anything
// unmapped (§9 open question: this spec picks the exception route).
func (c *CPU) execute(m *bus.Bus, instr instruction) (uint32, bool) {
	switch instr.opcode {
	case 0x00:
		fn := specialTable[instr.funct]
		if fn == nil {
			return c.reservedInstruction(m, instr)
		}
		return fn(c, m, instr)
	case 0x01:
		return opBcondz(c, m, instr)
	default:
		fn := primaryTable[instr.opcode]
		if fn == nil {
			return c.reservedInstruction(m, instr)
		}
		return fn(c, m, instr)
	}
}

func (c *CPU) reservedInstruction(m *bus.Bus, instr instruction) (uint32, bool) {
	c.log.Debug("cpu: reserved instruction", "pc", c.pcInstr, "word", instr.raw)
	c.raiseException(m, ExcRI, c.pcInstr, false, 0)
	return 0, false
}
