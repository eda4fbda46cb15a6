package cpu

import (
	"math"

	"github.com/valerio/go-psx/psx/bus"
)

// --- Shifts ---

func opSll(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.get(instr.rt)<<instr.shamt)
	return instr.rd, true
}

func opSrl(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.get(instr.rt)>>instr.shamt)
	return instr.rd, true
}

func opSra(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, uint32(int32(c.regs.get(instr.rt))>>instr.shamt))
	return instr.rd, true
}

func opSllv(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	shift := c.regs.get(instr.rs) & 0x1F
	c.regs.set(instr.rd, c.regs.get(instr.rt)<<shift)
	return instr.rd, true
}

func opSrlv(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	shift := c.regs.get(instr.rs) & 0x1F
	c.regs.set(instr.rd, c.regs.get(instr.rt)>>shift)
	return instr.rd, true
}

func opSrav(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	shift := c.regs.get(instr.rs) & 0x1F
	c.regs.set(instr.rd, uint32(int32(c.regs.get(instr.rt))>>shift))
	return instr.rd, true
}

// --- Jumps ---

func opJr(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.armBranch(c.regs.get(instr.rs))
	return 0, false
}

func opJalr(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	target := c.regs.get(instr.rs)
	dest := instr.rd
	if dest == 0 {
		dest = 31
	}
	c.regs.set(dest, c.pcNext)
	c.armBranch(target)
	return dest, true
}

// --- ALU register-register ---

func opAdd(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	a := int32(c.regs.get(instr.rs))
	b := int32(c.regs.get(instr.rt))
	result := a + b
	if ((a ^ b) >= 0) && ((a ^ result) < 0) {
		c.raiseException(m, ExcOverflow, c.pcInstr, false, 0)
		return 0, false
	}
	c.regs.set(instr.rd, uint32(result))
	return instr.rd, true
}

func opAddu(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.get(instr.rs)+c.regs.get(instr.rt))
	return instr.rd, true
}

func opSub(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	a := int32(c.regs.get(instr.rs))
	b := int32(c.regs.get(instr.rt))
	result := a - b
	if ((a ^ b) < 0) && ((a ^ result) < 0) {
		c.raiseException(m, ExcOverflow, c.pcInstr, false, 0)
		return 0, false
	}
	c.regs.set(instr.rd, uint32(result))
	return instr.rd, true
}

func opSubu(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.get(instr.rs)-c.regs.get(instr.rt))
	return instr.rd, true
}

func opAnd(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.get(instr.rs)&c.regs.get(instr.rt))
	return instr.rd, true
}

func opOr(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.get(instr.rs)|c.regs.get(instr.rt))
	return instr.rd, true
}

func opXor(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.get(instr.rs)^c.regs.get(instr.rt))
	return instr.rd, true
}

func opNor(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, ^(c.regs.get(instr.rs) | c.regs.get(instr.rt)))
	return instr.rd, true
}

func opSlt(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	v := uint32(0)
	if int32(c.regs.get(instr.rs)) < int32(c.regs.get(instr.rt)) {
		v = 1
	}
	c.regs.set(instr.rd, v)
	return instr.rd, true
}

func opSltu(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	v := uint32(0)
	if c.regs.get(instr.rs) < c.regs.get(instr.rt) {
		v = 1
	}
	c.regs.set(instr.rd, v)
	return instr.rd, true
}

// --- HI/LO ---

func opMfhi(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.hi)
	return instr.rd, true
}

func opMthi(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.hi = c.regs.get(instr.rs)
	return 0, false
}

func opMflo(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rd, c.regs.lo)
	return instr.rd, true
}

func opMtlo(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.lo = c.regs.get(instr.rs)
	return 0, false
}

// --- Multiply/divide ---

func opMult(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	a := int64(int32(c.regs.get(instr.rs)))
	b := int64(int32(c.regs.get(instr.rt)))
	result := uint64(a * b)
	c.regs.lo = uint32(result)
	c.regs.hi = uint32(result >> 32)
	return 0, false
}

func opMultu(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	result := uint64(c.regs.get(instr.rs)) * uint64(c.regs.get(instr.rt))
	c.regs.lo = uint32(result)
	c.regs.hi = uint32(result >> 32)
	return 0, false
}

func opDiv(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	num := int32(c.regs.get(instr.rs))
	den := int32(c.regs.get(instr.rt))

	switch {
	case den == 0:
		c.regs.hi = uint32(num)
		if num >= 0 {
			c.regs.lo = 0xFFFFFFFF
		} else {
			c.regs.lo = 1
		}
	case num == math.MinInt32 && den == -1:
		c.regs.lo = 0x80000000
		c.regs.hi = 0
	default:
		c.regs.lo = uint32(num / den)
		c.regs.hi = uint32(num % den)
	}
	return 0, false
}

func opDivu(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	num := c.regs.get(instr.rs)
	den := c.regs.get(instr.rt)

	if den == 0 {
		c.regs.lo = 0xFFFFFFFF
		c.regs.hi = num
		return 0, false
	}
	c.regs.lo = num / den
	c.regs.hi = num % den
	return 0, false
}

// --- Exceptions ---

func opSyscall(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	c.raiseException(m, ExcSyscall, c.pcInstr, false, 0)
	return 0, false
}

func opBreak(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	c.raiseException(m, ExcBreakpoint, c.pcInstr, false, 0)
	return 0, false
}
