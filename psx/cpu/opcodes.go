package cpu

import "github.com/valerio/go-psx/psx/bus"

// --- Jumps ---

func opJ(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	target := (c.pc & 0xF0000000) | (instr.target << 2)
	c.armBranch(target)
	return 0, false
}

func opJal(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	target := (c.pc & 0xF0000000) | (instr.target << 2)
	c.regs.set(31, c.pcNext)
	c.armBranch(target)
	return 31, true
}

// --- Branches ---

func branchTarget(c *CPU, instr instruction) uint32 {
	return c.pc + (signExtend16(instr.imm16) << 2)
}

func opBeq(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	if c.regs.get(instr.rs) == c.regs.get(instr.rt) {
		c.armBranch(branchTarget(c, instr))
	}
	return 0, false
}

func opBne(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	if c.regs.get(instr.rs) != c.regs.get(instr.rt) {
		c.armBranch(branchTarget(c, instr))
	}
	return 0, false
}

func opBlez(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	if int32(c.regs.get(instr.rs)) <= 0 {
		c.armBranch(branchTarget(c, instr))
	}
	return 0, false
}

func opBgtz(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	if int32(c.regs.get(instr.rs)) > 0 {
		c.armBranch(branchTarget(c, instr))
	}
	return 0, false
}

// opBcondz handles the four REGIMM branch-on-compare-to-zero variants,
// whose test and linking behavior are both encoded in rt (§4.3).
func opBcondz(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	negative := int32(c.regs.get(instr.rs)) < 0
	takeBranch := negative
	if instr.rt&1 != 0 {
		takeBranch = !negative // GEZ variants
	}

	link := (instr.rt>>1)&0xF == 0x8
	wrote := false
	if link {
		c.regs.set(31, c.pcNext)
		wrote = true
	}

	if takeBranch {
		c.armBranch(branchTarget(c, instr))
	}
	if wrote {
		return 31, true
	}
	return 0, false
}

// --- ALU immediate ---

func opAddi(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	a := int32(c.regs.get(instr.rs))
	b := int32(signExtend16(instr.imm16))
	result := a + b
	if ((a ^ b) >= 0) && ((a ^ result) < 0) {
		c.raiseException(m, ExcOverflow, c.pcInstr, false, 0)
		return 0, false
	}
	c.regs.set(instr.rt, uint32(result))
	return instr.rt, true
}

func opAddiu(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	result := c.regs.get(instr.rs) + signExtend16(instr.imm16)
	c.regs.set(instr.rt, result)
	return instr.rt, true
}

func opSlti(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	v := uint32(0)
	if int32(c.regs.get(instr.rs)) < int32(signExtend16(instr.imm16)) {
		v = 1
	}
	c.regs.set(instr.rt, v)
	return instr.rt, true
}

func opSltiu(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	v := uint32(0)
	if c.regs.get(instr.rs) < signExtend16(instr.imm16) {
		v = 1
	}
	c.regs.set(instr.rt, v)
	return instr.rt, true
}

func opAndi(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rt, c.regs.get(instr.rs)&zeroExtend16(instr.imm16))
	return instr.rt, true
}

func opOri(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rt, c.regs.get(instr.rs)|zeroExtend16(instr.imm16))
	return instr.rt, true
}

func opXori(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rt, c.regs.get(instr.rs)^zeroExtend16(instr.imm16))
	return instr.rt, true
}

func opLui(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	c.regs.set(instr.rt, zeroExtend16(instr.imm16)<<16)
	return instr.rt, true
}

// --- Loads/stores ---

func loadAddr(c *CPU, instr instruction) uint32 {
	return c.regs.get(instr.rs) + signExtend16(instr.imm16)
}

func opLb(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	v := uint32(int32(int8(m.Read(bus.Byte, addr))))
	c.enqueueLoad(instr.rt, v)
	return 0, false
}

func opLbu(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	c.enqueueLoad(instr.rt, m.Read(bus.Byte, addr))
	return 0, false
}

func opLh(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	v := uint32(int32(int16(m.Read(bus.Half, addr))))
	c.enqueueLoad(instr.rt, v)
	return 0, false
}

func opLhu(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	c.enqueueLoad(instr.rt, m.Read(bus.Half, addr))
	return 0, false
}

func opLw(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	c.enqueueLoad(instr.rt, m.Read(bus.Word, addr))
	return 0, false
}

// lwlMask/lwlShift and lwrMask/lwrShift implement the little-endian
// unaligned-word merge used by LWL/LWR (§4.3).
var lwlMask = [4]uint32{0x00FFFFFF, 0x0000FFFF, 0x000000FF, 0x00000000}
var lwlShift = [4]uint32{24, 16, 8, 0}
var lwrMask = [4]uint32{0x00000000, 0xFF000000, 0xFFFF0000, 0xFFFFFF00}
var lwrShift = [4]uint32{0, 8, 16, 24}

func opLwl(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	aligned := addr &^ 3
	word := m.Read(bus.Word, aligned)
	idx := addr & 3
	old := c.regs.get(instr.rt)
	merged := (old & lwlMask[idx]) | (word << lwlShift[idx])
	c.enqueueLoad(instr.rt, merged)
	return 0, false
}

func opLwr(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	aligned := addr &^ 3
	word := m.Read(bus.Word, aligned)
	idx := addr & 3
	old := c.regs.get(instr.rt)
	merged := (old & lwrMask[idx]) | (word >> lwrShift[idx])
	c.enqueueLoad(instr.rt, merged)
	return 0, false
}

func opSb(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	m.Write(bus.Byte, addr, c.regs.get(instr.rt), c.COP0.isc())
	return 0, false
}

func opSh(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	m.Write(bus.Half, addr, c.regs.get(instr.rt), c.COP0.isc())
	return 0, false
}

func opSw(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	m.Write(bus.Word, addr, c.regs.get(instr.rt), c.COP0.isc())
	return 0, false
}

var swlMask = [4]uint32{0xFFFFFF00, 0xFFFF0000, 0xFF000000, 0x00000000}
var swlShift = [4]uint32{24, 16, 8, 0}
var swrMask = [4]uint32{0x00000000, 0x000000FF, 0x0000FFFF, 0x00FFFFFF}
var swrShift = [4]uint32{0, 8, 16, 24}

func opSwl(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	aligned := addr &^ 3
	idx := addr & 3
	old := m.Read(bus.Word, aligned)
	rt := c.regs.get(instr.rt)
	merged := (old & swlMask[idx]) | (rt >> swlShift[idx])
	m.Write(bus.Word, aligned, merged, c.COP0.isc())
	return 0, false
}

func opSwr(c *CPU, m *bus.Bus, instr instruction) (uint32, bool) {
	addr := loadAddr(c, instr)
	aligned := addr &^ 3
	idx := addr & 3
	old := m.Read(bus.Word, aligned)
	rt := c.regs.get(instr.rt)
	merged := (old & swrMask[idx]) | (rt << swrShift[idx])
	m.Write(bus.Word, aligned, merged, c.COP0.isc())
	return 0, false
}

// --- COP0 ---

func opCop0(c *CPU, _ *bus.Bus, instr instruction) (uint32, bool) {
	switch instr.rs {
	case 0x00: // MFC0
		c.enqueueLoad(instr.rt, c.COP0.Read(instr.rd))
		return 0, false
	case 0x04: // MTC0
		c.COP0.write(instr.rd, c.regs.get(instr.rt))
		return 0, false
	case 0x10: // CO-format: RFE when funct == 0x10
		if instr.funct == 0x10 {
			c.COP0.rfe()
		}
		return 0, false
	default:
		return 0, false
	}
}
