package cpu

import "github.com/valerio/go-psx/psx/bit"

// Exception causes, placed in Cause bits [6:2] (§4.4).
const (
	ExcInterrupt  uint32 = 0
	ExcAddrErrL   uint32 = 4
	ExcAddrErrS   uint32 = 5
	ExcIBusError  uint32 = 6
	ExcDBusError  uint32 = 7
	ExcSyscall    uint32 = 8
	ExcBreakpoint uint32 = 9
	ExcRI         uint32 = 10
	ExcCpU        uint32 = 11
	ExcOverflow   uint32 = 12
)

// COP0 register numbers with defined semantics (§3). The rest of the
// 32-register file exists only as inert storage for MTC0/MFC0.
const (
	cop0BadVaddr = 8
	cop0SR       = 12
	cop0Cause    = 13
	cop0EPC      = 14
	cop0PRID     = 15
)

// SR bit positions.
const (
	srIEc uint32 = 1 << 0
	srKUc uint32 = 1 << 1
	srIEp uint32 = 1 << 2
	srKUp uint32 = 1 << 3
	srIEo uint32 = 1 << 4
	srKUo uint32 = 1 << 5
	srIM  uint32 = 0xFF << 8
	srISC uint32 = 1 << 16
	srBEV uint32 = 1 << 22
)

// COP0 is the system-control coprocessor: Status, Cause, EPC, BadVaddr and
// the remaining registers kept only for software compatibility (§3, §4.4).
type COP0 struct {
	regs [32]uint32
}

// NewCOP0 creates a COP0 block with PRID set and BEV asserted, matching the
// processor's state immediately after reset.
func NewCOP0() *COP0 {
	c := &COP0{}
	c.regs[cop0PRID] = 0x00000002
	c.regs[cop0SR] = srBEV
	return c
}

func (c *COP0) Read(reg uint32) uint32  { return c.regs[reg&0x1F] }
func (c *COP0) write(reg uint32, value uint32) {
	switch reg {
	case cop0SR:
		c.regs[cop0SR] = value
	case cop0Cause:
		// Only the software-interrupt bits [9:8] are writable (§4.3 COP0 row).
		c.regs[cop0Cause] = (c.regs[cop0Cause] &^ 0x300) | (value & 0x300)
	default:
		c.regs[reg&0x1F] = value
	}
}

func (c *COP0) sr() uint32    { return c.regs[cop0SR] }
func (c *COP0) isc() bool     { return c.sr()&srISC != 0 }
func (c *COP0) iecEnabled() bool { return c.sr()&srIEc != 0 }
func (c *COP0) bev() bool     { return c.sr()&srBEV != 0 }

// interruptMask returns the SR[15:8] per-line interrupt mask.
func (c *COP0) interruptMask() uint32 { return bit.Extract(c.sr(), 15, 8) }

// enterException pushes the mode/IE stack, records EPC/Cause/BadVaddr, and
// returns the vector to jump to (§4.4).
func (c *COP0) enterException(cause uint32, epc uint32, inDelaySlot bool, badVaddr uint32, hasBadVaddr bool) uint32 {
	sr := c.sr()
	// shift the 3-level (KU, IE) stack left by one pair, clearing the new
	// current level's interrupt enable.
	low6 := sr & 0x3F
	shifted := (low6 << 2) & 0x3F
	sr = (sr &^ 0x3F) | shifted
	c.regs[cop0SR] = sr

	if inDelaySlot {
		epc -= 4
	}
	c.regs[cop0EPC] = epc

	causeReg := c.regs[cop0Cause] &^ 0x7C
	causeReg |= (cause << 2) & 0x7C
	if inDelaySlot {
		causeReg |= 1 << 31
	} else {
		causeReg &^= 1 << 31
	}
	c.regs[cop0Cause] = causeReg

	if hasBadVaddr {
		c.regs[cop0BadVaddr] = badVaddr
	}

	if c.bev() {
		return 0xBFC00180
	}
	return 0x80000080
}

// rfe pops the mode/IE stack (§4.4). It does not itself change PC; the
// exception handler returns via an explicit JR to EPC.
func (c *COP0) rfe() {
	sr := c.sr()
	low6 := sr & 0x3F
	restored := low6 >> 2
	c.regs[cop0SR] = (sr &^ 0x3F) | restored
}
