// Package cpu implements the R3000A (MIPS-I) interpreter: fetch/decode/
// execute, the branch-delay and load-delay slots, and COP0 exception entry
// and return (§4.2, §4.4, §4.6).
package cpu

import (
	"log/slog"

	"github.com/valerio/go-psx/psx/bus"
)

// branchState is the small enum §9 asks for in place of booleans.
type branchState int

const (
	branchIdle branchState = iota
	branchArmed
	branchInDelay
)

// pendingLoad is one slot of the two-stage load-delay pipeline (§4.6, §9).
type pendingLoad struct {
	reg   uint32
	value uint32
	valid bool
}

// CPU is the R3000A interpreter state: general registers, HI/LO, the PC
// triple, the branch-delay and load-delay machinery, COP0, and an optional
// trace hook. It never stores a bus reference — Step borrows one for the
// duration of a single instruction (§9).
type CPU struct {
	regs registerFile
	COP0 *COP0

	pc       uint32 // address of the next fetch
	pcNext   uint32 // address after that
	pcInstr  uint32 // address of the instruction currently executing

	branch       branchState
	branchTarget uint32

	loadCurrent pendingLoad // committed at the end of this step
	loadNext    pendingLoad // recorded by this step's load, committed next step

	cycles uint64

	Breakpoints map[uint32]string
	Trace       *Tracer

	log *slog.Logger
}

// ResetVector is the address the R3000A begins execution at (§6).
const ResetVector uint32 = 0xBFC00000

// New creates a CPU positioned at the reset vector.
func New() *CPU {
	c := &CPU{
		COP0: NewCOP0(),
		log:  slog.Default(),
	}
	c.pc = ResetVector
	c.pcNext = ResetVector + 4
	return c
}

// PC returns the address of the instruction about to be fetched.
func (c *CPU) PC() uint32 { return c.pc }

// Reg returns the current value of general register i (0..31).
func (c *CPU) Reg(i uint32) uint32 { return c.regs.get(i) }

// SetReg sets general register i, a no-op for register 0. Exposed for
// tests; the interpreter itself uses regs.set internally.
func (c *CPU) SetReg(i uint32, v uint32) { c.regs.set(i, v) }

// Step executes exactly one instruction, advancing the cycle counter by one
// (§4.2's nine-step sequence).
func (c *CPU) Step(m *bus.Bus) {
	// 1. Promote an armed branch into its delay cycle.
	if c.branch == branchArmed {
		c.branch = branchInDelay
	}

	// 2. Poll interrupt sources before fetching.
	if c.interruptPending(m) {
		c.raiseException(m, ExcInterrupt, c.pc, false, 0)
		c.cycles++
		return
	}

	// 3. Fetch.
	word := m.Read(bus.Word, c.pc)

	// 4. Save pcInstr, advance the PC pair.
	c.pcInstr = c.pc
	c.pc = c.pcNext
	c.pcNext += 4

	// 5. Decode.
	instr := decode(word)

	// 6. Execute.
	writtenReg, wrote := c.execute(m, instr)

	// 7. Retire the load slot unless this step's write targets the same
	// register (the ALU write wins, invariant 4).
	if c.loadCurrent.valid && !(wrote && writtenReg == c.loadCurrent.reg) {
		c.regs.set(c.loadCurrent.reg, c.loadCurrent.value)
	}
	c.loadCurrent = c.loadNext
	c.loadNext = pendingLoad{}

	// 8. Promote the delay-cycle branch.
	if c.branch == branchInDelay {
		c.pc = c.branchTarget
		c.pcNext = c.branchTarget + 4
		c.branch = branchIdle
	}

	// 9. Force register 0 to zero, advance the cycle counter.
	c.regs.forceZero()
	c.cycles++

	if c.Trace != nil {
		c.Trace.observe(c, m)
	}
}

// interruptPending implements §4.2 step 2: a device-level IRQ (already
// masked by I_MASK at the bus) gates through COP0.SR.IEc and the IM2 bit,
// the line the PS1's interrupt controller is wired to.
func (c *CPU) interruptPending(m *bus.Bus) bool {
	if !c.COP0.iecEnabled() {
		return false
	}
	if c.COP0.interruptMask()&(1<<2) == 0 {
		return false
	}
	return m.PendingInterrupt()
}

// armBranch schedules a branch/jump target to take effect after one more
// instruction (the delay slot) executes.
func (c *CPU) armBranch(target uint32) {
	c.branch = branchArmed
	c.branchTarget = target
}

// enqueueLoad records a load's destination and value in the next-cycle
// slot (§4.6); it must not be visible to the register file until the
// following step retires it.
func (c *CPU) enqueueLoad(reg uint32, value uint32) {
	if reg == 0 {
		return
	}
	c.loadNext = pendingLoad{reg: reg, value: value, valid: true}
}

// raiseException drives COP0 exception entry and redirects the PC pair,
// discarding any in-flight branch/load-delay state (§4.4).
func (c *CPU) raiseException(m *bus.Bus, cause uint32, epc uint32, hasBadVaddr bool, badVaddr uint32) {
	inDelaySlot := c.branch == branchInDelay
	vector := c.COP0.enterException(cause, epc, inDelaySlot, badVaddr, hasBadVaddr)

	c.branch = branchIdle
	c.loadCurrent = pendingLoad{}
	c.loadNext = pendingLoad{}

	c.pc = vector
	c.pcNext = vector + 4
}
