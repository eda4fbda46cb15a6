package cpu

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-psx/psx/bus"
	"github.com/valerio/go-psx/psx/gpu"
)

// testBIOS backs the BIOS window of the bus built by newTestSystem. The bus
// drops stores to the BIOS, so loadProgram writes BIOS-range words here.
var testBIOS []byte

func newTestSystem(t *testing.T) (*CPU, *bus.Bus) {
	t.Helper()
	testBIOS = make([]byte, 512*1024)
	b := bus.New(testBIOS, gpu.New(&gpu.NullRenderer{}))
	c := New()
	return c, b
}

// loadProgram writes a little-endian word stream starting at addr and
// repositions the CPU's PC pair to start executing it.
func loadProgram(c *CPU, b *bus.Bus, addr uint32, words []uint32) {
	for i, w := range words {
		a := addr + uint32(4*i)
		if p := bus.Translate(a); p >= 0x1FC00000 && p <= 0x1FC7FFFF {
			binary.LittleEndian.PutUint32(testBIOS[p-0x1FC00000:], w)
			continue
		}
		b.Write(bus.Word, a, w, false)
	}
	c.pc = addr
	c.pcNext = addr + 4
}

func TestRegisterZeroInvariant(t *testing.T) {
	c, b := newTestSystem(t)
	loadProgram(c, b, ResetVector, []uint32{
		0x24000005, // addiu $0, $0, 5 -- attempted write to r0
	})
	c.Step(b)
	assert.EqualValues(t, 0, c.Reg(0))
}

func TestAddiuStoreLoad(t *testing.T) {
	// addiu $1,$0,0x1000; addiu $2,$0,0x55; sw $2,0($1); lw $3,0($1)
	c, b := newTestSystem(t)
	loadProgram(c, b, ResetVector, []uint32{
		0x24011000, // addiu $1, $0, 0x1000
		0x24020055, // addiu $2, $0, 0x55
		0xAC220000, // sw $2, 0($1)
		0x8C230000, // lw $3, 0($1)
		0x00000000, // sll $0, $0, 0 (nop, retires the load)
	})

	for i := 0; i < 5; i++ {
		c.Step(b)
	}

	assert.EqualValues(t, 0x55, c.Reg(3))
	assert.EqualValues(t, 0x55, b.Read(bus.Word, 0x1000))
}

func TestBranchDelaySlotExecutes(t *testing.T) {
	// addiu $2,$0,1; beq $0,$0,+1; addiu $2,$0,2; addiu $2,$0,3
	c, b := newTestSystem(t)
	loadProgram(c, b, ResetVector, []uint32{
		0x24020001, // addiu $2, $0, 1
		0x10000001, // beq $0, $0, +1
		0x24020002, // addiu $2, $0, 2 (delay slot)
		0x24020003, // addiu $2, $0, 3 (branch target)
	})

	for i := 0; i < 4; i++ {
		c.Step(b)
	}

	assert.EqualValues(t, 3, c.Reg(2))
}

func TestLoadDelaySlot(t *testing.T) {
	// addiu $2,$0,99; lw $2,0($29); addiu $2,$0,5
	c, b := newTestSystem(t)
	c.SetReg(29, ResetVector+0x100)
	loadProgram(c, b, ResetVector, []uint32{
		0x24020063, // addiu $2, $0, 99
		0x8FA20000, // lw $2, 0($sp)
		0x24020005, // addiu $2, $0, 5
	})

	c.Step(b) // addiu $2, 99
	c.Step(b) // lw $2 -- enqueues load, $2 still 99
	assert.EqualValues(t, 99, c.Reg(2))

	c.Step(b) // addiu $2, 5 -- ALU write wins over stale load
	assert.EqualValues(t, 5, c.Reg(2))
}

func TestSyscallException(t *testing.T) {
	c, b := newTestSystem(t)
	c.COP0.write(cop0SR, 0) // clear BEV so the non-boot exception vector is used
	loadProgram(c, b, 0x80000100, []uint32{
		0x0000000C, // syscall
	})

	c.Step(b)

	assert.EqualValues(t, 0x80000100, c.COP0.Read(cop0EPC))
	assert.EqualValues(t, ExcSyscall, (c.COP0.Read(cop0Cause)>>2)&0x1F)
	assert.EqualValues(t, 0x80000080, c.PC())
}

func TestDivideByZero(t *testing.T) {
	c, b := newTestSystem(t)
	c.SetReg(1, 10)
	c.SetReg(2, 0)
	loadProgram(c, b, ResetVector, []uint32{
		0x0022001A, // div $1, $2
	})
	c.Step(b)
	require.EqualValues(t, 10, c.regs.hi)
	assert.EqualValues(t, 0xFFFFFFFF, c.regs.lo)
}

func TestDivideOverflow(t *testing.T) {
	c, b := newTestSystem(t)
	c.SetReg(1, 0x80000000)
	c.SetReg(2, 0xFFFFFFFF)
	loadProgram(c, b, ResetVector, []uint32{
		0x0022001A, // div $1, $2
	})
	c.Step(b)
	assert.EqualValues(t, 0x80000000, c.regs.lo)
	assert.EqualValues(t, 0, c.regs.hi)
}

func TestLwlUnalignedMerge(t *testing.T) {
	c, b := newTestSystem(t)
	b.Write(bus.Word, 0x1000, 0x12345678, false)
	c.SetReg(3, 0x1000)
	c.SetReg(2, 0xAAAAAAAA)
	loadProgram(c, b, ResetVector, []uint32{
		0x88620002, // lwl $2, 2($3)
		0x00000000, // sll $0, $0, 0 (nop, retires the load)
	})

	c.Step(b)
	c.Step(b)

	assert.EqualValues(t, 0x345678AA, c.Reg(2))
}
