package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonochromeQuadDispatch(t *testing.T) {
	r := &NullRenderer{}
	g := New(r)

	words := []uint32{
		0x28000000 | 0x00FF0000, // cmd 0x28, color R=0x00, G=0x00, B=0xFF
		0x00100020,              // v0
		0x00200040,              // v1
		0x00300060,              // v2
		0x00400080,              // v3
	}
	for _, w := range words {
		g.WriteGP0(w)
	}

	assert.Equal(t, 1, r.Quads)
}

func TestImageTransferRoundTrip(t *testing.T) {
	r := &NullRenderer{}
	g := New(r)

	g.WriteGP0(0xA0000000)      // cmd 0xA0 (copy rect CPU->VRAM)
	g.WriteGP0(0x00000000)      // dest x=0, y=0
	g.WriteGP0((2<<16) | 2)     // w=2, h=2

	// 2x2 = 4 pixels = 2 words.
	g.WriteGP0(0x22221111)
	g.WriteGP0(0x44443333)

	assert.Equal(t, 1, r.VRAMLoads)
	snap := g.VRAMSnapshot()
	assert.EqualValues(t, 0x1111, snap[0][0])
	assert.EqualValues(t, 0x2222, snap[0][1])
	assert.EqualValues(t, 0x3333, snap[1][0])
	assert.EqualValues(t, 0x4444, snap[1][1])
}

func TestGPUSTATResolutionBits(t *testing.T) {
	g := New(&NullRenderer{})
	g.WriteGP1(0x08000003 | (1 << 2)) // mode word: hres=640(bits0-1=3), vres=480

	stat := g.ReadGPUSTAT()
	assert.NotZero(t, stat&(3<<17))
	assert.NotZero(t, stat&(1<<19))
}

func TestGPUSTATDMADirectionMirrorsReadyBits(t *testing.T) {
	g := New(&NullRenderer{})

	g.WriteGP1(0x04000002) // DMA direction = CPU->GP0
	stat := g.ReadGPUSTAT()
	assert.NotZero(t, stat&(1<<29))

	g.WriteGP1(0x04000003) // DMA direction = GPU->CPU
	stat = g.ReadGPUSTAT()
	assert.NotZero(t, stat&(1<<30))
}

func TestGP1DisplayEnableInvertsGPUSTATBit23(t *testing.T) {
	g := New(&NullRenderer{})

	// reset leaves the display disabled, matching real hardware: bit 23
	// reads 1 (off) until GP1(03h) clears bit 0.
	assert.NotZero(t, g.ReadGPUSTAT()&(1<<23))

	g.WriteGP1(0x03000000) // bit0=0: enable display
	assert.Zero(t, g.ReadGPUSTAT()&(1<<23))

	g.WriteGP1(0x03000001) // bit0=1: disable display
	assert.NotZero(t, g.ReadGPUSTAT()&(1<<23))
}

func TestGP1ResetClearsDisplayConfigNotVRAM(t *testing.T) {
	g := New(&NullRenderer{})
	g.vram.set(5, 5, 0xBEEF)

	g.WriteGP1(0x08000001) // non-default display mode
	g.WriteGP1(0x00000000) // reset

	assert.Equal(t, 256, g.display.HorizontalResolution)
	snap := g.VRAMSnapshot()
	assert.EqualValues(t, 0xBEEF, snap[5][5])
}
