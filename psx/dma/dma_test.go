package dma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRAM struct {
	words map[uint32]uint32
}

func newFakeRAM() *fakeRAM {
	return &fakeRAM{words: make(map[uint32]uint32)}
}

func (r *fakeRAM) ReadWord(addr uint32) uint32  { return r.words[addr] }
func (r *fakeRAM) WriteWord(addr uint32, v uint32) { r.words[addr] = v }

type fakeGPU struct {
	received []uint32
}

func (g *fakeGPU) WriteGP0(word uint32) { g.received = append(g.received, word) }

func TestOTCClearWritesReverseLinkedList(t *testing.T) {
	c := New()
	ram := newFakeRAM()

	base := uint32(0x00100000)
	c.dpcr = 0xFFFFFFFF // enable every channel for the test
	c.Write(ChannelOTC*0x10+regMADR, base, ram, nil)
	c.Write(ChannelOTC*0x10+regBCR, 4, ram, nil)
	// direction=0 (device->RAM, i.e. fill), step=decrement, sync=manual(0), start/busy set.
	c.Write(ChannelOTC*0x10+regCHCR, chcrAddrStep|chcrStartBusy, ram, nil)

	assert.Equal(t, uint32(0x000FFFFC), ram.ReadWord(0x00100000))
	assert.Equal(t, uint32(0x000FFFF8), ram.ReadWord(0x000FFFFC))
	assert.Equal(t, uint32(0x000FFFF4), ram.ReadWord(0x000FFFF8))
	assert.Equal(t, uint32(0x00FFFFFF), ram.ReadWord(0x000FFFF4))
}

func TestManualTransferToGPU(t *testing.T) {
	c := New()
	ram := newFakeRAM()
	gpu := &fakeGPU{}

	ram.WriteWord(0x1000, 0xAAAA0001)
	ram.WriteWord(0x1004, 0xAAAA0002)

	c.dpcr = 0xFFFFFFFF
	c.Write(ChannelGPU*0x10+regMADR, 0x1000, ram, gpu)
	c.Write(ChannelGPU*0x10+regBCR, 2, ram, gpu)
	c.Write(ChannelGPU*0x10+regCHCR, chcrDirection|chcrStartBusy, ram, gpu)

	assert.Equal(t, []uint32{0xAAAA0001, 0xAAAA0002}, gpu.received)
	assert.Zero(t, c.channels[ChannelGPU].chcr&chcrStartBusy)
}

func TestChannelDisabledByDPCRDoesNotRun(t *testing.T) {
	c := New()
	ram := newFakeRAM()
	gpu := &fakeGPU{}
	c.dpcr = 0 // every channel disabled

	c.Write(ChannelGPU*0x10+regMADR, 0x1000, ram, gpu)
	c.Write(ChannelGPU*0x10+regBCR, 1, ram, gpu)
	c.Write(ChannelGPU*0x10+regCHCR, chcrDirection|chcrStartBusy, ram, gpu)

	assert.Empty(t, gpu.received)
	assert.NotZero(t, c.channels[ChannelGPU].chcr&chcrStartBusy)
}

func TestDICRWriteOneClearSemantics(t *testing.T) {
	c := New()

	// flags are set internally by a completed transfer, never by a direct
	// register write; set both via the same path execute() uses.
	c.setChannelFlag(ChannelGPU)
	c.setChannelFlag(ChannelOTC)

	// enable the master bit without touching any flag (bits 24-30 clear
	// only the flags that are 1 in the written value).
	c.Write(offsetDICR, 1<<23, nil, nil)
	assert.True(t, c.IRQPending())

	// writing a 1 to the GPU flag bit clears only that bit; OTC's survives,
	// and the master enable bit must be re-asserted in the same write.
	c.Write(offsetDICR, (1<<23)|(1<<(24+ChannelGPU)), nil, nil)
	assert.Zero(t, c.dicr&(1<<(24+ChannelGPU)))
	assert.NotZero(t, c.dicr&(1<<(24+ChannelOTC)))
}

func TestIRQFlagSetWhenChannelIRQEnabled(t *testing.T) {
	c := New()
	ram := newFakeRAM()
	gpu := &fakeGPU{}
	c.dpcr = 0xFFFFFFFF
	// enable master (bit 23) and GPU channel IRQ enable (bit 16+ch).
	c.Write(offsetDICR, (1<<23)|(1<<(16+ChannelGPU)), nil, nil)

	c.Write(ChannelGPU*0x10+regMADR, 0x2000, ram, gpu)
	c.Write(ChannelGPU*0x10+regBCR, 1, ram, gpu)
	c.Write(ChannelGPU*0x10+regCHCR, chcrDirection|chcrStartBusy, ram, gpu)

	assert.True(t, c.IRQPending())
	assert.NotZero(t, c.dicr&(1<<(24+ChannelGPU)))
}
