// Package bus implements the PS1 address bus: KUSEG/KSEG0/KSEG1/KSEG2
// segmentation, byte/halfword/word load-store, and routing to RAM,
// scratchpad, BIOS, and the memory-mapped device registers (§4.1).
package bus

import (
	"encoding/binary"
	"log/slog"

	"github.com/valerio/go-psx/psx/addr"
	"github.com/valerio/go-psx/psx/dma"
	"github.com/valerio/go-psx/psx/gpu"
	"github.com/valerio/go-psx/psx/timer"
)

// Size is the width of a bus access.
type Size int

const (
	Byte Size = 1
	Half Size = 2
	Word Size = 4
)

// Bus owns RAM, scratchpad, the (read-only) BIOS image, and the device
// subsystems reachable through memory-mapped I/O.
type Bus struct {
	ram        [addr.RAMSize]byte
	scratchpad [addr.ScratchpadSize]byte
	bios       []byte

	DMA    *dma.Controller
	GPU    *gpu.GPU
	Timers *timer.Timers

	iStat uint32
	iMask uint32

	log *slog.Logger
}

// New creates a Bus with the given BIOS image already loaded (§6 — BIOS
// loading is the caller's responsibility; the Bus only requires the byte
// slice).
func New(bios []byte, g *gpu.GPU) *Bus {
	b := &Bus{
		bios:   bios,
		DMA:    dma.New(),
		GPU:    g,
		Timers: timer.New(),
		log:    slog.Default(),
	}
	return b
}

// Translate applies the KUSEG/KSEG0/KSEG1/KSEG2 segment mask to a virtual
// address (§3).
func Translate(vaddr uint32) uint32 {
	return vaddr & addr.SegmentMasks[vaddr>>29]
}

// Read performs a size-width load. The returned value carries the raw bits
// in its low `size` bytes; sign/zero extension is the caller's
// responsibility (§4.1).
func (b *Bus) Read(size Size, vaddr uint32) uint32 {
	paddr := Translate(vaddr)

	switch {
	case paddr <= addr.RAMEnd:
		return readBytes(b.ram[:], paddr&addr.RAMMask, size)

	case paddr >= addr.ScratchpadStart && paddr <= addr.ScratchpadEnd:
		return readBytes(b.scratchpad[:], paddr-addr.ScratchpadStart, size)

	case paddr == addr.IStat:
		return b.iStat

	case paddr == addr.IMask:
		return b.iMask

	case paddr >= addr.DMAStart && paddr <= addr.DMAEnd:
		return b.DMA.Read(paddr - addr.DMAStart)

	case paddr >= addr.TimerStart && paddr <= addr.TimerEnd:
		return b.Timers.Read(paddr - addr.TimerStart)

	case paddr == addr.GP0:
		return b.GPU.ReadGPUREAD()

	case paddr == addr.GP1:
		return b.GPU.ReadGPUSTAT()

	case paddr >= addr.BIOSStart && paddr <= addr.BIOSEnd:
		return readBytes(b.bios, paddr&addr.BIOSMask, size)

	default:
		b.log.Debug("bus: read from unmapped address", "vaddr", vaddr, "paddr", paddr)
		return 0
	}
}

// Write performs a size-width store. isc is the CPU's current COP0 SR.ISC
// bit; when set, data stores are silently dropped at the bus boundary
// (§4.1) — this never affects instruction fetch, which never calls Write.
func (b *Bus) Write(size Size, vaddr uint32, value uint32, isc bool) {
	if isc {
		b.log.Debug("bus: store dropped (cache isolated)", "vaddr", vaddr)
		return
	}

	paddr := Translate(vaddr)

	switch {
	case paddr <= addr.RAMEnd:
		writeBytes(b.ram[:], paddr&addr.RAMMask, size, value)

	case paddr >= addr.ScratchpadStart && paddr <= addr.ScratchpadEnd:
		writeBytes(b.scratchpad[:], paddr-addr.ScratchpadStart, size, value)

	case paddr == addr.IStat:
		b.iStat &= value // writing 0 to a bit acknowledges (clears) it

	case paddr == addr.IMask:
		b.iMask = value

	case paddr >= addr.DMAStart && paddr <= addr.DMAEnd:
		b.DMA.Write(paddr-addr.DMAStart, value, ramAdapter{b}, b.GPU)

	case paddr >= addr.TimerStart && paddr <= addr.TimerEnd:
		b.Timers.Write(paddr-addr.TimerStart, value)

	case paddr == addr.GP0:
		b.GPU.WriteGP0(value)

	case paddr == addr.GP1:
		b.GPU.WriteGP1(value)

	case paddr >= addr.IODelayStart && paddr <= addr.IODelayEnd:
		b.log.Debug("bus: write to delay register ignored", "vaddr", vaddr, "value", value)

	case paddr == addr.CacheControl:
		b.log.Debug("bus: write to cache control ignored", "value", value)

	default:
		b.log.Debug("bus: write to unmapped address ignored", "vaddr", vaddr, "paddr", paddr, "value", value)
	}
}

// RequestInterrupt sets the I_STAT bit for the given IRQ line (0-based).
func (b *Bus) RequestInterrupt(line uint) {
	b.iStat = uint32(1)<<line | b.iStat
}

// PendingInterrupt reports whether any unmasked interrupt line is set,
// after first pulling the DMA and timer latched requests into I_STAT.
func (b *Bus) PendingInterrupt() bool {
	b.syncDeviceInterrupts()
	return b.iStat&b.iMask != 0
}

func (b *Bus) syncDeviceInterrupts() {
	const (
		irqVBlank = 0
		irqGPU    = 1
		irqDMA    = 3
		irqTimer0 = 4
		irqTimer1 = 5
		irqTimer2 = 6
	)

	if b.DMA.IRQPending() {
		b.iStat |= 1 << irqDMA
	}
	for ch := 0; ch < 3; ch++ {
		if b.Timers.Channels[ch].IRQPending() {
			b.iStat |= 1 << (irqTimer0 + ch)
			b.Timers.Channels[ch].AckIRQ()
		}
	}
}

// readBytes reads `size` little-endian bytes starting at offset, returning
// them in the low bits of the result.
func readBytes(data []byte, offset uint32, size Size) uint32 {
	switch size {
	case Byte:
		return uint32(data[offset])
	case Half:
		return uint32(binary.LittleEndian.Uint16(data[offset : offset+2]))
	default:
		return binary.LittleEndian.Uint32(data[offset : offset+4])
	}
}

func writeBytes(data []byte, offset uint32, size Size, value uint32) {
	switch size {
	case Byte:
		data[offset] = byte(value)
	case Half:
		binary.LittleEndian.PutUint16(data[offset:offset+2], uint16(value))
	default:
		binary.LittleEndian.PutUint32(data[offset:offset+4], value)
	}
}

// ramAdapter exposes the Bus's RAM as the flat word-addressed store DMA
// needs, without giving DMA a stored reference to the Bus itself (§9).
type ramAdapter struct{ b *Bus }

func (r ramAdapter) ReadWord(addr uint32) uint32 {
	off := addr & 0x1FFFFF &^ 0x3
	return binary.LittleEndian.Uint32(r.b.ram[off : off+4])
}

func (r ramAdapter) WriteWord(addr uint32, value uint32) {
	off := addr & 0x1FFFFF &^ 0x3
	binary.LittleEndian.PutUint32(r.b.ram[off:off+4], value)
}
