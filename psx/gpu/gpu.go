// Package gpu implements the PS1 GPU's command front-end: the GP0/GP1
// register protocol, command argument buffering, CPU->VRAM image transfer
// staging, and GPUSTAT composition. It does not rasterize; decoded
// primitives are handed to a Renderer (§4.7).
package gpu

import (
	"log/slog"
)

// phase is the GPU's command-buffering state (§3).
type phase int

const (
	phaseAwaitCmd phase = iota
	phaseAwaitArgs
	phaseAwaitImageData
)

// DMADirection mirrors the GP1 0x04 command's 2-bit field.
type DMADirection uint8

const (
	DMAOff DMADirection = iota
	DMAFIFO
	DMACPUToGP0
	DMAGPUToCPU
)

// DisplayConfig holds the GP1-configurable display parameters (§3).
type DisplayConfig struct {
	HorizontalResolution int
	VerticalResolution   int
	PAL                  bool
	Depth24Bit           bool
	DisplayEnable        bool
	DMADirection         DMADirection
	DisplayAreaX         uint16
	DisplayAreaY         uint16
}

// GPU is the command front-end state machine described in §4.7.
type GPU struct {
	renderer Renderer
	vram     VRAM

	phase        phase
	commandBuf   [16]uint32
	bufIndex     int
	argsLeft     int

	transferX, transferY int
	transferW, transferH int
	imgPixels             []uint16

	display DisplayConfig

	log *slog.Logger
}

// New creates a GPU front-end with the given primitive sink.
func New(renderer Renderer) *GPU {
	return &GPU{
		renderer: renderer,
		display: DisplayConfig{
			HorizontalResolution: 256,
			VerticalResolution:   240,
		},
		log: slog.Default(),
	}
}

// commandArity returns the argument-word count for a GP0 primary command
// byte, or -1 if the command is not a fixed-arity drawing/image command
// handled here (§4.7 table).
func commandArity(cmd uint8) int {
	switch cmd {
	case 0x00, 0x01:
		return 0
	case 0x28:
		return 4
	case 0x2C:
		return 8
	case 0x30:
		return 5
	case 0x38:
		return 7
	case 0xA0:
		return 2
	case 0xC0:
		return 2
	case 0xE1, 0xE2, 0xE3, 0xE4, 0xE5, 0xE6:
		return 0
	default:
		return -1
	}
}

// WriteGP0 feeds one 32-bit word into the GP0 command port.
func (g *GPU) WriteGP0(word uint32) {
	switch g.phase {
	case phaseAwaitCmd:
		g.beginCommand(word)
	case phaseAwaitArgs:
		g.bufIndex++
		g.commandBuf[g.bufIndex] = word
		g.argsLeft--
		if g.argsLeft == 0 {
			g.dispatchBufferedCommand()
		}
	case phaseAwaitImageData:
		g.writeImageWord(word)
	}
}

func (g *GPU) beginCommand(word uint32) {
	g.commandBuf[0] = word
	g.bufIndex = 0
	cmd := uint8(word >> 24)

	arity := commandArity(cmd)
	switch {
	case cmd >= 0xE1 && cmd <= 0xE6:
		g.applyDrawingEnv(cmd, word)
		return
	case arity == 0:
		return
	case arity > 0:
		g.argsLeft = arity
		g.phase = phaseAwaitArgs
		return
	default:
		g.log.Debug("gpu: unknown GP0 command", "cmd", cmd)
	}
}

func (g *GPU) applyDrawingEnv(cmd uint8, word uint32) {
	// Texpage/texture-window/drawing-area/offset/mask-bit updates affect
	// only GPU internal rasterization state, which is delegated entirely
	// to the renderer (a non-goal here per §1); we log them for tracing.
	g.log.Debug("gpu: drawing environment command", "cmd", cmd, "word", word)
}

func (g *GPU) dispatchBufferedCommand() {
	g.phase = phaseAwaitCmd
	defer func() { g.bufIndex = 0 }()

	cmd := uint8(g.commandBuf[0] >> 24)
	switch cmd {
	case 0x28:
		g.renderer.MonochromeOpaqueQuad(decodeMonochromeQuad(g.commandBuf[:]))
	case 0x2C:
		g.renderer.TexturedBlendQuad(decodeTexturedQuad(g.commandBuf[:]))
	case 0x30:
		g.renderer.GouraudTriangle(decodeGouraudTriangle(g.commandBuf[:]))
	case 0x38:
		g.renderer.GouraudQuad(decodeGouraudQuad(g.commandBuf[:]))
	case 0xA0:
		g.beginImageTransfer()
	case 0xC0:
		// VRAM->CPU staging is out of scope (§1); GPUREAD simply returns 0.
		g.log.Debug("gpu: VRAM->CPU staging requested (unimplemented)")
	}
}

func (g *GPU) beginImageTransfer() {
	x := int(uint16(g.commandBuf[1]))
	y := int(uint16(g.commandBuf[1] >> 16))
	w := int(uint16(g.commandBuf[2]))
	h := int(uint16(g.commandBuf[2] >> 16))

	w = int((uint16(w-1) & 0x3FF) + 1)
	h = int((uint16(h-1) & 0x3FF) + 1)

	g.transferX, g.transferY, g.transferW, g.transferH = clipRect(x, y, w, h)
	g.imgPixels = make([]uint16, 0, g.transferW*g.transferH)
	g.argsLeft = (w * h) / 2
	g.phase = phaseAwaitImageData
}

func (g *GPU) writeImageWord(word uint32) {
	lo := uint16(word)
	hi := uint16(word >> 16)
	g.imgPixels = append(g.imgPixels, lo, hi)

	g.argsLeft--
	if g.argsLeft <= 0 {
		g.commitImageTransfer()
		g.phase = phaseAwaitCmd
	}
}

func (g *GPU) commitImageTransfer() {
	n := g.transferW * g.transferH
	if n > len(g.imgPixels) {
		n = len(g.imgPixels)
	}
	pixels := g.imgPixels[:n]
	for i, p := range pixels {
		row := i / maxInt(g.transferW, 1)
		col := i % maxInt(g.transferW, 1)
		g.vram.set(g.transferX+col, g.transferY+row, p)
	}
	g.renderer.LoadVRAM(g.transferX, g.transferY, g.transferW, g.transferH, pixels)
	g.imgPixels = nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// WriteGP1 feeds a GP1 display-control command.
func (g *GPU) WriteGP1(word uint32) {
	cmd := uint8(word >> 24)
	switch cmd {
	case 0x00:
		g.reset()
	case 0x03:
		g.display.DisplayEnable = word&0x1 == 0
	case 0x04:
		g.display.DMADirection = DMADirection(word & 0x3)
	case 0x05:
		g.display.DisplayAreaX = uint16(word & 0x3FF)
		g.display.DisplayAreaY = uint16((word >> 10) & 0x1FF)
	case 0x08:
		g.applyDisplayMode(word)
	default:
		g.log.Debug("gpu: unknown GP1 command", "cmd", cmd)
	}
}

func (g *GPU) reset() {
	// Open question (§9): whether GP1 reset clears VRAM or only display
	// config. This implementation only resets the display configuration
	// and command phase, leaving VRAM contents intact, matching the BIOS's
	// expectation that a reset mid-boot does not erase a framebuffer a
	// earlier stage may have begun drawing.
	g.phase = phaseAwaitCmd
	g.bufIndex = 0
	g.argsLeft = 0
	g.display = DisplayConfig{HorizontalResolution: 256, VerticalResolution: 240}
}

func (g *GPU) applyDisplayMode(word uint32) {
	if bit6(word) {
		g.display.HorizontalResolution = 368
	} else {
		resolutions := [4]int{256, 320, 512, 640}
		g.display.HorizontalResolution = resolutions[word&0x3]
	}

	if word&(1<<2) != 0 {
		g.display.VerticalResolution = 480
	} else {
		g.display.VerticalResolution = 240
	}
	g.display.PAL = word&(1<<3) != 0
	g.display.Depth24Bit = word&(1<<4) != 0
}

func bit6(word uint32) bool { return word&(1<<6) != 0 }

// ReadGPUSTAT composes the GPUSTAT register value (§4.7).
func (g *GPU) ReadGPUSTAT() uint32 {
	var stat uint32

	switch g.display.HorizontalResolution {
	case 368:
		stat |= 1 << 16
	case 320:
		stat |= 1 << 17
	case 512:
		stat |= 2 << 17
	case 640:
		stat |= 3 << 17
	}

	if g.display.VerticalResolution == 480 {
		stat |= 1 << 19
	}
	if g.display.PAL {
		stat |= 1 << 20
	}
	if g.display.Depth24Bit {
		stat |= 1 << 21
	}
	if !g.display.DisplayEnable {
		stat |= 1 << 23 // 0=on, 1=off -- inverted convention (§4.7)
	}

	stat |= 1 << 26 // ready to receive command
	stat |= 1 << 27 // ready to send VRAM to CPU
	stat |= 1 << 28 // ready to accept DMA block

	switch g.display.DMADirection {
	case DMAOff:
		// bits 29-30 left clear
	case DMAFIFO:
		stat |= 1 << 29
	case DMACPUToGP0:
		stat |= (stat >> 28 & 1) << 29
	case DMAGPUToCPU:
		stat |= (stat >> 27 & 1) << 30
	}

	return stat
}

// ReadGPUREAD returns the GPUREAD port. VRAM->CPU readback is out of scope
// (§1), so this always returns 0.
func (g *GPU) ReadGPUREAD() uint32 {
	return 0
}

// VRAMSnapshot returns a read-only copy of the current VRAM contents, used
// by debug HUDs and tests.
func (g *GPU) VRAMSnapshot() [vramHeight][vramWidth]uint16 {
	return g.vram.pixels
}

// Display returns the current display configuration.
func (g *GPU) Display() DisplayConfig {
	return g.display
}

// Render flushes the current frame to the renderer, once per host-loop
// tick per the poll_events/renderer.render contract (§6).
func (g *GPU) Render() {
	g.renderer.Render()
}
