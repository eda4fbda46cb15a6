// Package terminal implements a tcell-based debug HUD: it implements
// gpu.Renderer but, since rasterization is out of scope for this core
// (§1), it shows primitive counts, CPU registers, GPUSTAT, and the DMA
// DPCR/DICR registers rather than drawing pixels — the terminal equivalent of the teacher's register
// and disassembly panels.
package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-psx/psx/gpu"
	"github.com/valerio/go-psx/psx/system"
)

// HUD renders system state to a terminal via tcell.
type HUD struct {
	screen tcell.Screen

	quads, textured, triangles, gquads, renders, vramLoads int

	log *slog.Logger
}

// New creates an uninitialized HUD; call Init before Draw.
func New() *HUD {
	return &HUD{log: slog.Default()}
}

// Init opens the terminal screen.
func (h *HUD) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: init screen: %w", err)
	}
	h.screen = screen
	h.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	h.screen.Clear()
	return nil
}

// Close releases the terminal screen.
func (h *HUD) Close() {
	if h.screen != nil {
		h.screen.Fini()
	}
}

// PollQuit reports whether the user asked to quit (Escape or Ctrl-C).
func (h *HUD) PollQuit() bool {
	for h.screen.HasPendingEvent() {
		switch ev := h.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return true
			}
		case *tcell.EventResize:
			h.screen.Sync()
		}
	}
	return false
}

// Draw paints the current system state: PC, a handful of GPRs, GPUSTAT,
// DMA registers, and the primitive counters this HUD has observed.
func (h *HUD) Draw(sys *system.System) {
	h.screen.Clear()

	row := 0
	put := func(format string, args ...any) {
		line := fmt.Sprintf(format, args...)
		for col, r := range line {
			h.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		}
		row++
	}

	put("go-psx  instr=%d frame=%d", sys.InstructionCount(), sys.FrameCount())
	put("PC=%08X", sys.CPU.PC())
	for i := 0; i < 8; i++ {
		put("r%-2d=%08X  r%-2d=%08X", i, sys.CPU.Reg(uint32(i)), i+8, sys.CPU.Reg(uint32(i+8)))
	}
	put("")
	put("GPUSTAT=%08X", sys.GPU.ReadGPUSTAT())
	put("quads=%d textured=%d triangles=%d gquads=%d renders=%d vramLoads=%d",
		h.quads, h.textured, h.triangles, h.gquads, h.renders, h.vramLoads)
	put("")
	put("DPCR=%08X DICR=%08X", sys.Bus.DMA.DPCR(), sys.Bus.DMA.DICR())

	h.screen.Show()
}

// Renderer implementation: count primitives, never rasterize.

func (h *HUD) MonochromeOpaqueQuad(gpu.MonochromeQuad) { h.quads++ }
func (h *HUD) TexturedBlendQuad(gpu.TexturedQuad)      { h.textured++ }
func (h *HUD) GouraudTriangle(gpu.GouraudTriangle)     { h.triangles++ }
func (h *HUD) GouraudQuad(gpu.GouraudQuad)             { h.gquads++ }
func (h *HUD) Render()                                 { h.renders++ }
func (h *HUD) LoadVRAM(x, y, w, h2 int, pixels []uint16) {
	h.vramLoads++
}
