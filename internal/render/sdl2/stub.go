//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/valerio/go-psx/psx/gpu"
)

// Backend stub used when the binary is built without SDL2 development
// libraries available (default build tags).
type Backend struct{}

func New(title string) (*Backend, error) {
	return nil, fmt.Errorf("sdl2 backend not available - build with -tags sdl2 and install SDL2 development libraries")
}

func (b *Backend) Close()             {}
func (b *Backend) PollQuit() bool     { return true }
func (b *Backend) Render()            {}
func (b *Backend) LoadVRAM(x, y, w, h int, pixels []uint16) {}
func (b *Backend) MonochromeOpaqueQuad(gpu.MonochromeQuad)  {}
func (b *Backend) TexturedBlendQuad(gpu.TexturedQuad)       {}
func (b *Backend) GouraudTriangle(gpu.GouraudTriangle)      {}
func (b *Backend) GouraudQuad(gpu.GouraudQuad)              {}
