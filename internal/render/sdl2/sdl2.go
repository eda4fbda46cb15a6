//go:build sdl2

// Package sdl2 implements a gpu.Renderer backed by an SDL2 window: each
// load_vram call copies its rectangle into a 1024x512 16bpp VRAM image, and
// Render uploads that image to a texture and presents it (§6 — the renderer is an external sink, never owned by
// the core). Building this requires SDL2 development libraries; default
// builds use the stub in stub.go instead (build tag sdl2).
package sdl2

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-psx/psx/gpu"
)

const (
	vramWidth  = 1024
	vramHeight = 512
)

// Backend owns the SDL window/renderer/texture and the last VRAM image it
// was handed.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   [vramHeight][vramWidth]uint16
}

// New creates and opens an SDL2 window sized to the VRAM dimensions.
func New(title string) (*Backend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl2: init: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		vramWidth/2, vramHeight/2, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl2: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl2: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB555, sdl.TEXTUREACCESS_STREAMING, vramWidth, vramHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl2: create texture: %w", err)
	}

	return &Backend{window: window, renderer: renderer, texture: texture}, nil
}

// Close tears down the SDL window and renderer.
func (b *Backend) Close() {
	b.texture.Destroy()
	b.renderer.Destroy()
	b.window.Destroy()
	sdl.Quit()
}

// PollQuit drains the SDL event queue and reports whether the window was
// asked to close.
func (b *Backend) PollQuit() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				return true
			}
		}
	}
	return false
}

func (b *Backend) LoadVRAM(x, y, w, h int, pixels []uint16) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			b.pixels[(y+row)%vramHeight][(x+col)%vramWidth] = pixels[row*w+col]
		}
	}
}

func (b *Backend) Render() {
	b.texture.Update(nil, unsafe.Pointer(&b.pixels[0][0]), vramWidth*2)
	b.renderer.Clear()
	b.renderer.Copy(b.texture, nil, nil)
	b.renderer.Present()
}

func (b *Backend) MonochromeOpaqueQuad(gpu.MonochromeQuad) {}
func (b *Backend) TexturedBlendQuad(gpu.TexturedQuad)      {}
func (b *Backend) GouraudTriangle(gpu.GouraudTriangle)     {}
func (b *Backend) GouraudQuad(gpu.GouraudQuad)             {}
