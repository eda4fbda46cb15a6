package gpu

// Point16 is a decoded vertex position, as the 11-bit signed GPU coordinates
// sign-extended to 16 bits.
type Point16 struct {
	X, Y int16
}

// ColorRGB is an 8-bit-per-channel color as carried in GP0 command words.
type ColorRGB struct {
	R, G, B uint8
}

// UV is a texture coordinate pair.
type UV struct {
	U, V uint8
}

// MonochromeQuad is the decoded form of the 0x28 command.
type MonochromeQuad struct {
	Color ColorRGB
	V     [4]Point16
}

// TexturedQuad is the decoded form of the 0x2C command. Clut and TexPage are
// carried in the UV words of vertices 0 and 1 respectively, per the GP0
// command layout.
type TexturedQuad struct {
	ColorBase ColorRGB
	V         [4]Point16
	UV        [4]UV
	Clut      uint16
	TexPage   uint16
}

// GouraudTriangle is the decoded form of the 0x30 command.
type GouraudTriangle struct {
	C [3]ColorRGB
	V [3]Point16
}

// GouraudQuad is the decoded form of the 0x38 command.
type GouraudQuad struct {
	C [4]ColorRGB
	V [4]Point16
}

// Renderer is the external sink that receives decoded primitives. The core
// never rasterizes: it classifies and decodes GP0 command streams and hands
// the result to whatever implements this interface (a real rasterizer, a
// headless counter, a debug HUD, ...).
type Renderer interface {
	MonochromeOpaqueQuad(q MonochromeQuad)
	TexturedBlendQuad(q TexturedQuad)
	GouraudTriangle(t GouraudTriangle)
	GouraudQuad(q GouraudQuad)

	// Render flushes the current frame, called once per host-loop tick
	// after poll_events (§5, §6).
	Render()

	// LoadVRAM is called once CPU->VRAM image staging (GP0 0xA0) completes,
	// with pixels in row-major order, w*h entries. Out-of-range rectangles
	// are clipped by the GPU before this is called (§7.4).
	LoadVRAM(x, y, w, h int, pixels []uint16)
}

// NullRenderer discards every primitive. Used by headless runs and tests
// that only care about bus/CPU/DMA semantics.
type NullRenderer struct {
	Quads      int
	Textured   int
	Triangles  int
	GQuads     int
	Renders    int
	VRAMLoads  int
}

func (n *NullRenderer) MonochromeOpaqueQuad(MonochromeQuad) { n.Quads++ }
func (n *NullRenderer) TexturedBlendQuad(TexturedQuad)      { n.Textured++ }
func (n *NullRenderer) GouraudTriangle(GouraudTriangle)     { n.Triangles++ }
func (n *NullRenderer) GouraudQuad(GouraudQuad)             { n.GQuads++ }
func (n *NullRenderer) Render()                             { n.Renders++ }
func (n *NullRenderer) LoadVRAM(x, y, w, h int, pixels []uint16) {
	n.VRAMLoads++
}
