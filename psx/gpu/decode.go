package gpu

// decodeColor pulls the 24-bit RGB triple out of the low 24 bits of a
// command word.
func decodeColor(word uint32) ColorRGB {
	return ColorRGB{
		R: uint8(word),
		G: uint8(word >> 8),
		B: uint8(word >> 16),
	}
}

// decodeVertex pulls a signed 11-bit-per-axis vertex position out of a
// command word, matching the GPU's 16-bit signed vertex encoding.
func decodeVertex(word uint32) Point16 {
	return Point16{
		X: int16(uint16(word)<<5) >> 5,
		Y: int16(uint16(word>>16)<<5) >> 5,
	}
}

func decodeUV(word uint32) UV {
	return UV{
		U: uint8(word),
		V: uint8(word >> 8),
	}
}

// decodeMonochromeQuad decodes a 0x28 command buffer: color, v0..v3.
func decodeMonochromeQuad(buf []uint32) MonochromeQuad {
	var q MonochromeQuad
	q.Color = decodeColor(buf[0])
	for i := 0; i < 4; i++ {
		q.V[i] = decodeVertex(buf[1+i])
	}
	return q
}

// decodeTexturedQuad decodes a 0x2C command buffer: color, (v0,uv0+clut),
// (v1,uv1+texpage), (v2,uv2), (v3,uv3) — 9 words total (command + 8 args).
func decodeTexturedQuad(buf []uint32) TexturedQuad {
	var q TexturedQuad
	q.ColorBase = decodeColor(buf[0])
	q.V[0] = decodeVertex(buf[1])
	q.UV[0] = decodeUV(buf[2])
	q.Clut = uint16(buf[2] >> 16)
	q.V[1] = decodeVertex(buf[3])
	q.UV[1] = decodeUV(buf[4])
	q.TexPage = uint16(buf[4] >> 16)
	q.V[2] = decodeVertex(buf[5])
	q.UV[2] = decodeUV(buf[6])
	q.V[3] = decodeVertex(buf[7])
	q.UV[3] = decodeUV(buf[8])
	return q
}

// decodeGouraudTriangle decodes a 0x30 command buffer: (c0,v0), (c1,v1),
// (c2,v2) — 6 words total.
func decodeGouraudTriangle(buf []uint32) GouraudTriangle {
	var t GouraudTriangle
	for i := 0; i < 3; i++ {
		t.C[i] = decodeColor(buf[2*i])
		t.V[i] = decodeVertex(buf[2*i+1])
	}
	return t
}

// decodeGouraudQuad decodes a 0x38 command buffer: (c0,v0)..(c3,v3) — 8
// words total.
func decodeGouraudQuad(buf []uint32) GouraudQuad {
	var q GouraudQuad
	for i := 0; i < 4; i++ {
		q.C[i] = decodeColor(buf[2*i])
		q.V[i] = decodeVertex(buf[2*i+1])
	}
	return q
}
