package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/go-psx/psx/gpu"
)

func newTestBus() *Bus {
	return New(make([]byte, 512*1024), gpu.New(&gpu.NullRenderer{}))
}

func TestTranslateSegments(t *testing.T) {
	cases := []struct {
		name  string
		vaddr uint32
		want  uint32
	}{
		{"kuseg", 0x00100000, 0x00100000},
		{"kseg0", 0x80100000, 0x00100000},
		{"kseg1", 0xA0100000, 0x00100000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Translate(tc.vaddr))
		})
	}
}

func TestRAMReadWriteRoundTrip(t *testing.T) {
	b := newTestBus()
	b.Write(Word, 0x00001000, 0xCAFEBABE, false)
	assert.EqualValues(t, 0xCAFEBABE, b.Read(Word, 0x00001000))

	// the same physical RAM is reachable through every segment alias.
	assert.EqualValues(t, 0xCAFEBABE, b.Read(Word, 0x80001000))
	assert.EqualValues(t, 0xCAFEBABE, b.Read(Word, 0xA0001000))
}

func TestByteAndHalfWidthAccess(t *testing.T) {
	b := newTestBus()
	b.Write(Byte, 0x2000, 0xAB, false)
	assert.EqualValues(t, 0xAB, b.Read(Byte, 0x2000))

	b.Write(Half, 0x2002, 0xBEEF, false)
	assert.EqualValues(t, 0xBEEF, b.Read(Half, 0x2002))
}

func TestScratchpadIsSeparateFromRAM(t *testing.T) {
	b := newTestBus()
	b.Write(Word, 0x1F800010, 0x11223344, false)
	assert.EqualValues(t, 0x11223344, b.Read(Word, 0x1F800010))
	assert.EqualValues(t, 0, b.Read(Word, 0x00000010))
}

func TestIMaskGatesIStatInPendingInterrupt(t *testing.T) {
	b := newTestBus()
	b.RequestInterrupt(0)
	assert.False(t, b.PendingInterrupt())

	b.Write(Word, 0x1F801074, 0x1, false) // IMask: enable line 0
	assert.True(t, b.PendingInterrupt())
}

func TestBIOSReadOnly(t *testing.T) {
	biosImg := make([]byte, 512*1024)
	biosImg[0] = 0x42
	b := New(biosImg, gpu.New(&gpu.NullRenderer{}))
	assert.EqualValues(t, 0x42, b.Read(Byte, 0xBFC00000))

	b.Write(Byte, 0xBFC00000, 0x99, false) // stores to the BIOS are dropped
	assert.EqualValues(t, 0x42, b.Read(Byte, 0xBFC00000))
}

func TestCacheIsolationDropsWrite(t *testing.T) {
	b := newTestBus()
	b.Write(Word, 0x3000, 0x1, false)
	b.Write(Word, 0x3000, 0x2, true) // isc: write is dropped
	assert.EqualValues(t, 0x1, b.Read(Word, 0x3000))
}
