// Package bios loads the BIOS ROM image and extracts its embedded build
// date, the one piece of BIOS metadata this core surfaces (§6, SUPPLEMENTED
// FEATURES).
package bios

import (
	"fmt"
	"io"
	"os"
)

// Size is the fixed BIOS image size the bus maps at 0x1FC00000 (§6).
const Size = 512 * 1024

// dateOffset is the BCD-encoded build-date word's location within the
// image (§6).
const dateOffset = 0x100

// Image is a loaded, immutable BIOS ROM.
type Image struct {
	bytes []byte
}

// Load reads a BIOS file from disk. The image must be exactly Size bytes;
// anything else is a host-fatal error (§7, class 2).
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bios: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("bios: read %s: %w", path, err)
	}
	if len(data) != Size {
		return nil, fmt.Errorf("bios: %s is %d bytes, want %d", path, len(data), Size)
	}

	return &Image{bytes: data}, nil
}

// Bytes returns the raw ROM contents, for the bus to map read-only.
func (img *Image) Bytes() []byte {
	return img.bytes
}

// Date decodes the BCD build-date word at offset 0x100: byte 0 is the day,
// byte 1 the month, bytes 3:2 the century and in-century year (§6), e.g.
// bytes {0x16, 0x12, 0x94, 0x19} decode to 1994-12-16.
func (img *Image) Date() (year int, month int, day int) {
	b := img.bytes[dateOffset : dateOffset+4]
	day = bcd(b[0])
	month = bcd(b[1])
	year = bcd(b[3])*100 + bcd(b[2])
	return
}

func bcd(b byte) int {
	return int(b>>4)*10 + int(b&0xF)
}
