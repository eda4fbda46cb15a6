package cpu

import "github.com/valerio/go-psx/psx/bit"

// instruction holds every field a MIPS-I word might carry. Decoding once up
// front keeps the opcode handlers free of bit-twiddling (§9: "avoid runtime
// polymorphism; a jump table or exhaustive match is the right shape").
type instruction struct {
	raw    uint32
	opcode uint32 // bits [31:26]
	rs     uint32 // bits [25:21]
	rt     uint32 // bits [20:16]
	rd     uint32 // bits [15:11]
	shamt  uint32 // bits [10:6]
	funct  uint32 // bits [5:0]
	imm16  uint16 // bits [15:0]
	target uint32 // bits [25:0]
}

func decode(word uint32) instruction {
	return instruction{
		raw:    word,
		opcode: bit.Extract(word, 31, 26),
		rs:     bit.Extract(word, 25, 21),
		rt:     bit.Extract(word, 20, 16),
		rd:     bit.Extract(word, 15, 11),
		shamt:  bit.Extract(word, 10, 6),
		funct:  bit.Extract(word, 5, 0),
		imm16:  bit.Low16(word),
		target: bit.Extract(word, 25, 0),
	}
}

func signExtend16(v uint16) uint32 {
	return bit.SignExtend16(v)
}

func zeroExtend16(v uint16) uint32 {
	return uint32(v)
}
