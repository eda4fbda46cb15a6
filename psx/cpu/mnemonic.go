package cpu

// primaryMnemonics and specialMnemonics name instructions for tracing and
// disassembly (supplemental feature carried over from the original BIOS
// call tracer — never consulted by the interpreter itself).
var primaryMnemonics = map[uint32]string{
	0x02: "j", 0x03: "jal",
	0x04: "beq", 0x05: "bne", 0x06: "blez", 0x07: "bgtz",
	0x08: "addi", 0x09: "addiu", 0x0A: "slti", 0x0B: "sltiu",
	0x0C: "andi", 0x0D: "ori", 0x0E: "xori", 0x0F: "lui",
	0x10: "cop0",
	0x20: "lb", 0x21: "lh", 0x22: "lwl", 0x23: "lw",
	0x24: "lbu", 0x25: "lhu", 0x26: "lwr",
	0x28: "sb", 0x29: "sh", 0x2A: "swl", 0x2B: "sw", 0x2E: "swr",
}

var specialMnemonics = map[uint32]string{
	0x00: "sll", 0x02: "srl", 0x03: "sra",
	0x04: "sllv", 0x06: "srlv", 0x07: "srav",
	0x08: "jr", 0x09: "jalr",
	0x0C: "syscall", 0x0D: "break",
	0x10: "mfhi", 0x11: "mthi", 0x12: "mflo", 0x13: "mtlo",
	0x18: "mult", 0x19: "multu", 0x1A: "div", 0x1B: "divu",
	0x20: "add", 0x21: "addu", 0x22: "sub", 0x23: "subu",
	0x24: "and", 0x25: "or", 0x26: "xor", 0x27: "nor",
	0x2A: "slt", 0x2B: "sltu",
}

// Mnemonic returns a short name for a decoded instruction word, or "???" if
// unrecognized.
func Mnemonic(word uint32) string {
	instr := decode(word)
	switch instr.opcode {
	case 0x00:
		if name, ok := specialMnemonics[instr.funct]; ok {
			return name
		}
	case 0x01:
		names := [2]string{"bltz", "bgez"}
		return names[instr.rt&1]
	default:
		if name, ok := primaryMnemonics[instr.opcode]; ok {
			return name
		}
	}
	return "???"
}
