package cpu

// WORD_BITS is the width of a Word, in bits.
const WORD_BITS = 16

// Word is the unit of memory, registers and instructions.
type Word uint16

// Extract returns the length bit wide field of value that starts at bit start.
// A zero length yields 0; lengths above WORD_BITS are clamped.
func Extract(value Word, start uint, length uint) Word {
	if length == 0 {
		return 0
	}

	mask := Word(0xffff)
	if length < WORD_BITS {
		mask = Word(1<<length) - 1
	}

	return (value >> start) & mask
}
