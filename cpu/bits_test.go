package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		value  Word
		start  uint
		length uint
		field  Word
	}){
		{"zero_length", 0xffff, 0, 0, 0},
		{"format_r", 0x7fff, 15, 1, 0},
		{"format_i", 0x8000, 15, 1, 1},
		{"low_nibble", 0xabcd, 0, 4, 0xd},
		{"mid_nibble", 0xabcd, 8, 4, 0xb},
		{"opcode_r", 0x7e00, 9, 6, 0x3f},
		{"imm10", 0xffff, 0, 10, 0x3ff},
		{"full", 0x1234, 0, 16, 0x1234},
		{"clamped", 0x1234, 0, 32, 0x1234},
		{"clamped_shift", 0x1234, 4, 17, 0x123},
	}

	for _, entry := range table {
		assert.Equal(entry.field, Extract(entry.value, entry.start, entry.length), entry.name)
	}
}

func TestExtract_Properties(t *testing.T) {
	assert := assert.New(t)

	for v := range 0x10000 {
		value := Word(v)
		assert.Equal(Word(0), Extract(value, uint(v%16), 0))
		assert.Equal(value, Extract(value, 0, 16))
		assert.Equal(value, Extract(value, 0, 99))

		start := uint(v % 13)
		length := uint(v%7) + 1
		field := Extract(value, start, length)
		assert.Equal(field, Extract(field, 0, length))
		if t.Failed() {
			t.Fatalf("value 0x%04x", v)
		}
	}
}
