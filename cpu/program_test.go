package cpu

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 1, Words: []string{"mov", "r1", "5"},
				Codes: []Word{MakeCodeI(OP_I_MOV, REG_R1, 5)}},
			{LineNo: 2, Ip: 2, Words: []string{"halt"},
				Codes: []Word{MakeCodeI(OP_I_MOV, REG_R0, 0), MakeCodeR(OP_R_SYSCALL, REG_R0, REG_R0, REG_R0)}},
			{LineNo: 4, Ip: 4, Words: []string{"add", "r3", "r1", "r2"},
				Codes: []Word{MakeCodeR(OP_R_ADD, REG_R3, REG_R1, REG_R2)}},
		},
	}

	dbg := prog.Debug(1)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(3)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.Opcode.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.Opcode.LineNo)

	// Reserved word, and past the end.
	assert.Nil(prog.Debug(0).Opcode)
	assert.Nil(prog.Debug(10).Opcode)

	var ips []Word
	for ip := range prog.Codes() {
		ips = append(ips, ip)
	}
	assert.Equal([]Word{1, 2, 3, 4}, ips)
}

func TestProgram_ReadFrom(t *testing.T) {
	assert := assert.New(t)

	data := binary.NativeEndian.AppendUint16(nil, 0x0000)
	data = binary.NativeEndian.AppendUint16(data, 0xe405)
	data = binary.NativeEndian.AppendUint16(data, 0x7e00)
	data = append(data, 0x99) // odd trailing byte

	prog := &Program{Opcodes: []Opcode{{LineNo: 1}}}
	n, err := prog.ReadFrom(bytes.NewReader(data))
	assert.NoError(err)
	assert.Equal(int64(7), n)
	assert.Equal([]Word{0x0000, 0xe405, 0x7e00}, prog.Image)
	assert.Nil(prog.Opcodes)

	buf := &bytes.Buffer{}
	n, err = prog.WriteTo(buf)
	assert.NoError(err)
	assert.Equal(int64(6), n)
	assert.Equal(data[:6], buf.Bytes())
}

func TestProgram_ReadFrom_Limits(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	n, err := prog.ReadFrom(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(int64(0), n)
	assert.Equal(0, len(prog.Image))

	// Bytes past the memory capacity are ignored.
	data := make([]byte, MEMORY_SIZE*2+100)
	data[MEMORY_SIZE*2-1] = 0x55
	data[MEMORY_SIZE*2-2] = 0x55
	data[MEMORY_SIZE*2] = 0xff
	n, err = prog.ReadFrom(bytes.NewReader(data))
	assert.NoError(err)
	assert.Equal(int64(MEMORY_SIZE*2), n)
	assert.Equal(MEMORY_SIZE, len(prog.Image))
	assert.Equal(Word(0x5555), prog.Image[MEMORY_SIZE-1])
}
