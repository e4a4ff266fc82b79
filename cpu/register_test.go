package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	for reg := REG_R0; reg <= REG_R7; reg++ {
		assert.Equal(Word(0), rf.Get(reg))
		rf.Set(reg, Word(0x1110*int(reg)))
	}
	for reg := REG_R0; reg <= REG_R7; reg++ {
		assert.Equal(Word(0x1110*int(reg)), rf.Get(reg), reg.String())
	}

	rf.Reset()
	assert.Equal(RegisterFile{}, *rf)

	assert.Equal(REG_R0, REG_SYSCALL)
	assert.Equal("r7", REG_R7.String())
}

func TestRegisterFile_Panic(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	assert.Panics(func() { rf.Get(REGISTER_COUNT) })
	assert.Panics(func() { rf.Set(-1, 0) })
}
