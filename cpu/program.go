package cpu

import (
	"encoding/binary"
	"io"
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated words.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Codes     []Word
	LinkLabel string
}

// Program is a memory image, and the listing it was assembled from, if any.
type Program struct {
	Image   []Word   // Memory contents, from word 0.
	Opcodes []Opcode // Assembler listing.
}

type Debug struct {
	*Opcode
	Index int
}

// Debug returns the listing entry that generated the word at ip.
func (prog *Program) Debug(ip Word) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(ip) >= op.Ip && int(ip) < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(ip) - op.Ip,
			}
			break
		}
	}

	return
}

// Codes iterates over the assembled words, by word index.
func (prog *Program) Codes() iter.Seq2[Word, Word] {
	return func(yield func(ip Word, code Word) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(Word(op.Ip+n), code) {
					return
				}
			}
		}
	}
}

// Binary returns the image in the host byte order.
func (prog *Program) Binary() (data []byte) {
	data = make([]byte, 0, len(prog.Image)*2)
	for _, word := range prog.Image {
		data = binary.NativeEndian.AppendUint16(data, uint16(word))
	}

	return
}

// ReadFrom loads an image: up to MEMORY_SIZE words in the host byte order.
// Bytes past the memory capacity are not read, and a trailing odd byte is
// dropped. Any listing is discarded.
func (prog *Program) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(io.LimitReader(r, MEMORY_SIZE*2))
	n = int64(len(data))
	if err != nil {
		return
	}

	prog.Opcodes = nil
	prog.Image = make([]Word, len(data)/2)
	for i := range prog.Image {
		prog.Image[i] = Word(binary.NativeEndian.Uint16(data[i*2:]))
	}

	return
}

// WriteTo saves the image.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	written, err := w.Write(prog.Binary())
	n = int64(written)
	return
}

var _ io.ReaderFrom = (*Program)(nil)
var _ io.WriterTo = (*Program)(nil)
