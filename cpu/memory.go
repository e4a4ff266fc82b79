package cpu

// MEMORY_SIZE is the number of words of memory.
const MEMORY_SIZE = 32768

// Memory is the word addressed main memory.
type Memory [MEMORY_SIZE]Word

// Read returns the word at index.
func (mem *Memory) Read(index Word) (value Word, err error) {
	if int(index) >= len(mem) {
		err = ErrAddress(index)
		return
	}

	value = mem[index]
	return
}

// Write sets the word at index.
func (mem *Memory) Write(index Word, value Word) (err error) {
	if int(index) >= len(mem) {
		err = ErrAddress(index)
		return
	}

	mem[index] = value
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}

// Load copies an image into memory, starting at word 0.
// Words beyond the memory capacity are dropped.
func (mem *Memory) Load(image []Word) (words int) {
	return copy(mem[:], image)
}
