package cpu

import (
	"slices"
)

const (
	STACK_LIMIT = 16 // Maximum macro expansion depth
)

// Stack of active macro expansions, innermost last.
type Stack struct {
	Data []string
}

func (s *Stack) Push(name string) {
	s.Data = append(s.Data, name)
}

func (s *Stack) Pop() (name string, ok bool) {
	name, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) >= STACK_LIMIT
}

func (s *Stack) Peek() (name string, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

// Contains reports if the named macro is being expanded.
func (s *Stack) Contains(name string) bool {
	return slices.Contains(s.Data, name)
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
