package cpu

// CodeService is a syscall service number, taken from r0.
type CodeService int

//go:generate go tool stringer -linecomment -type=CodeService
const (
	SYS_HALT = CodeService(0) // halt
)

// ErrService is a syscall service without a handler.
type ErrService CodeService

func (es ErrService) Error() string {
	return f("service %d", int(es))
}

// syscall dispatches on the service number in r0.
func (cpu *Cpu) syscall() {
	service := CodeService(cpu.Register.Get(REG_SYSCALL))

	switch service {
	case SYS_HALT:
		cpu.Log.Print(f("syscall: %v (service %d)", service, int(service)))
		cpu.State = STATE_HALTED
	default:
		cpu.warn(ErrFault{Class: ErrServiceUnknown, Err: ErrService(service)})
	}
}
