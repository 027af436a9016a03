package chip8

import (
	"errors"
	"fmt"
)

var (
	/// ErrImageTooLarge is returned by Load when a program image does
	/// not fit between ProgramAddress and the end of memory.
	///
	ErrImageTooLarge = errors.New("image too large")

	/// ErrUnknownOpcode is a fault for an instruction word that decodes
	/// to nothing.
	///
	ErrUnknownOpcode = errors.New("unknown opcode")

	/// ErrStackOverflow is a fault for a CALL with 16 addresses already
	/// on the stack.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is a fault for a RET with an empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrSyntax is an assembler error for text that doesn't scan.
	///
	ErrSyntax = errors.New("syntax error")

	/// ErrIllegalInstruction is an assembler error for an unknown
	/// mnemonic or operands that don't fit it.
	///
	ErrIllegalInstruction = errors.New("illegal instruction")

	ErrUndefinedLabel = errors.New("undefined label")
	ErrDuplicateLabel = errors.New("duplicate label")
)

/// Fault is returned by Step when an instruction cannot be executed.
///
type Fault struct {
	/// PC is the address of the faulting instruction.
	///
	PC uint16

	/// Opcode is the faulting instruction word.
	///
	Opcode uint16

	/// Err is one of the ErrXxx values above.
	///
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v: %04X at #%04X", f.Err, f.Opcode, f.PC)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
