/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"bufio"
	"bytes"
	"fmt"
)

/// SourceExt is the file extension LoadFile assembles before loading.
///
const SourceExt = ".c8s"

/// AsmError is returned by Assemble for source that can't be assembled.
///
type AsmError struct {
	/// Line is the 1-based source line, or 0 if not tied to one.
	///
	Line int

	/// Err wraps one of the ErrXxx values.
	///
	Err error
}

func (e *AsmError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *AsmError) Unwrap() error {
	return e.Err
}

// assembly failures unwind to Assemble
type asmFailure struct {
	err error
}

func fail(err error, format string, args ...interface{}) {
	panic(asmFailure{fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))})
}

/// encoding is the base word and operand layout of one instruction form.
///
type encoding struct {
	base     uint16
	operands operands
}

/// fixup is a forward label reference patched after the last line.
///
type fixup struct {
	offset int
	label  string
	line   int

	// all 16 bits, not just the address
	word bool
}

var (
	/// the operand tokens expected by each layout
	///
	layouts = map[operands][]tokenType{
		opNone:   nil,
		opAddr:   {tokenLit},
		opIAddr:  {tokenI, tokenLit},
		opV0Addr: {tokenV, tokenLit},
		opX:      {tokenV},
		opXKK:    {tokenV, tokenLit},
		opXY:     {tokenV, tokenV},
		opXYN:    {tokenV, tokenV, tokenLit},
		opXDT:    {tokenV, tokenDT},
		opXK:     {tokenV, tokenK},
		opDTX:    {tokenDT, tokenV},
		opSTX:    {tokenST, tokenV},
		opIX:     {tokenI, tokenV},
		opFX:     {tokenF, tokenV},
		opBX:     {tokenB, tokenV},
		opSaveX:  {tokenIndirect, tokenV},
		opLoadX:  {tokenV, tokenIndirect},
	}

	/// every form of each mnemonic, built from the decode tables
	///
	encodings = buildEncodings()
)

func buildEncodings() map[string][]encoding {
	m := make(map[string][]encoding)

	for class, i := range primary {
		if i != nil {
			m[i.name] = append(m[i.name], encoding{uint16(class) << 12, i.operands})
		}
	}

	for class, sub := range secondary {
		if sub == nil {
			continue
		}

		for key, i := range sub.table {
			m[i.name] = append(m[i.name], encoding{uint16(class)<<12 | key, i.operands})
		}
	}

	return m
}

/// assembler is the state of a single Assemble.
///
type assembler struct {
	rom    []byte
	labels map[string]int
	fixups []fixup
	line   int
}

/// Assemble CHIP-8 source into a program image to load at
/// ProgramAddress. Source is case-insensitive, one instruction per line:
///
///   .loop  ADD V0, 1      ; comment
///          SE V0, #0A
///          JP loop
///
/// Labels start with a period and can be given a value with EQU. The
/// directives BYTE, WORD, ALIGN and PAD emit data.
///
func Assemble(source []byte) (rom []byte, err error) {
	a := &assembler{labels: make(map[string]int)}

	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(asmFailure)
			if !ok {
				panic(r)
			}

			rom, err = nil, &AsmError{Line: a.line, Err: f.err}
		}
	}()

	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToUpper(source)))

	for scanner.Scan() {
		a.line++
		a.assemble(&tokenScanner{bytes: scanner.Bytes()})
	}

	if err := scanner.Err(); err != nil {
		return nil, &AsmError{Line: a.line, Err: err}
	}

	a.resolve()

	return a.rom, nil
}

/// Compile a single line into the assembly.
///
func (a *assembler) assemble(s *tokenScanner) {
	t := s.scanToken()

	// assign labels
	if t.typ == tokenLabel {
		t = a.assembleLabel(t.text, s)
	}

	switch t.typ {
	case tokenEnd:
	case tokenRef:
		a.assembleInstruction(t.text, s.scanOperands())
	default:
		fail(ErrSyntax, "expected instruction")
	}
}

/// Define a label at the current address, or the value given with EQU.
///
func (a *assembler) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.labels[label]; exists {
		fail(ErrDuplicateLabel, "%s", label)
	}

	a.labels[label] = ProgramAddress + len(a.rom)

	t := s.scanToken()
	if t.typ != tokenRef || t.text != "EQU" {
		return t
	}

	ops := s.scanOperands()
	if len(ops) != 1 {
		fail(ErrSyntax, "EQU takes one value")
	}

	a.labels[label] = int(a.value(ops[0], 0xFFFF))

	return token{typ: tokenEnd}
}

/// Compile a single instruction or directive.
///
func (a *assembler) assembleInstruction(name string, ops []token) {
	switch name {
	case "BYTE":
		for _, op := range ops {
			a.emit(byte(a.value(op, 0xFF)))
		}
	case "WORD":
		for _, op := range ops {
			if a.forward(op) {
				a.fixups = append(a.fixups, fixup{offset: len(a.rom), label: op.text, line: a.line, word: true})
				a.emit(0, 0)
				continue
			}

			w := a.value(op, 0xFFFF)
			a.emit(byte(w>>8), byte(w))
		}
	case "ALIGN":
		if len(ops) != 1 {
			fail(ErrSyntax, "ALIGN takes one value")
		}

		n := int(a.value(ops[0], 0x1000))
		if n == 0 || n&(n-1) != 0 {
			fail(ErrSyntax, "alignment %d is not a power of two", n)
		}

		for len(a.rom)&(n-1) != 0 {
			a.emit(0)
		}
	case "PAD":
		if len(ops) != 1 {
			fail(ErrSyntax, "PAD takes one value")
		}

		a.emit(make([]byte, a.value(ops[0], 0xFFFF))...)
	default:
		forms, ok := encodings[name]
		if !ok {
			fail(ErrIllegalInstruction, "unknown mnemonic %s", name)
		}

		for _, form := range forms {
			if a.encode(form, ops) {
				return
			}
		}

		fail(ErrIllegalInstruction, "illegal operands for %s", name)
	}
}

/// Encode an instruction if the operands fit the form's layout.
///
func (a *assembler) encode(form encoding, ops []token) bool {
	layout := layouts[form.operands]
	if len(layout) != len(ops) {
		return false
	}

	for i, typ := range layout {
		switch {
		case typ == tokenLit && ops[i].typ == tokenRef:
		case typ != ops[i].typ:
			return false
		}
	}

	w := form.base

	switch form.operands {
	case opAddr:
		w |= a.address(ops[0])
	case opIAddr:
		w |= a.address(ops[1])
	case opV0Addr:
		if ops[0].val != 0 {
			return false
		}
		w |= a.address(ops[1])
	case opX, opXDT, opXK, opLoadX:
		w |= uint16(ops[0].val) << 8
	case opDTX, opSTX, opIX, opFX, opBX, opSaveX:
		w |= uint16(ops[1].val) << 8
	case opXKK:
		w |= uint16(ops[0].val)<<8 | a.value(ops[1], 0xFF)
	case opXY:
		w |= uint16(ops[0].val)<<8 | uint16(ops[1].val)<<4
	case opXYN:
		w |= uint16(ops[0].val)<<8 | uint16(ops[1].val)<<4 | a.value(ops[2], 0xF)
	}

	a.emit(byte(w>>8), byte(w))

	return true
}

/// Emit bytes, making sure they still fit in memory.
///
func (a *assembler) emit(b ...byte) {
	if len(a.rom)+len(b) > MaxImageSize {
		fail(ErrImageTooLarge, "%d bytes", len(a.rom)+len(b))
	}

	a.rom = append(a.rom, b...)
}

/// forward is true for a label not defined yet.
///
func (a *assembler) forward(t token) bool {
	if t.typ != tokenRef {
		return false
	}

	_, defined := a.labels[t.text]
	return !defined
}

/// Returns an address operand, recording a fixup for forward references.
///
func (a *assembler) address(t token) uint16 {
	if a.forward(t) {
		a.fixups = append(a.fixups, fixup{offset: len(a.rom), label: t.text, line: a.line})
		return 0
	}

	return a.value(t, addressMask)
}

/// Returns the value of a literal or defined label no larger than max.
///
func (a *assembler) value(t token, max uint16) uint16 {
	v := t.val

	switch t.typ {
	case tokenLit:
	case tokenRef:
		n, ok := a.labels[t.text]
		if !ok {
			fail(ErrUndefinedLabel, "%s", t.text)
		}
		v = n
	default:
		fail(ErrSyntax, "expected value")
	}

	if v > int(max) {
		fail(ErrIllegalInstruction, "#%X is larger than #%X", v, max)
	}

	return uint16(v)
}

/// Patch all forward references.
///
func (a *assembler) resolve() {
	for _, f := range a.fixups {
		a.line = f.line

		v, ok := a.labels[f.label]
		if !ok {
			fail(ErrUndefinedLabel, "%s", f.label)
		}

		if f.word {
			a.rom[f.offset] = byte(v >> 8)
			a.rom[f.offset+1] = byte(v)
			continue
		}

		if v > addressMask {
			fail(ErrIllegalInstruction, "#%X is not an address", v)
		}

		a.rom[f.offset] |= byte(v>>8) & 0xF
		a.rom[f.offset+1] = byte(v)
	}

	a.line = 0
}
