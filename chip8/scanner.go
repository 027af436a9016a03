package chip8

import (
	"strconv"
	"strings"
)

/// Type for scanned tokens.
///
type tokenType uint

/// Lexical assembly tokens.
///
const (
	tokenEnd tokenType = iota
	tokenComma
	tokenLabel
	tokenRef
	tokenLit
	tokenV
	tokenI
	tokenIndirect
	tokenK
	tokenDT
	tokenST
	tokenF
	tokenB
)

/// A parsed, lexical token.
///
type token struct {
	typ tokenType

	// register index or literal value
	val int

	// label or mnemonic
	text string
}

/// Assembler token scanner over a single, upper-cased line.
///
type tokenScanner struct {
	bytes []byte

	// scan position
	pos int
}

/// Reads the next token from a scanner.
///
func (s *tokenScanner) scanToken() token {
	for s.pos < len(s.bytes) && s.bytes[s.pos] < 33 {
		s.pos++
	}

	// comments run to the end of the line
	if s.pos >= len(s.bytes) || s.bytes[s.pos] == ';' {
		s.pos = len(s.bytes)
		return token{typ: tokenEnd}
	}

	c := s.bytes[s.pos]

	switch {
	case c == ',':
		s.pos++
		return token{typ: tokenComma}
	case c == '.':
		return s.scanLabel()
	case c == '[':
		return s.scanIndirection()
	case c == '#':
		return s.scanLit(16, "0123456789ABCDEF")
	case c == '$':
		return s.scanLit(2, "01.")
	case c >= '0' && c <= '9':
		return s.scanLit(10, "0123456789")
	case c >= 'A' && c <= 'Z', c == '_':
		return s.scanIdentifier()
	}

	fail(ErrSyntax, "unexpected character %q", c)
	return token{}
}

/// Scan a list of comma-separated operands to the end of the line.
///
func (s *tokenScanner) scanOperands() []token {
	var tokens []token

	t := s.scanToken()
	if t.typ == tokenEnd {
		return nil
	}

	for {
		if t.typ == tokenEnd || t.typ == tokenComma || t.typ == tokenLabel {
			fail(ErrSyntax, "expected operand")
		}

		tokens = append(tokens, t)

		switch sep := s.scanToken(); sep.typ {
		case tokenEnd:
			return tokens
		case tokenComma:
			t = s.scanToken()
		default:
			fail(ErrSyntax, "expected comma")
		}
	}
}

/// Scan a label definition.
///
func (s *tokenScanner) scanLabel() token {
	s.pos++

	if s.pos < len(s.bytes) {
		if id := s.scanIdentifier(); id.typ == tokenRef {
			return token{typ: tokenLabel, text: id.text}
		}
	}

	fail(ErrSyntax, "expected label")
	return token{}
}

/// Scan an identifier: register, mnemonic or label reference.
///
func (s *tokenScanner) scanIdentifier() token {
	i := s.pos

	// advance to the first non-identifier character
	for ; s.pos < len(s.bytes); s.pos++ {
		c := s.bytes[s.pos]

		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			break
		}
	}

	id := string(s.bytes[i:s.pos])

	// v-registers
	if len(id) == 2 && id[0] == 'V' {
		if x := strings.IndexByte("0123456789ABCDEF", id[1]); x >= 0 {
			return token{typ: tokenV, val: x}
		}
	}

	switch id {
	case "":
		fail(ErrSyntax, "expected identifier")
	case "I":
		return token{typ: tokenI}
	case "K":
		return token{typ: tokenK}
	case "DT":
		return token{typ: tokenDT}
	case "ST":
		return token{typ: tokenST}
	case "F":
		return token{typ: tokenF}
	case "B":
		return token{typ: tokenB}
	}

	return token{typ: tokenRef, text: id}
}

/// Scan [I].
///
func (s *tokenScanner) scanIndirection() token {
	s.pos++

	if t := s.scanToken(); t.typ == tokenI {
		for s.pos < len(s.bytes) && s.bytes[s.pos] < 33 {
			s.pos++
		}

		if s.pos < len(s.bytes) && s.bytes[s.pos] == ']' {
			s.pos++
			return token{typ: tokenIndirect}
		}
	}

	fail(ErrSyntax, "expected [I]")
	return token{}
}

/// Scan a literal in base. Hex literals begin with #, binary with $
/// where a . can stand in for 0.
///
func (s *tokenScanner) scanLit(base int, digits string) token {
	i := s.pos

	// skip the prefix
	if base != 10 {
		s.pos++
	}

	for ; s.pos < len(s.bytes); s.pos++ {
		if strings.IndexByte(digits, s.bytes[s.pos]) < 0 {
			break
		}
	}

	text := string(s.bytes[i:s.pos])
	digitText := text
	if base != 10 {
		digitText = text[1:]
	}

	n, err := strconv.ParseUint(strings.ReplaceAll(digitText, ".", "0"), base, 16)
	if err != nil {
		fail(ErrSyntax, "illegal literal %s", text)
	}

	return token{typ: tokenLit, val: int(n)}
}
