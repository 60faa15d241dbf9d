// Package lexer turns raw assembly source into a flat stream of tokens. It knows
// nothing about instructions or grammar -- only characters, comments and the five
// literal forms described in §4.2.
package lexer

import (
	"unicode"

	"github.com/nicholasprowse/HADLoC/internal/diag"
	"github.com/nicholasprowse/HADLoC/internal/text"
	"github.com/nicholasprowse/HADLoC/internal/token"
)

var keywords = map[string]bool{
	"lda": true, "ldb": true, "ldu": true, "mov": true, "jmp": true, "jlt": true,
	"jeq": true, "jgt": true, "jle": true, "jge": true, "jne": true, "nop": true,
	"jis": true, "jcs": true, "opd": true, "opi": true, "hlt": true, "not": true,
	"neg": true, "inc": true, "dec": true, "sub": true, "and": true, "or": true,
	"add": true, "ics": true, "icc": true, "define": true,
}

var registers = map[string]bool{
	"X": true, "L": true, "I": true, "H": true, "M": true, "Y": true,
}

const symbolRunes = ":+-&|!()"

// Lex tokenizes src in its entirety, returning a flat token stream with
// INSTRUCTION_END markers inserted between tokens that began on different source
// lines. file is used only to tag diagnostics; it may be empty.
func Lex(file string, src text.Text) ([]token.Token, error) {
	l := &lexer{file: file, src: src}
	return l.run()
}

type lexer struct {
	file string
	src  text.Text
	pos  int
}

func (l *lexer) run() ([]token.Token, error) {
	var tokens []token.Token

	prevLine := -1
	havePrev := false

	for {
		if err := l.skipSpaceAndComments(); err != nil {
			return nil, err
		}

		if l.pos >= l.src.Len() {
			break
		}

		start := l.pos
		line := l.src.Coordinate(l.pos).Line

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		if havePrev && line != prevLine {
			tokens = append(tokens, token.NewEnd(l.src.Slice(start, start+1)))
		}

		tokens = append(tokens, tok)
		prevLine = line
		havePrev = true
	}

	return tokens, nil
}

// skipSpaceAndComments advances past runs of whitespace, "//" line comments and
// "/* */" block comments. An unterminated block comment is a syntax error pointing
// at its opening delimiter.
func (l *lexer) skipSpaceAndComments() error {
	n := l.src.Len()

	for l.pos < n {
		r := l.src.At(l.pos)

		switch {
		case unicode.IsSpace(r):
			l.pos++

		case r == '/' && l.pos+1 < n && l.src.At(l.pos+1) == '/':
			line := l.src.Coordinate(l.pos).Line
			l.pos += 2

			for l.pos < n && l.src.Coordinate(l.pos).Line == line {
				l.pos++
			}

		case r == '/' && l.pos+1 < n && l.src.At(l.pos+1) == '*':
			start := l.pos
			l.pos += 2

			closed := false

			for l.pos+1 < n {
				if l.src.At(l.pos) == '*' && l.src.At(l.pos+1) == '/' {
					l.pos += 2
					closed = true

					break
				}

				l.pos++
			}

			if !closed {
				l.pos = n
				return diag.SyntaxError(l.file, l.src.Slice(start, n), "comment not closed")
			}

		default:
			return nil
		}
	}

	return nil
}

// next lexes exactly one token starting at l.pos, which must not be whitespace or
// the start of a comment.
func (l *lexer) next() (token.Token, error) {
	r := l.src.At(l.pos)

	switch {
	case isSymbolRune(r):
		start := l.pos
		l.pos++

		return token.New(token.Symbol, l.src.Slice(start, l.pos)), nil

	case r == '\'':
		return l.lexChar()

	case unicode.IsDigit(r):
		return l.lexNumber()

	case unicode.IsLetter(r) || r == '_':
		return l.lexWord(), nil

	default:
		return token.Token{}, diag.SyntaxError(l.file, l.src.Slice(l.pos, l.pos+1), "unexpected character")
	}
}

func isSymbolRune(r rune) bool {
	for _, s := range symbolRunes {
		if r == s {
			return true
		}
	}

	return false
}

func (l *lexer) lexWord() token.Token {
	start := l.pos
	n := l.src.Len()
	line := l.src.Coordinate(start).Line

	for l.pos < n {
		r := l.src.At(l.pos)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}

		if l.src.Coordinate(l.pos).Line != line {
			break
		}

		l.pos++
	}

	word := l.src.Slice(start, l.pos)
	s := word.String()

	switch {
	case keywords[s]:
		return token.New(token.Keyword, word)
	case registers[s]:
		return token.New(token.Register, word)
	default:
		return token.New(token.Identifier, word)
	}
}

// lexNumber tries, in order, binary, hexadecimal, octal and decimal literals. Every
// form except octal requires at least one digit after its prefix; a bare "0" is a
// valid octal zero.
func (l *lexer) lexNumber() (token.Token, error) {
	start := l.pos
	n := l.src.Len()

	// A literal never continues onto the next source line.
	line := l.src.Coordinate(start).Line
	for end := start; end < n; end++ {
		if l.src.Coordinate(end).Line != line {
			n = end
			break
		}
	}

	if l.src.At(l.pos) == '0' && l.pos+1 < n && isBinPrefix(l.src.At(l.pos+1)) {
		prefixEnd := l.pos + 2
		digitStart := prefixEnd
		l.pos = digitStart

		value := 0
		count := 0

		for l.pos < n && (l.src.At(l.pos) == '0' || l.src.At(l.pos) == '1') {
			value = value*2 + int(l.src.At(l.pos)-'0')
			l.pos++
			count++
		}

		if count == 0 {
			return token.Token{}, diag.SyntaxError(l.file, l.src.Slice(start, prefixEnd), "invalid binary literal")
		}

		return token.NewInteger(l.src.Slice(start, l.pos), int32(value)), nil
	}

	if l.src.At(l.pos) == '0' && l.pos+1 < n && isHexPrefix(l.src.At(l.pos+1)) {
		prefixEnd := l.pos + 2
		l.pos = prefixEnd

		value := 0
		count := 0

		for l.pos < n {
			d, ok := hexValue(l.src.At(l.pos))
			if !ok {
				break
			}

			value = value*16 + d
			l.pos++
			count++
		}

		if count == 0 {
			return token.Token{}, diag.SyntaxError(l.file, l.src.Slice(start, prefixEnd), "invalid hex literal")
		}

		return token.NewInteger(l.src.Slice(start, l.pos), int32(value)), nil
	}

	if l.src.At(l.pos) == '0' {
		l.pos++

		value := 0

		for l.pos < n && l.src.At(l.pos) >= '0' && l.src.At(l.pos) <= '7' {
			value = value*8 + int(l.src.At(l.pos)-'0')
			l.pos++
		}

		return token.NewInteger(l.src.Slice(start, l.pos), int32(value)), nil
	}

	value := 0

	for l.pos < n && unicode.IsDigit(l.src.At(l.pos)) {
		value = value*10 + int(l.src.At(l.pos)-'0')
		l.pos++
	}

	return token.NewInteger(l.src.Slice(start, l.pos), int32(value)), nil
}

func isBinPrefix(r rune) bool { return r == 'b' || r == 'B' }
func isHexPrefix(r rune) bool { return r == 'x' || r == 'X' }

func hexValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// lexChar lexes a single-quoted character literal: exactly one ASCII printable
// character (32-126 inclusive) between two single quotes.
func (l *lexer) lexChar() (token.Token, error) {
	start := l.pos
	n := l.src.Len()

	if l.pos+2 >= n || l.src.At(l.pos+2) != '\'' {
		end := l.pos + 1
		if end > n {
			end = n
		}

		return token.Token{}, diag.SyntaxError(l.file, l.src.Slice(start, end), "invalid character literal")
	}

	c := l.src.At(l.pos + 1)
	l.pos += 3

	if c < 32 || c > 126 {
		return token.Token{}, diag.SyntaxError(l.file, l.src.Slice(start, l.pos), "invalid character literal")
	}

	return token.NewInteger(l.src.Slice(start, l.pos), int32(c)), nil
}
