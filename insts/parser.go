// Package insts provides instruction-set definitions and line parsing.
package insts

import (
	"strings"
	"unicode"
)

// Statement is one parsed source line: an upper-cased mnemonic plus the
// raw operand tokens. Operands are not validated here; they resolve at
// execution time.
type Statement struct {
	// Mnemonic is the first token, upper-cased.
	Mnemonic string

	// Args holds the remaining tokens as written.
	Args []string

	// Text is the instruction text with comments stripped, for error
	// reporting.
	Text string
}

// Parser splits assembly source lines into statements. Comments start
// at "//" or ";" and run to the end of the line. Tokens are separated
// by whitespace, commas, or both.
type Parser struct{}

// NewParser creates a line parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseLine parses a single source line. Blank lines and comment-only
// lines return nil; the parser itself never fails.
func (p *Parser) ParseLine(line string) *Statement {
	code := stripComment(line)

	fields := strings.FieldsFunc(code, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil
	}

	return &Statement{
		Mnemonic: strings.ToUpper(fields[0]),
		Args:     fields[1:],
		Text:     strings.TrimSpace(code),
	}
}

// stripComment removes a trailing line comment. Cutting at "//" first
// and ";" second removes whichever marker appears earliest.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return line
}
