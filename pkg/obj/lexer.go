package obj

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// cursor is a read position in the source. Parsers take a cursor by value
// and return the advanced one; on failure they return their input unchanged.
type cursor struct {
	input string
	pos   int
}

func (c cursor) rest() string {
	return c.input[c.pos:]
}

func (c cursor) eof() bool {
	return c.pos >= len(c.input)
}

// peek returns the next byte, or 0 at end of input.
func (c cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.input[c.pos]
}

func (c cursor) advance(n int) cursor {
	c.pos += n
	return c
}

// location returns the 1-based line and byte column of the cursor.
func (c cursor) location() (line, column int) {
	before := c.input[:c.pos]
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return strings.Count(before, "\n") + 1, c.pos - lineStart + 1
}

// lineCounter maps increasing byte offsets to 1-based line numbers without
// rescanning the input from the start.
type lineCounter struct {
	input string
	pos   int
	line  int
}

func newLineCounter(input string) *lineCounter {
	return &lineCounter{input: input, line: 1}
}

func (l *lineCounter) lineAt(pos int) int {
	if pos < l.pos {
		l.pos, l.line = 0, 1
	}
	l.line += strings.Count(l.input[l.pos:pos], "\n")
	l.pos = pos
	return l.line
}

func (c cursor) hasPrefix(s string) bool {
	return strings.HasPrefix(c.rest(), s)
}

// word returns the run of non-blank bytes at the cursor, for error messages.
func (c cursor) word() string {
	rest := c.rest()
	end := strings.IndexAny(rest, " \t\r\n")
	if end < 0 {
		end = len(rest)
	}
	if end > 32 {
		end = 32
	}
	return rest[:end]
}

// atWordEnd reports whether the cursor is at a space, a line break, a
// comment or the end of input.
func atWordEnd(c cursor) bool {
	if c.eof() {
		return true
	}
	switch c.peek() {
	case ' ', '\r', '\n', '#':
		return true
	}
	return false
}

func space(c cursor) (cursor, bool) {
	if c.peek() == ' ' {
		return c.advance(1), true
	}
	return c, false
}

// spaces matches one or more spaces.
func spaces(c cursor) (cursor, bool) {
	rest := c.rest()
	n := 0
	for n < len(rest) && rest[n] == ' ' {
		n++
	}
	if n == 0 {
		return c, false
	}
	return c.advance(n), true
}

func optSpaces(c cursor) cursor {
	c, _ = spaces(c)
	return c
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_'
}

// identifier matches names used by "o", "g", "usemtl" and "mtllib" records.
func identifier(c cursor) (cursor, string, bool) {
	rest := c.rest()
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if r == utf8.RuneError || !isIdentRune(r) {
			break
		}
		n += size
	}
	if n == 0 {
		return c, "", false
	}
	return c.advance(n), rest[:n], true
}

// lineTerminator matches "\n" or "\r\n".
func lineTerminator(c cursor) (cursor, bool) {
	switch {
	case c.hasPrefix("\n"):
		return c.advance(1), true
	case c.hasPrefix("\r\n"):
		return c.advance(2), true
	}
	return c, false
}

// commentLine matches '#' through the end of the line. The terminator is
// consumed but not part of the returned text. A comment may end the input.
func commentLine(c cursor) (cursor, string, bool) {
	if c.peek() != '#' {
		return c, "", false
	}
	body := c.rest()[1:]
	end := strings.IndexByte(body, '\n')
	if end < 0 {
		return c.advance(1 + len(body)), body, true
	}
	return c.advance(1 + end + 1), strings.TrimSuffix(body[:end], "\r"), true
}

func blankLine(c cursor) (cursor, bool) {
	next, ok := lineTerminator(optSpaces(c))
	if !ok {
		return c, false
	}
	return next, true
}

func ignorableLine(c cursor) (cursor, bool) {
	if next, ok := blankLine(c); ok {
		return next, true
	}
	next, _, ok := commentLine(c)
	return next, ok
}

// skipIgnorable consumes any run of blank and comment lines.
func skipIgnorable(c cursor) cursor {
	for {
		next, ok := ignorableLine(c)
		if !ok {
			return c
		}
		c = next
	}
}

// lineEnd matches optional trailing spaces followed by a line terminator,
// a trailing comment or the end of input.
func lineEnd(c cursor) (cursor, bool) {
	trimmed := optSpaces(c)
	if next, ok := lineTerminator(trimmed); ok {
		return next, true
	}
	if next, _, ok := commentLine(trimmed); ok {
		return next, true
	}
	if trimmed.eof() {
		return trimmed, true
	}
	return c, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// float matches a decimal literal with optional sign, fraction and exponent.
// Integer literals are accepted.
func float(c cursor) (cursor, float32, bool) {
	rest := c.rest()
	n := 0
	if n < len(rest) && (rest[n] == '+' || rest[n] == '-') {
		n++
	}
	digits := 0
	for n < len(rest) && isDigit(rest[n]) {
		n++
		digits++
	}
	if n < len(rest) && rest[n] == '.' {
		n++
		for n < len(rest) && isDigit(rest[n]) {
			n++
			digits++
		}
	}
	if digits == 0 {
		return c, 0, false
	}
	if n < len(rest) && (rest[n] == 'e' || rest[n] == 'E') {
		m := n + 1
		if m < len(rest) && (rest[m] == '+' || rest[m] == '-') {
			m++
		}
		start := m
		for m < len(rest) && isDigit(rest[m]) {
			m++
		}
		if m > start {
			n = m
		}
	}

	v, err := strconv.ParseFloat(rest[:n], 32)
	if err != nil {
		return c, 0, false
	}
	return c.advance(n), float32(v), true
}

// index matches an unsigned decimal integer.
func index(c cursor) (cursor, int, bool) {
	rest := c.rest()
	n := 0
	for n < len(rest) && isDigit(rest[n]) {
		n++
	}
	if n == 0 {
		return c, 0, false
	}
	v, err := strconv.Atoi(rest[:n])
	if err != nil {
		return c, 0, false
	}
	return c.advance(n), v, true
}
