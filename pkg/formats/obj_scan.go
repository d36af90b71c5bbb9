package formats

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// whitespace is the set of bytes separating OBJ fields.
const whitespace = " \t\r\v\f"

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func hasDigit(field []byte) bool {
	for _, c := range field {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}

// lineScanner splits source text into lines without their newline.
// A trailing '\r' (CRLF files) is dropped as well.
type lineScanner struct {
	src    []byte
	pos    int
	cur    []byte
	num    int
	maxLen int
	fail   error
}

func newLineScanner(src []byte, maxLen int) *lineScanner {
	return &lineScanner{src: src, maxLen: maxLen}
}

// next advances to the following line. It returns false at the end of the
// source or when a line exceeds the maximum length (see err).
func (s *lineScanner) next() bool {
	if s.fail != nil || s.pos >= len(s.src) {
		return false
	}

	rest := s.src[s.pos:]
	line := rest
	if end := bytes.IndexByte(rest, '\n'); end >= 0 {
		line = rest[:end]
		s.pos += end + 1
	} else {
		s.pos = len(s.src)
	}
	s.num++

	line = bytes.TrimSuffix(line, []byte{'\r'})
	if len(line) > s.maxLen {
		s.fail = fmt.Errorf("%w: %d bytes (max %d)", ErrLineTooLong, len(line), s.maxLen)
		s.cur = nil
		return false
	}
	s.cur = line
	return true
}

// text returns the current line. It aliases the source.
func (s *lineScanner) text() []byte {
	return s.cur
}

// lineNum returns the 1-based number of the current line.
func (s *lineScanner) lineNum() int {
	return s.num
}

func (s *lineScanner) err() error {
	return s.fail
}

// reset rewinds the scanner to the start of the source.
func (s *lineScanner) reset() {
	s.pos = 0
	s.num = 0
	s.cur = nil
	s.fail = nil
}

func skipSpace(line []byte, pos int) int {
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	return pos
}

// scanField returns the maximal run of bytes at pos that are neither
// whitespace nor '/', and the position just past it.
func scanField(line []byte, pos int) ([]byte, int) {
	start := pos
	for pos < len(line) && !isSpace(line[pos]) && line[pos] != '/' {
		pos++
	}
	return line[start:pos], pos
}

// scanFloat skips whitespace and parses the next field as a float.
// A field without digits or outside the float32 range is an error.
func scanFloat(line []byte, pos int) (float32, int, error) {
	field, next := scanField(line, skipSpace(line, pos))
	if len(field) == 0 {
		return 0, next, fmt.Errorf("%w: missing value", ErrMalformedNumber)
	}
	if !hasDigit(field) {
		return 0, next, fmt.Errorf("%w: %q has no digits", ErrMalformedNumber, field)
	}
	v, err := strconv.ParseFloat(string(field), 64)
	if err != nil {
		return 0, next, fmt.Errorf("%w: %q", ErrMalformedNumber, field)
	}
	if math.Abs(v) > math.MaxFloat32 {
		return 0, next, fmt.Errorf("%w: %q overflows float32", ErrMalformedNumber, field)
	}
	return float32(v), next, nil
}

// readFloats reads exactly len(out) floats starting at pos.
// Fields after the last one read are ignored.
func readFloats(line []byte, pos int, out []float32) error {
	for i := range out {
		v, next, err := scanFloat(line, pos)
		if err != nil {
			return fmt.Errorf("component %d: %w", i+1, err)
		}
		out[i] = v
		pos = next
	}
	return nil
}

// scanIndex parses a face index field at pos, ending at '/', whitespace or
// the end of the line. An empty field reports present == false.
func scanIndex(line []byte, pos int) (value int, present bool, next int, err error) {
	field, next := scanField(line, pos)
	if len(field) == 0 {
		return 0, false, next, nil
	}
	v, err := strconv.Atoi(string(field))
	if err != nil {
		return 0, false, next, fmt.Errorf("%w: %q", ErrMalformedNumber, field)
	}
	return v, true, next, nil
}
