package formats

import (
	"errors"
	"strings"
	"testing"
)

func collectLines(s *lineScanner) []string {
	var lines []string
	for s.next() {
		lines = append(lines, string(s.text()))
	}
	return lines
}

func TestLineScanner_Lines(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{"lf", "a\nb\nc\n", []string{"a", "b", "c"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"blank lines", "a\n\n\nb\n", []string{"a", "", "", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLineScanner([]byte(tt.src), DefaultMaxLineLength)
			got := collectLines(s)
			if s.err() != nil {
				t.Fatalf("unexpected error: %v", s.err())
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d lines, got %d: %q", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestLineScanner_MaxLength(t *testing.T) {
	exact := strings.Repeat("x", 8)
	s := newLineScanner([]byte(exact+"\n"+exact+"x\nafter\n"), 8)

	if !s.next() || string(s.text()) != exact {
		t.Fatalf("expected line of exactly max length to be accepted")
	}
	if s.next() {
		t.Fatal("expected over-long line to stop the scanner")
	}
	if !errors.Is(s.err(), ErrLineTooLong) {
		t.Errorf("expected ErrLineTooLong, got %v", s.err())
	}
	if s.lineNum() != 2 {
		t.Errorf("expected failure on line 2, got %d", s.lineNum())
	}
	if s.next() {
		t.Error("expected scanner to stay stopped after an error")
	}
}

func TestLineScanner_Reset(t *testing.T) {
	s := newLineScanner([]byte("a\nb\n"), DefaultMaxLineLength)

	first := collectLines(s)
	s.reset()
	second := collectLines(s)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 lines on both passes, got %d and %d", len(first), len(second))
	}
	if s.lineNum() != 2 {
		t.Errorf("expected line number 2 after second pass, got %d", s.lineNum())
	}
}

func TestScanFloat(t *testing.T) {
	tests := []struct {
		in       string
		expected float32
		next     int
		wantErr  bool
	}{
		{"1.5", 1.5, 3, false},
		{"  -2", -2, 4, false},
		{"\t3e1 4", 30, 4, false},
		{".5", 0.5, 2, false},
		{"1/2", 1, 1, false},
		{"", 0, 0, true},
		{"   ", 0, 3, true},
		{"abc", 0, 3, true},
		{"1.0x", 0, 4, true},
		{"inf", 0, 3, true},
		{"-", 0, 1, true},
		{"1e39", 0, 4, true},
		{"-3.5e38", 0, 7, true},
	}

	for _, tc := range tests {
		got, next, err := scanFloat([]byte(tc.in), 0)
		if tc.wantErr {
			if !errors.Is(err, ErrMalformedNumber) {
				t.Errorf("scanFloat(%q): expected ErrMalformedNumber, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("scanFloat(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.expected || next != tc.next {
			t.Errorf("scanFloat(%q) = %v, %d; expected %v, %d", tc.in, got, next, tc.expected, tc.next)
		}
	}
}

func TestReadFloats(t *testing.T) {
	out := make([]float32, 3)
	if err := readFloats([]byte("v 1 2 3"), 1, out); err != nil {
		t.Fatalf("readFloats failed: %v", err)
	}
	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Errorf("unexpected values %v", out)
	}

	err := readFloats([]byte("v 1 2"), 1, out)
	if !errors.Is(err, ErrMalformedNumber) {
		t.Errorf("expected ErrMalformedNumber for missing component, got %v", err)
	}
}

func TestScanIndex(t *testing.T) {
	tests := []struct {
		in      string
		value   int
		present bool
		next    int
		wantErr bool
	}{
		{"12", 12, true, 2, false},
		{"3/4", 3, true, 1, false},
		{"/4", 0, false, 0, false},
		{"", 0, false, 0, false},
		{"-1", -1, true, 2, false},
		{"1.5", 0, false, 3, true},
		{"x/1", 0, false, 1, true},
	}

	for _, tc := range tests {
		value, present, next, err := scanIndex([]byte(tc.in), 0)
		if tc.wantErr {
			if !errors.Is(err, ErrMalformedNumber) {
				t.Errorf("scanIndex(%q): expected ErrMalformedNumber, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("scanIndex(%q): unexpected error %v", tc.in, err)
			continue
		}
		if value != tc.value || present != tc.present || next != tc.next {
			t.Errorf("scanIndex(%q) = %d, %v, %d; expected %d, %v, %d",
				tc.in, value, present, next, tc.value, tc.present, tc.next)
		}
	}
}

func TestAttributeTable(t *testing.T) {
	table := newAttributeTable[[3]float32](3)

	if table.Len() != 0 || table.FloatLen() != 0 {
		t.Fatal("expected empty table")
	}

	for i := 0; i < 100; i++ {
		table.append([3]float32{float32(i), 0, 0})
	}

	if table.Len() != 100 {
		t.Errorf("expected 100 tuples, got %d", table.Len())
	}
	if table.FloatLen() != 300 {
		t.Errorf("expected 300 floats, got %d", table.FloatLen())
	}
	if table.Arity() != 3 {
		t.Errorf("expected arity 3, got %d", table.Arity())
	}

	v, ok := table.At(42)
	if !ok || v[0] != 42 {
		t.Errorf("expected tuple 42, got %v (ok=%v)", v, ok)
	}
	if _, ok := table.At(-1); ok {
		t.Error("expected At(-1) to fail")
	}
	if _, ok := table.At(100); ok {
		t.Error("expected At(100) to fail")
	}
}
