// Package encoding provides text normalisation for OBJ source files.
package encoding

import (
	"bytes"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeSource converts OBJ source bytes to plain UTF-8.
// A UTF-8 or UTF-16 (LE/BE) byte order mark selects the decoding and is
// removed; input without a BOM is treated as UTF-8.
// Content after the first NUL byte is dropped.
func DecodeSource(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, err
	}
	return TrimAtNull(result), nil
}

// HasBOM reports whether data starts with a UTF-8 or UTF-16 byte order mark.
func HasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// TrimAtNull returns data up to (not including) the first NUL byte.
func TrimAtNull(data []byte) []byte {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i]
	}
	return data
}

// NormalizePath normalizes an asset path for cache lookup.
// Backslashes from Windows-authored files become forward slashes.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return filepath.ToSlash(filepath.Clean(path))
}
