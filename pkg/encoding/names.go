// Package encoding provides text helpers for id Tech 3 asset names and paths.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Windows1252ToUTF8 converts CP-1252 encoded bytes to a UTF-8 string.
// Community model tools wrote high-byte characters in model and shader
// names; this recovers them. Returns the input as-is if conversion fails.
func Windows1252ToUTF8(data []byte) string {
	decoder := charmap.Windows1252.NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// UTF8ToWindows1252 converts a UTF-8 string to CP-1252 encoded bytes.
// Returns the original bytes if conversion fails.
func UTF8ToWindows1252(s string) []byte {
	encoder := charmap.Windows1252.NewEncoder()
	result, _, err := transform.Bytes(encoder, []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// SanitizeName returns a printable UTF-8 form of a raw name field.
// Valid UTF-8 passes through unchanged; anything else is assumed to be
// CP-1252 from a legacy tool.
func SanitizeName(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return Windows1252ToUTF8([]byte(s))
}

// NormalizeAssetPath normalizes an asset path for case-insensitive lookup.
// The engine's virtual filesystem treats paths as lowercase with forward
// slashes regardless of how the archive stored them.
func NormalizeAssetPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ToLower(path)
	return path
}

// TrimNullBytes removes trailing null bytes from a byte slice.
func TrimNullBytes(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}

// TrimNullString removes trailing null bytes and converts to string.
func TrimNullString(data []byte) string {
	return string(TrimNullBytes(data))
}

// FixedStringToUTF8 converts a fixed-size name field to a UTF-8 string.
// Handles null termination and legacy encoding.
func FixedStringToUTF8(data []byte) string {
	nullIdx := bytes.IndexByte(data, 0)
	if nullIdx >= 0 {
		data = data[:nullIdx]
	}
	return SanitizeName(string(data))
}

// UTF8ToFixedString converts a string to a fixed-size name field.
// Truncates to fit and pads with null bytes.
func UTF8ToFixedString(s string, size int) []byte {
	result := make([]byte, size)
	copy(result, UTF8ToWindows1252(s))
	return result
}
