package classfile

import (
	"fmt"
	"unicode/utf8"
)

// DecodeModifiedUTF8 decodes the text encoding used by Utf8 constants. The
// null character arrives as the two-byte form C0 80 and supplementary
// characters as a pair of three-byte surrogates; both are accepted. A
// surrogate without its partner decodes to U+FFFD. Raw zero bytes,
// four-byte sequences, stray continuation bytes and truncated sequences are
// rejected.
func DecodeModifiedUTF8(b []byte) (string, error) {
	out := make([]byte, 0, len(b))
	i := 0
	for i < len(b) {
		b0 := b[i]
		switch {
		case b0 == 0:
			return "", &TextEncodingError{Offset: i, Reason: "raw zero byte"}
		case b0 < 0x80:
			out = append(out, b0)
			i++

		case b0&0xE0 == 0xC0:
			if i+1 >= len(b) {
				return "", &TextEncodingError{Offset: i, Reason: "truncated two-byte sequence"}
			}
			if !isContinuation(b[i+1]) {
				return "", &TextEncodingError{Offset: i + 1, Reason: fmt.Sprintf("bad continuation byte 0x%02X", b[i+1])}
			}
			r := rune(b0&0x1F)<<6 | rune(b[i+1]&0x3F)
			out = utf8.AppendRune(out, r)
			i += 2

		case b0&0xF0 == 0xE0:
			r, err := decodeThree(b, i)
			if err != nil {
				return "", err
			}
			i += 3
			if r >= 0xD800 && r <= 0xDBFF && i+2 < len(b) && b[i] == 0xED {
				low, err := decodeThree(b, i)
				if err == nil && low >= 0xDC00 && low <= 0xDFFF {
					r = 0x10000 + (r-0xD800)<<10 + (low - 0xDC00)
					i += 3
				}
			}
			if r >= 0xD800 && r <= 0xDFFF {
				r = utf8.RuneError
			}
			out = utf8.AppendRune(out, r)

		default:
			return "", &TextEncodingError{Offset: i, Reason: fmt.Sprintf("invalid lead byte 0x%02X", b0)}
		}
	}
	return string(out), nil
}

func decodeThree(b []byte, i int) (rune, error) {
	if i+2 >= len(b) {
		return 0, &TextEncodingError{Offset: i, Reason: "truncated three-byte sequence"}
	}
	for j := 1; j <= 2; j++ {
		if !isContinuation(b[i+j]) {
			return 0, &TextEncodingError{Offset: i + j, Reason: fmt.Sprintf("bad continuation byte 0x%02X", b[i+j])}
		}
	}
	return rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F), nil
}

func isContinuation(b byte) bool { return b&0xC0 == 0x80 }

// EncodeModifiedUTF8 is the inverse of DecodeModifiedUTF8.
func EncodeModifiedUTF8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			out = appendThree(out, r)
		default:
			r -= 0x10000
			out = appendThree(out, 0xD800+(r>>10))
			out = appendThree(out, 0xDC00+(r&0x3FF))
		}
	}
	return out
}

func appendThree(out []byte, r rune) []byte {
	return append(out, 0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
}
