// Package rescode generates reservation codes. Codes are random, not
// sequential, so one code cannot be derived from another.
package rescode

import (
	"crypto/rand"
	"fmt"
)

// Length is the number of characters in a generated code.
const Length = 24

// alphabet omits I, L, O, 0 and 1. Codes get read out at the door, so every
// character must be unambiguous.
const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// limit is the largest multiple of len(alphabet) below 256. Bytes at or
// above it are rejected so every alphabet character is equally likely.
const limit = byte(256 / len(alphabet) * len(alphabet))

// Generate returns a new random reservation code.
func Generate() (string, error) {
	code := make([]byte, 0, Length)
	buf := make([]byte, Length)

	for len(code) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("rand.Read -> %w", err)
		}

		for _, b := range buf {
			if b >= limit {
				continue
			}
			code = append(code, alphabet[int(b)%len(alphabet)])
			if len(code) == Length {
				break
			}
		}
	}

	return string(code), nil
}
