package stylist

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Bytes at or above this value are rejected so every character is equally likely.
const rejectAbove = 256 - 256%len(alphabet)

type alphanumeric struct {
	length int
}

func newAlphanumeric(length int) alphanumeric {
	return alphanumeric{length: length}
}

func (a alphanumeric) RandomID() (string, error) {
	out := make([]byte, 0, a.length)
	buf := make([]byte, a.length+a.length/4+1)
	for len(out) < a.length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("alphanumeric id: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == a.length {
				break
			}
		}
	}
	return string(out), nil
}

func (alphanumeric) Style() Style { return Alphanumeric }

func (alphanumeric) stylist() {}
