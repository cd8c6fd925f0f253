package token

import (
	"crypto/rand"
	"errors"
)

// Length is the number of characters in a confirmation token. 25 characters
// over a 62-symbol alphabet carry roughly 148 bits of entropy, far past the
// point where guessing or collision is a concern.
const Length = 25

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns a new opaque confirmation token. Tokens are pure random
// strings resolved by lookup; they carry no payload and cannot be validated
// offline.
func Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrGenerateFailed, err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
