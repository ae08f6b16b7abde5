package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. Output length is fixed at 32 bytes to match the
// stored credential format.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltBytes    = 16
)

// NewSalt returns a fresh random salt, hex encoded.
func NewSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives the hex-encoded scrypt hash of password under salt.
func HashPassword(password, salt string) (string, error) {
	derived, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(derived), nil
}

// VerifyPassword derives the hash of password under salt and compares it to
// the stored hex hash in constant time. A mismatch is not an error.
func VerifyPassword(password, salt, storedHex string) (bool, error) {
	derived, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false, err
	}
	stored, err := hex.DecodeString(storedHex)
	if err != nil {
		return false, err
	}
	if len(stored) != len(derived) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(derived, stored) == 1, nil
}
