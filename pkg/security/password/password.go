// Package password implements one-way salted password hashing and verification.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// MaxBcryptBytes is the longest password bcrypt accepts.
const MaxBcryptBytes = 72

var (
	// ErrMismatch is returned by Verify when the password does not match the hash.
	ErrMismatch = errors.New("password mismatch")
	ErrTooLong  = fmt.Errorf("password too long (max %d bytes)", MaxBcryptBytes)
)

// Hasher produces self-describing encoded hashes. Verification re-hashes the
// candidate with the stored salt and compares; hashes are never decrypted.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) error
}

// New returns the hasher registered under name ("bcrypt" or "argon2id").
func New(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bcrypt":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	case "argon2id", "argon2":
		return Argon2id{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// Bcrypt embeds its salt and cost in the encoded hash.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	if len(password) > MaxBcryptBytes {
		return "", ErrTooLong
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b Bcrypt) Verify(encoded, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

// Argon2id parameters (tuned for server-side hashing).
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16
	argonPrefix         = "$argon2id$"
)

// Argon2id encodes hashes as "$argon2id$<salt b64>$<key b64>".
type Argon2id struct{}

func (Argon2id) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return argonPrefix + b64(salt) + "$" + b64(key), nil
}

func (Argon2id) Verify(encoded, password string) error {
	rest, ok := strings.CutPrefix(encoded, argonPrefix)
	if !ok {
		return ErrMismatch
	}
	saltPart, keyPart, ok := strings.Cut(rest, "$")
	if !ok {
		return ErrMismatch
	}
	salt, err := base64.RawStdEncoding.DecodeString(saltPart)
	if err != nil {
		return ErrMismatch
	}
	want, err := base64.RawStdEncoding.DecodeString(keyPart)
	if err != nil {
		return ErrMismatch
	}
	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

func b64(b []byte) string { return base64.RawStdEncoding.EncodeToString(b) }
