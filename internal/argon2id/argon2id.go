// Package argon2id hashes passwords with argon2id and encodes them in
// the standard $argon2id$... reference format.
package argon2id

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHash         = errors.New("encoded hash is malformed")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// ArgonParams are the cost parameters baked into each encoded hash.
type ArgonParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultParams = ArgonParams{
	Memory:      64 * 1024, // KiB
	Iterations:  1,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// EncodeHash hashes the password with a fresh random salt and returns
// the encoded form suitable for storage.
func EncodeHash(password string, p ArgonParams) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return EncodeHashWithSalt(password, p, salt), nil
}

// EncodeHashWithSalt encodes the hash of password under the given salt.
func EncodeHashWithSalt(password string, p ArgonParams, salt []byte) string {
	hash := HashWithSalt(password, p, salt)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

// HashWithSalt returns the raw key bytes for comparing against a
// decoded hash.
func HashWithSalt(password string, p ArgonParams, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}

// DecodeHash splits an encoded hash back into its parameters, salt and
// key so a candidate password can be hashed the same way.
func DecodeHash(encodedHash string) (p *ArgonParams, salt []byte, hash []byte, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("parsing version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, ErrIncompatibleVersion
	}

	p = &ArgonParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return nil, nil, nil, fmt.Errorf("parsing parameters: %w", err)
	}

	if salt, err = base64.RawStdEncoding.Strict().DecodeString(parts[4]); err != nil {
		return nil, nil, nil, fmt.Errorf("decoding salt: %w", err)
	}
	p.SaltLength = uint32(len(salt))

	if hash, err = base64.RawStdEncoding.Strict().DecodeString(parts[5]); err != nil {
		return nil, nil, nil, fmt.Errorf("decoding hash: %w", err)
	}
	p.KeyLength = uint32(len(hash))

	return p, salt, hash, nil
}
