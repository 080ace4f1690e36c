package argon2id

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	encoded, err := EncodeHash("correct horse battery staple", DefaultParams)
	if err != nil {
		t.Fatalf("encoding hash: %v", err)
	}

	p, salt, hash, err := DecodeHash(encoded)
	if err != nil {
		t.Fatalf("decoding hash: %v", err)
	}
	if p.Memory != DefaultParams.Memory || p.Iterations != DefaultParams.Iterations || p.Parallelism != DefaultParams.Parallelism {
		t.Errorf("decoded params differ: %+v", p)
	}

	recomputed := HashWithSalt("correct horse battery staple", *p, salt)
	if !bytes.Equal(recomputed, hash) {
		t.Error("recomputed hash does not match decoded hash")
	}

	wrong := HashWithSalt("incorrect horse", *p, salt)
	if bytes.Equal(wrong, hash) {
		t.Error("different password produced the same hash")
	}
}

func TestDecodeHashMalformed(t *testing.T) {
	for _, encoded := range []string{
		"",
		"not a hash",
		"$scrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA",
	} {
		if _, _, _, err := DecodeHash(encoded); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("DecodeHash(%q): expected ErrInvalidHash, got %v", encoded, err)
		}
	}
}

func TestDecodeHashIncompatibleVersion(t *testing.T) {
	_, _, _, err := DecodeHash("$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	if !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("expected ErrIncompatibleVersion, got %v", err)
	}
}
