// Package prng provides the reproducibly seeded cryptographic PRNG that
// CdksKey generation draws from: a user-supplied seed is stretched with
// BLAKE3 into a ChaCha20 key and nonce, so the same seed always produces
// the same automorphism-key-switching key material byte for byte.
package prng

import (
	"crypto/cipher"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20"
)

// PRNG is the randomness source every sampler and key-generation routine in
// this module draws from. It mirrors the Clock-based draw idiom used
// throughout the ring package's samplers: callers hand it a buffer and it
// fills it, advancing its internal stream state.
type PRNG interface {
	Clock(buf []byte)
}

// ChaCha20PRNG is a PRNG seeded once from a caller-supplied seed. Two
// ChaCha20PRNG instances constructed from the same seed produce byte-for-
// byte identical output streams, which is what makes PackingKeyGen's
// output reproducible and testable.
type ChaCha20PRNG struct {
	stream cipher.Stream
}

// NewChaCha20PRNG derives a 256-bit key and 96-bit nonce from seed via
// BLAKE3's extendable output, then builds a ChaCha20 stream cipher over an
// all-zero plaintext stream; Clock reads are just successive keystream
// bytes.
func NewChaCha20PRNG(seed []byte) (*ChaCha20PRNG, error) {
	h := blake3.New()
	if _, err := h.Write(seed); err != nil {
		return nil, fmt.Errorf("prng: seeding blake3: %w", err)
	}

	digest := h.Digest()
	keyAndNonce := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	if _, err := digest.Read(keyAndNonce); err != nil {
		return nil, fmt.Errorf("prng: expanding seed material: %w", err)
	}

	key := keyAndNonce[:chacha20.KeySize]
	nonce := keyAndNonce[chacha20.KeySize:]

	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("prng: building cipher: %w", err)
	}

	return &ChaCha20PRNG{stream: c}, nil
}

// Clock fills buf with the next len(buf) keystream bytes.
func (p *ChaCha20PRNG) Clock(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	p.stream.XORKeyStream(buf, buf)
}
