package packer

import (
	"bytes"
	"crypto/rand"
	"io"

	"filippo.io/age"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/crypto/chacha20poly1305"
)

// Transform is applied to the whole payload between the encoder and the
// envelope on encode, and between the envelope and the decoder on
// decode. Decode is expected to invert Encode exactly; a Transform that
// cannot invert its input (corrupt ciphertext, truncated compressed
// stream, wrong key) returns an error, which Deserialize treats like
// any other envelope rejection — the zero value of the requested type,
// never a propagated error.
type Transform interface {
	Encode(payload []byte) ([]byte, error)
	Decode(payload []byte) ([]byte, error)
}

// IdentityTransform passes bytes through unchanged. The package default.
type IdentityTransform struct{}

func (IdentityTransform) Encode(p []byte) ([]byte, error) { return p, nil }
func (IdentityTransform) Decode(p []byte) ([]byte, error) { return p, nil }

// ZstdTransform compresses the payload with zstd.
type ZstdTransform struct{}

func (ZstdTransform) Encode(p []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(p, nil), nil
}

func (ZstdTransform) Decode(p []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(p, nil)
}

// LZ4Transform compresses the payload with LZ4.
type LZ4Transform struct{}

func (LZ4Transform) Encode(p []byte) ([]byte, error) {
	var out bytes.Buffer
	w := lz4.NewWriter(&out)
	if _, err := w.Write(p); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (LZ4Transform) Decode(p []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(p))
	return io.ReadAll(r)
}

// ChaCha20Poly1305Transform encrypts the payload with a caller-supplied
// 32-byte key, prepending a random nonce to the ciphertext.
type ChaCha20Poly1305Transform struct {
	Key [chacha20poly1305.KeySize]byte
}

func (t ChaCha20Poly1305Transform) Encode(p []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(t.Key[:])
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, p, nil), nil
}

func (t ChaCha20Poly1305Transform) Decode(p []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(t.Key[:])
	if err != nil {
		return nil, err
	}
	if len(p) < chacha20poly1305.NonceSize {
		return nil, ErrInvalidRead
	}
	nonce, ciphertext := p[:chacha20poly1305.NonceSize], p[chacha20poly1305.NonceSize:]
	return aead.Open(nil, nonce, ciphertext, nil)
}

// AgeTransform encrypts the payload with a passphrase-based age
// recipient/identity pair, grounded on the scrypt recipient age uses for
// credential-bundle style encryption rather than public-key recipients.
type AgeTransform struct {
	Passphrase string
}

func (t AgeTransform) Encode(p []byte) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(t.Passphrase)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	w, err := age.Encrypt(&out, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(p); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (t AgeTransform) Decode(p []byte) ([]byte, error) {
	identity, err := age.NewScryptIdentity(t.Passphrase)
	if err != nil {
		return nil, err
	}
	r, err := age.Decrypt(bytes.NewReader(p), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
