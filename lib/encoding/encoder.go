// Package encoding serializes component props into the opaque "p" value
// carried by hx URLs.
//
// Props are packed with msgpack, honouring `msgpack` struct tags, so fields
// tagged `msgpack:"-"` (state rebuilt on every request) never leave the
// server. The packed bytes are either signed (base64 + truncated HMAC,
// readable but tamper-proof) or sealed with AES-256-GCM when a component is
// marked sensitive.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// MaxEncodedLen bounds the encoded form accepted by Decode.
const MaxEncodedLen = 8 << 10

var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
	ErrTooLarge         = errors.New("encoding: encoded props too large")
)

const sigLen = 16

// Encoder encodes and decodes props with one secret. Signing and sealing use
// keys derived from that secret under distinct labels.
type Encoder struct {
	signKey []byte
	gcm     cipher.AEAD
}

// NewEncoder creates an encoder for secret. Any non-empty length is accepted.
func NewEncoder(secret []byte) (*Encoder, error) {
	if len(secret) == 0 {
		return nil, errors.New("encoding: empty secret")
	}

	block, err := aes.NewCipher(derive(secret, "hx/seal"))
	if err != nil {
		return nil, fmt.Errorf("encoding: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encoding: gcm: %w", err)
	}

	return &Encoder{signKey: derive(secret, "hx/sign"), gcm: gcm}, nil
}

func derive(secret []byte, label string) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(label))
	return mac.Sum(nil)
}

// Encode packs v. When sensitive is true the result is encrypted, otherwise
// it is signed.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding: pack: %w", err)
	}
	if sensitive {
		return e.seal(packed)
	}
	return e.sign(packed), nil
}

// Decode unpacks encoded into v, which must be a pointer. An empty string
// leaves v untouched.
func (e *Encoder) Decode(encoded string, sensitive bool, v any) error {
	if encoded == "" {
		return nil
	}
	if len(encoded) > MaxEncodedLen {
		return ErrTooLarge
	}

	var packed []byte
	var err error
	if sensitive {
		packed, err = e.open(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return err
	}

	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

func (e *Encoder) mac(data []byte) []byte {
	m := hmac.New(sha256.New, e.signKey)
	m.Write(data)
	return m.Sum(nil)[:sigLen]
}

// sign returns base64(data) "." base64(mac).
func (e *Encoder) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(e.mac(data))
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	body, sig, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if !hmac.Equal(got, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) seal(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encoding: nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(e.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) open(encoded string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	n := e.gcm.NonceSize()
	if len(raw) < n {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidFormat)
	}

	data, err := e.gcm.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
