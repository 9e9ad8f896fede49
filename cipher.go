package smpcrypto

import (
	"crypto/aes"

	"github.com/pkg/errors"
)

// BlockSize is the AES block size in bytes. Keys and CMAC tags share it.
const BlockSize = aes.BlockSize

// BlockCipher encrypts exactly one 16 byte block. Implementations must be
// deterministic and free of side effects.
type BlockCipher interface {
	Encrypt(key, block []byte) ([]byte, error)
}

// AES128 is the default BlockCipher, the Bluetooth security function e.
// The key schedule is rebuilt on every call.
type AES128 struct{}

func (AES128) Encrypt(key, block []byte) ([]byte, error) {
	if err := CheckLen("key", key, 16); err != nil {
		return nil, err
	}
	if err := CheckLen("block", block, BlockSize); err != nil {
		return nil, err
	}

	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "aes")
	}

	out := make([]byte, BlockSize)
	c.Encrypt(out, block)
	return out, nil
}

// Encrypt calls c.Encrypt and converts any failure into an *EncryptionError.
// Length errors detected by the cipher are passed through unchanged.
func Encrypt(c BlockCipher, key, block []byte) ([]byte, error) {
	out, err := c.Encrypt(key, block)
	if err != nil {
		if _, ok := errors.Cause(err).(*LengthError); ok {
			return nil, err
		}
		return nil, &EncryptionError{Err: err}
	}
	if len(out) != BlockSize {
		return nil, &EncryptionError{Err: errors.Errorf("cipher returned %d bytes", len(out))}
	}
	return out, nil
}
