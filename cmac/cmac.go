// Package cmac implements AES-CMAC as described in NIST SP800-38B and
// RFC 4493 on top of an arbitrary 128-bit BlockCipher.
package cmac

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
	"github.com/rigado/smpcrypto/sliceops"
)

const (
	Size      = smpcrypto.BlockSize
	blockSize = smpcrypto.BlockSize
)

var (
	constRb   = []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x87}
	constZero = make([]byte, blockSize)
)

var defaultCipher smpcrypto.BlockCipher = smpcrypto.AES128{}

// DeriveSubkeys returns K1 and K2 for key. The result depends on the key
// only.
func DeriveSubkeys(c smpcrypto.BlockCipher, key []byte) ([]byte, []byte, error) {
	l, err := smpcrypto.Encrypt(c, key, constZero)
	if err != nil {
		return nil, nil, errors.Wrap(err, "subkey L")
	}

	k1, err := dbl(l)
	if err != nil {
		return nil, nil, err
	}
	k2, err := dbl(k1)
	if err != nil {
		return nil, nil, err
	}
	return k1, k2, nil
}

// dbl is the subkey step: shift left, xor Rb if the msb was set.
func dbl(in []byte) ([]byte, error) {
	out, err := sliceops.ShiftLeftOneBit(in)
	if err != nil {
		return nil, err
	}
	if in[0]&0x80 == 0 {
		return out, nil
	}
	return sliceops.Xor16(out, constRb)
}

// Sum returns the 16 byte CMAC tag of msg under key, using c as the block
// cipher. An empty msg is valid.
func Sum(c smpcrypto.BlockCipher, key, msg []byte) ([]byte, error) {
	k1, k2, err := DeriveSubkeys(c, key)
	if err != nil {
		return nil, err
	}

	n := (len(msg) + blockSize - 1) / blockSize
	complete := n > 0 && len(msg)%blockSize == 0
	if n == 0 {
		n = 1
	}

	lastStart := blockSize * (n - 1)
	var mLast []byte
	if complete {
		mLast, err = sliceops.Xor16(msg[lastStart:], k1)
	} else {
		var padded []byte
		padded, err = sliceops.Pad(msg[lastStart:], len(msg)%blockSize)
		if err != nil {
			return nil, err
		}
		mLast, err = sliceops.Xor16(padded, k2)
	}
	if err != nil {
		return nil, err
	}

	x := constZero
	for i := 0; i < n-1; i++ {
		y, err := sliceops.Xor16(x, msg[blockSize*i:blockSize*(i+1)])
		if err != nil {
			return nil, err
		}
		x, err = smpcrypto.Encrypt(c, key, y)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
	}

	y, err := sliceops.Xor16(x, mLast)
	if err != nil {
		return nil, err
	}
	tag, err := smpcrypto.Encrypt(c, key, y)
	if err != nil {
		return nil, errors.Wrap(err, "last block")
	}
	return tag, nil
}

// AESCMAC is Sum with the default AES-128 cipher.
func AESCMAC(key, msg []byte) ([]byte, error) {
	return Sum(defaultCipher, key, msg)
}

// Verify reports whether tag is a valid, possibly truncated, CMAC of msg.
// The comparison runs in constant time.
func Verify(c smpcrypto.BlockCipher, key, msg, tag []byte) (bool, error) {
	if len(tag) == 0 || len(tag) > Size {
		return false, &smpcrypto.LengthError{Field: "tag", Want: Size, Got: len(tag)}
	}

	full, err := Sum(c, key, msg)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(full[:len(tag)], tag) == 1, nil
}
