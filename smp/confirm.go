package smp

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/pkg/errors"
)

var ErrConfirmMismatch = errors.New("confirm mismatch")

// VerifyConfirm compares a received confirm or check value with the locally
// computed one in constant time.
func VerifyConfirm(expected, calculated []byte) error {
	if len(expected) == 0 || subtle.ConstantTimeCompare(expected, calculated) != 1 {
		return errors.Wrapf(ErrConfirmMismatch, "exp %v got %v",
			hex.EncodeToString(expected), hex.EncodeToString(calculated))
	}
	return nil
}
