package smp

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
)

const (
	authReqSC = byte(0x08)

	maxPasskey = 999999

	passkeyIterationCount = 20
)

// IsLegacy reports whether the AuthReq field of a pairing request or
// response leaves the Secure Connections bit clear.
func IsLegacy(authReq byte) bool {
	return authReq&authReqSC == 0
}

// LegacyTK returns the 128-bit temporary key for legacy passkey entry.
func LegacyTK(passkey int) ([]byte, error) {
	if passkey < 0 || passkey > maxPasskey {
		return nil, errors.Wrap(&smpcrypto.RangeError{Field: "passkey", Value: passkey}, "tk")
	}

	tk := make([]byte, 16)
	binary.BigEndian.PutUint32(tk[12:], uint32(passkey))
	return tk, nil
}

// PasskeyZ returns the f4 Z input for round i of passkey entry:
// 0x80 with bit i of the passkey in the lsb.
func PasskeyZ(passkey, i int) (byte, error) {
	if passkey < 0 || passkey > maxPasskey {
		return 0, errors.Wrap(&smpcrypto.RangeError{Field: "passkey", Value: passkey}, "z")
	}
	if i < 0 || i >= passkeyIterationCount {
		return 0, errors.Wrap(&smpcrypto.RangeError{Field: "iteration", Value: i}, "z")
	}

	return 0x80 | byte((passkey>>uint(i))&0x01), nil
}

// NumericComparison converts a g2 output into the six digit value displayed
// during numeric comparison.
func NumericComparison(g2 []byte) (uint32, error) {
	if err := smpcrypto.CheckLen("g2", g2, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(g2) % 1000000, nil
}
