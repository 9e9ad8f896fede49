package smp

import (
	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
)

const (
	AddrTypePublic = byte(0x00)
	AddrTypeRandom = byte(0x01)
)

// AddrField builds the 56-bit A1/A2 input of f5 and f6: the address type
// octet followed by the 48-bit device address.
func AddrField(addrType byte, addr []byte) ([]byte, error) {
	if err := smpcrypto.CheckLen("addr", addr, 6); err != nil {
		return nil, err
	}
	if addrType > AddrTypeRandom {
		return nil, errors.Wrap(&smpcrypto.RangeError{Field: "addr type", Value: int(addrType)}, "addr")
	}

	out := make([]byte, 0, 7)
	out = append(out, addrType)
	return append(out, addr...), nil
}
