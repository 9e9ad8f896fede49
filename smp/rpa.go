package smp

import (
	"crypto/subtle"
)

const (
	rpaMask = byte(0xc0)
	rpaBits = byte(0x40)
)

// GenerateRPA builds a resolvable private address, MSB first, from an IRK
// and a 24-bit random part. The two most significant bits of prand are
// forced to 0b01.
func (s *Suite) GenerateRPA(irk, prand []byte) ([]byte, error) {
	if err := s.validate("rpa", field{"irk", irk, 16}, field{"prand", prand, 3}); err != nil {
		return nil, err
	}

	p := append([]byte(nil), prand...)
	p[0] = p[0]&^rpaMask | rpaBits

	hash, err := s.Ah(irk, p)
	if err != nil {
		return nil, err
	}

	return append(p, hash...), nil
}

// ResolveRPA reports whether addr, MSB first, was generated from irk.
// Addresses that are not resolvable private addresses resolve to false.
func (s *Suite) ResolveRPA(irk, addr []byte) (bool, error) {
	if err := s.validate("rpa", field{"irk", irk, 16}, field{"addr", addr, 6}); err != nil {
		return false, err
	}
	if addr[0]&rpaMask != rpaBits {
		return false, nil
	}

	hash, err := s.Ah(irk, addr[:3])
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(hash, addr[3:]) == 1, nil
}

func GenerateRPA(irk, prand []byte) ([]byte, error) { return std().GenerateRPA(irk, prand) }
func ResolveRPA(irk, addr []byte) (bool, error)     { return std().ResolveRPA(irk, addr) }

