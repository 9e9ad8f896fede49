package smp

import (
	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
	"github.com/rigado/smpcrypto/sliceops"
)

// All values are most significant octet first.

var (
	// f5 SALT
	salt = []byte{
		0x6c, 0x88, 0x83, 0x91, 0xaa, 0xf5, 0xa5, 0x38,
		0x60, 0x37, 0x0b, 0xdb, 0x5a, 0x60, 0x83, 0xbe,
	}
	keyIDBtle = []byte{0x62, 0x74, 0x6c, 0x65}
	f5Length  = []byte{0x01, 0x00}
)

// E is security function e: AES-128 of a single block.
func (s *Suite) E(k, p []byte) ([]byte, error) {
	if err := s.validate("e", field{"k", k, 16}, field{"p", p, 16}); err != nil {
		return nil, err
	}
	return s.e("e", k, p)
}

// Ah is the random address hash function: e(k, 0^104 || r) mod 2^24.
func (s *Suite) Ah(k, r []byte) ([]byte, error) {
	if err := s.validate("ah", field{"k", k, 16}, field{"r", r, 3}); err != nil {
		return nil, err
	}

	rp := make([]byte, 16)
	copy(rp[13:], r)

	enc, err := s.e("ah", k, rp)
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), enc[13:]...), nil
}

// C1 is the legacy confirm value generation function. iat and rat are the
// address type bits and must be 0 or 1.
//
//	p1 = pres || preq || rat' || iat'
//	p2 = padding || ia || ra
//	c1 = e(k, e(k, r XOR p1) XOR p2)
func (s *Suite) C1(k, r, preq, pres []byte, iat byte, ia []byte, rat byte, ra []byte) ([]byte, error) {
	err := s.validate("c1",
		field{"k", k, 16},
		field{"r", r, 16},
		field{"preq", preq, 7},
		field{"pres", pres, 7},
		field{"ia", ia, 6},
		field{"ra", ra, 6},
	)
	if err != nil {
		return nil, err
	}
	if iat > 1 {
		return nil, errors.Wrap(&smpcrypto.RangeError{Field: "iat", Value: int(iat)}, "c1")
	}
	if rat > 1 {
		return nil, errors.Wrap(&smpcrypto.RangeError{Field: "rat", Value: int(rat)}, "c1")
	}

	p1 := make([]byte, 0, 16)
	p1 = append(p1, pres...)
	p1 = append(p1, preq...)
	p1 = append(p1, rat, iat)

	p2 := make([]byte, 4, 16)
	p2 = append(p2, ia...)
	p2 = append(p2, ra...)

	t, err := sliceops.Xor16(r, p1)
	if err != nil {
		return nil, err
	}
	t, err = s.e("c1", k, t)
	if err != nil {
		return nil, err
	}
	t, err = sliceops.Xor16(t, p2)
	if err != nil {
		return nil, err
	}

	return s.e("c1", k, t)
}

// S1 is the legacy STK generation function. The most significant 64 bits
// of r1 and r2 are discarded.
func (s *Suite) S1(k, r1, r2 []byte) ([]byte, error) {
	err := s.validate("s1", field{"k", k, 16}, field{"r1", r1, 16}, field{"r2", r2, 16})
	if err != nil {
		return nil, err
	}

	rp := make([]byte, 0, 16)
	rp = append(rp, r1[8:]...)
	rp = append(rp, r2[8:]...)

	return s.e("s1", k, rp)
}

// F4 is the LE Secure Connections confirm value generation function.
//
//	f4(U, V, X, Z) = AES-CMAC_X(U || V || Z)
func (s *Suite) F4(u, v, x []byte, z byte) ([]byte, error) {
	err := s.validate("f4", field{"u", u, 32}, field{"v", v, 32}, field{"x", x, 16})
	if err != nil {
		return nil, err
	}

	m := make([]byte, 0, 65)
	m = append(m, u...)
	m = append(m, v...)
	m = append(m, z)

	return s.mac("f4", x, m)
}

// F5 is the LE Secure Connections key generation function. It returns
// MacKey and LTK.
//
//	T = AES-CMAC_SALT(W)
//	f5 = AES-CMAC_T(Counter || keyID || N1 || N2 || A1 || A2 || Length)
func (s *Suite) F5(w, n1, n2, a1, a2 []byte) ([]byte, []byte, error) {
	err := s.validate("f5",
		field{"w", w, 32},
		field{"n1", n1, 16},
		field{"n2", n2, 16},
		field{"a1", a1, 7},
		field{"a2", a2, 7},
	)
	if err != nil {
		return nil, nil, err
	}

	t, err := s.mac("f5 T", salt, w)
	if err != nil {
		return nil, nil, err
	}

	m := make([]byte, 0, 53)
	m = append(m, 0x00)
	m = append(m, keyIDBtle...)
	m = append(m, n1...)
	m = append(m, n2...)
	m = append(m, a1...)
	m = append(m, a2...)
	m = append(m, f5Length...)

	macKey, err := s.mac("f5 mackey", t, m)
	if err != nil {
		return nil, nil, err
	}

	m[0] = 0x01
	ltk, err := s.mac("f5 ltk", t, m)
	if err != nil {
		return nil, nil, err
	}

	return macKey, ltk, nil
}

// F6 is the LE Secure Connections check value generation function.
//
//	f6(W, N1, N2, R, IOcap, A1, A2) = AES-CMAC_W(N1 || N2 || R || IOcap || A1 || A2)
func (s *Suite) F6(w, n1, n2, r, ioCap, a1, a2 []byte) ([]byte, error) {
	err := s.validate("f6",
		field{"w", w, 16},
		field{"n1", n1, 16},
		field{"n2", n2, 16},
		field{"r", r, 16},
		field{"iocap", ioCap, 3},
		field{"a1", a1, 7},
		field{"a2", a2, 7},
	)
	if err != nil {
		return nil, err
	}

	m := make([]byte, 0, 65)
	m = append(m, n1...)
	m = append(m, n2...)
	m = append(m, r...)
	m = append(m, ioCap...)
	m = append(m, a1...)
	m = append(m, a2...)

	return s.mac("f6", w, m)
}

// G2 is the numeric comparison value generation function. The result is
// the low 32 bits of the tag; NumericComparison turns it into the value
// shown to the user.
//
//	g2(U, V, X, Y) = AES-CMAC_X(U || V || Y) mod 2^32
func (s *Suite) G2(u, v, x, y []byte) ([]byte, error) {
	err := s.validate("g2", field{"u", u, 32}, field{"v", v, 32}, field{"x", x, 16}, field{"y", y, 16})
	if err != nil {
		return nil, err
	}

	m := make([]byte, 0, 80)
	m = append(m, u...)
	m = append(m, v...)
	m = append(m, y...)

	h, err := s.mac("g2", x, m)
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), h[12:]...), nil
}

// H6 is the link key conversion function: AES-CMAC_W(keyID).
func (s *Suite) H6(w, keyID []byte) ([]byte, error) {
	if err := s.validate("h6", field{"w", w, 16}, field{"keyid", keyID, 4}); err != nil {
		return nil, err
	}
	return s.mac("h6", w, keyID)
}

func E(k, p []byte) ([]byte, error)             { return std().E(k, p) }
func Ah(k, r []byte) ([]byte, error)            { return std().Ah(k, r) }
func S1(k, r1, r2 []byte) ([]byte, error)       { return std().S1(k, r1, r2) }
func F4(u, v, x []byte, z byte) ([]byte, error) { return std().F4(u, v, x, z) }
func G2(u, v, x, y []byte) ([]byte, error)      { return std().G2(u, v, x, y) }
func H6(w, keyID []byte) ([]byte, error)        { return std().H6(w, keyID) }

func C1(k, r, preq, pres []byte, iat byte, ia []byte, rat byte, ra []byte) ([]byte, error) {
	return std().C1(k, r, preq, pres, iat, ia, rat, ra)
}

func F5(w, n1, n2, a1, a2 []byte) ([]byte, []byte, error) {
	return std().F5(w, n1, n2, a1, a2)
}

func F6(w, n1, n2, r, ioCap, a1, a2 []byte) ([]byte, error) {
	return std().F6(w, n1, n2, r, ioCap, a1, a2)
}

// CMAC is AES-CMAC over msg with the suite's block cipher.
func (s *Suite) CMAC(key, msg []byte) ([]byte, error) {
	return s.mac("cmac", key, msg)
}

func CMAC(key, msg []byte) ([]byte, error) {
	return std().CMAC(key, msg)
}
