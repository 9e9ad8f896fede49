package cmac

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	aeadcmac "github.com/aead/cmac"
	dchestcmac "github.com/dchest/cmac"
	jacobsacmac "github.com/jacobsa/crypto/cmac"
	miscreantcmac "github.com/miscreant/miscreant.go/cmac"
	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
)

const key = "2b7e151628aed2a6abf7158809cf4f3c"

const rfcMessage = "6bc1bee22e409f96e93d7e117393172a" +
	"ae2d8a571e03ac9c9eb76fac45af8e51" +
	"30c81c46a35ce411e5fbc1191a0a52ef" +
	"f69f2445df4f9b17ad2b417be66c3710"

func s2h(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal("s2h error!", err)
	}
	return b
}

func TestSubkeys(t *testing.T) {
	k1, k2, err := DeriveSubkeys(smpcrypto.AES128{}, s2h(t, key))
	if err != nil {
		t.Fatal(err)
	}

	if hex.EncodeToString(k1) != "fbeed618357133667c85e08f7236a8de" {
		t.Fatal("incorrect k1:", hex.EncodeToString(k1))
	}
	if hex.EncodeToString(k2) != "f7ddac306ae266ccf90bc11ee46d513b" {
		t.Fatal("incorrect k2:", hex.EncodeToString(k2))
	}

	// subkeys do not depend on anything computed in between
	if _, err := AESCMAC(s2h(t, key), s2h(t, rfcMessage)); err != nil {
		t.Fatal(err)
	}
	k1b, k2b, err := DeriveSubkeys(smpcrypto.AES128{}, s2h(t, key))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(k1, k1b) || !bytes.Equal(k2, k2b) {
		t.Fatal("subkeys changed between calls")
	}
}

func TestAESCMAC_RFC4493(t *testing.T) {
	m := s2h(t, rfcMessage)
	k := s2h(t, key)

	tests := []struct {
		n   int
		exp string
	}{
		{0, "bb1d6929e95937287fa37d129b756746"},
		{16, "070a16b46b4d4144f79bdd9dd04a287c"},
		{40, "dfa66747de9ae63030ca32611497c827"},
		{64, "51f0bebf7e3b9d92fc49741779363cfe"},
	}

	for _, tt := range tests {
		mac, err := AESCMAC(k, m[:tt.n])
		if err != nil {
			t.Fatalf("len %d: %v", tt.n, err)
		}
		if hex.EncodeToString(mac) != tt.exp {
			t.Fatalf("len %d: actual mac doesn't match expected: %v", tt.n, hex.EncodeToString(mac))
		}
	}
}

func TestAESCMAC_Reference(t *testing.T) {
	k := s2h(t, key)
	block, err := aes.NewCipher(k)
	if err != nil {
		t.Fatal(err)
	}

	msg := make([]byte, 100)
	if _, err := rand.Read(msg); err != nil {
		t.Fatal(err)
	}

	for n := 0; n <= len(msg); n++ {
		mac, err := AESCMAC(k, msg[:n])
		if err != nil {
			t.Fatal(err)
		}

		aeadMac, err := aeadcmac.New(block)
		if err != nil {
			t.Fatal(err)
		}
		aeadMac.Write(msg[:n])
		if exp := aeadMac.Sum(nil); !bytes.Equal(mac, exp) {
			t.Fatalf("len %d: aead/cmac mismatch\ngot %x\nexp %x", n, mac, exp)
		}

		dchestMac, err := dchestcmac.New(block)
		if err != nil {
			t.Fatal(err)
		}
		dchestMac.Write(msg[:n])
		if exp := dchestMac.Sum(nil); !bytes.Equal(mac, exp) {
			t.Fatalf("len %d: dchest/cmac mismatch\ngot %x\nexp %x", n, mac, exp)
		}

		miscreantMac := miscreantcmac.New(block)
		miscreantMac.Write(msg[:n])
		if exp := miscreantMac.Sum(nil); !bytes.Equal(mac, exp) {
			t.Fatalf("len %d: miscreant cmac mismatch\ngot %x\nexp %x", n, mac, exp)
		}

		jacobsaMac, err := jacobsacmac.New(k)
		if err != nil {
			t.Fatal(err)
		}
		jacobsaMac.Write(msg[:n])
		if exp := jacobsaMac.Sum(nil); !bytes.Equal(mac, exp) {
			t.Fatalf("len %d: jacobsa cmac mismatch\ngot %x\nexp %x", n, mac, exp)
		}
	}
}

func TestAESCMAC_Avalanche(t *testing.T) {
	k := make([]byte, 16)
	m := make([]byte, 65)

	for i := 0; i < 64; i++ {
		if _, err := rand.Read(k); err != nil {
			t.Fatal(err)
		}
		if _, err := rand.Read(m); err != nil {
			t.Fatal(err)
		}

		a, err := AESCMAC(k, m)
		if err != nil {
			t.Fatal(err)
		}

		bit := i % (len(m) * 8)
		m2 := append([]byte(nil), m...)
		m2[bit/8] ^= 1 << uint(bit%8)

		b, err := AESCMAC(k, m2)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(a, b) {
			t.Fatalf("one bit change at %d did not change the tag", bit)
		}

		again, err := AESCMAC(k, m)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, again) {
			t.Fatal("cmac is not deterministic")
		}
	}
}

func TestVerify(t *testing.T) {
	k := s2h(t, key)
	m := s2h(t, rfcMessage)[:40]
	tag := s2h(t, "dfa66747de9ae63030ca32611497c827")

	for _, n := range []int{16, 4, 3} {
		ok, err := Verify(smpcrypto.AES128{}, k, m, tag[:n])
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("valid %d byte tag rejected", n)
		}
	}

	bad := append([]byte(nil), tag...)
	bad[15] ^= 0x01
	ok, err := Verify(smpcrypto.AES128{}, k, m, bad)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("invalid tag accepted")
	}

	if _, err := Verify(smpcrypto.AES128{}, k, m, nil); err == nil {
		t.Fatal("expected error for empty tag")
	}
}

type failingCipher struct{}

func (failingCipher) Encrypt(key, block []byte) ([]byte, error) {
	return nil, errors.New("hw fault")
}

func TestErrors(t *testing.T) {
	_, err := AESCMAC(make([]byte, 15), []byte("message"))
	if _, ok := errors.Cause(err).(*smpcrypto.LengthError); !ok {
		t.Fatalf("expected length error for short key, got %v", err)
	}

	mac, err := Sum(failingCipher{}, s2h(t, key), []byte("message"))
	if mac != nil {
		t.Fatal("tag returned alongside error")
	}
	if _, ok := errors.Cause(err).(*smpcrypto.EncryptionError); !ok {
		t.Fatalf("expected encryption error, got %v", err)
	}
}
