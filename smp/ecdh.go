package smp

import (
	"crypto"
	"crypto/elliptic"
	"crypto/rand"

	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
	"github.com/rigado/smpcrypto/sliceops"
	"github.com/wsddn/go-ecdh"
)

const coordSize = 32

// ECDHKeys is a P-256 key pair used for LE Secure Connections.
type ECDHKeys struct {
	public  crypto.PublicKey
	private crypto.PrivateKey
}

func GenerateKeys() (*ECDHKeys, error) {
	var err error
	kp := ECDHKeys{}
	e := ecdh.NewEllipticECDH(elliptic.P256())

	kp.private, kp.public, err = e.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	return &kp, nil
}

func (k *ECDHKeys) Public() crypto.PublicKey { return k.public }

// UnmarshalPublicKey parses X || Y, each coordinate MSB first. The point
// must be on P-256.
func UnmarshalPublicKey(b []byte) (crypto.PublicKey, error) {
	if err := smpcrypto.CheckLen("public key", b, 2*coordSize); err != nil {
		return nil, err
	}

	e := ecdh.NewEllipticECDH(elliptic.P256())

	//add header
	r := append([]byte{0x04}, b...)

	pk, ok := e.Unmarshal(r)
	if !ok {
		return nil, errors.New("invalid public key")
	}
	return pk, nil
}

// MarshalPublicKeyXY returns X || Y, each coordinate MSB first.
func MarshalPublicKeyXY(k crypto.PublicKey) []byte {
	e := ecdh.NewEllipticECDH(elliptic.P256())

	ba := e.Marshal(k)
	return ba[1:] //remove header
}

// MarshalPublicKeyX returns the X coordinate, the U/V input of f4 and g2.
func MarshalPublicKeyX(k crypto.PublicKey) []byte {
	return MarshalPublicKeyXY(k)[:coordSize]
}

// PublicKeyFromPDU parses the payload of a Pairing Public Key PDU, where
// each coordinate is sent LSB first.
func PublicKeyFromPDU(b []byte) (crypto.PublicKey, error) {
	if err := smpcrypto.CheckLen("public key pdu", b, 2*coordSize); err != nil {
		return nil, err
	}

	xy := sliceops.SwapBuf(b[:coordSize])
	xy = append(xy, sliceops.SwapBuf(b[coordSize:])...)
	return UnmarshalPublicKey(xy)
}

// PublicKeyToPDU is the inverse of PublicKeyFromPDU.
func PublicKeyToPDU(k crypto.PublicKey) []byte {
	xy := MarshalPublicKeyXY(k)
	out := sliceops.SwapBuf(xy[:coordSize])
	return append(out, sliceops.SwapBuf(xy[coordSize:])...)
}

// GenerateSecret computes the 256-bit DHKey, MSB first, the W input of f5.
func GenerateSecret(prv crypto.PrivateKey, pub crypto.PublicKey) ([]byte, error) {
	e := ecdh.NewEllipticECDH(elliptic.P256())
	b, err := e.GenerateSharedSecret(prv, pub)
	if err != nil {
		return nil, errors.Wrap(err, "dhkey")
	}

	// left pad, the shared secret drops leading zero octets
	out := make([]byte, coordSize)
	copy(out[coordSize-len(b):], b)
	return out, nil
}
