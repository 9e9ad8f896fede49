package smp

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
	"github.com/rigado/smpcrypto/cmac"
)

// Suite evaluates the SMP crypto functions with a configurable block cipher.
// A Suite is not modified after New returns and may be shared between
// goroutines.
type Suite struct {
	cipher smpcrypto.BlockCipher
	log    smpcrypto.Logger
}

// New returns a Suite backed by AES-128 unless overridden with
// smpcrypto.OptBlockCipher.
func New(opts ...smpcrypto.Option) (*Suite, error) {
	s := newSuite()
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Suite) SetBlockCipher(c smpcrypto.BlockCipher) error {
	if c == nil {
		return errors.New("nil block cipher")
	}
	s.cipher = c
	return nil
}

func (s *Suite) SetLogger(l smpcrypto.Logger) error {
	if l == nil {
		return errors.New("nil logger")
	}
	s.log = l
	return nil
}

func newSuite() *Suite {
	return &Suite{
		cipher: smpcrypto.AES128{},
		log:    smpcrypto.GetLogger().ChildLogger(map[string]interface{}{"pkg": "smp"}),
	}
}

var (
	defaultSuite     *Suite
	defaultSuiteOnce sync.Once
)

// std backs the package level functions. It is built on first use so a
// logger installed with smpcrypto.SetLogger before then is picked up.
func std() *Suite {
	defaultSuiteOnce.Do(func() {
		defaultSuite = newSuite()
	})
	return defaultSuite
}

type field struct {
	name string
	b    []byte
	n    int
}

func (s *Suite) validate(fn string, ff ...field) error {
	for _, f := range ff {
		if err := smpcrypto.CheckLen(f.name, f.b, f.n); err != nil {
			s.log.Debugf("%s: rejected input: %v", fn, err)
			return errors.Wrap(err, fn)
		}
	}
	return nil
}

func (s *Suite) e(fn string, key, block []byte) ([]byte, error) {
	out, err := smpcrypto.Encrypt(s.cipher, key, block)
	if err != nil {
		s.logFailure(fn, err)
		return nil, errors.Wrap(err, fn)
	}
	return out, nil
}

func (s *Suite) mac(fn string, key, msg []byte) ([]byte, error) {
	out, err := cmac.Sum(s.cipher, key, msg)
	if err != nil {
		s.logFailure(fn, err)
		return nil, errors.Wrap(err, fn)
	}
	return out, nil
}

// logFailure logs inputs the cipher rejected at Debug and anything else
// at Error.
func (s *Suite) logFailure(fn string, err error) {
	if _, ok := errors.Cause(err).(*smpcrypto.LengthError); ok {
		s.log.Debugf("%s: rejected input: %v", fn, err)
		return
	}
	s.log.Errorf("%s: %v", fn, err)
}
