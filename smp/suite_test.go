package smp

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
)

type recordLogger struct {
	smpcrypto.Logger
	ndebug int32
	nerr   int32
}

func (l *recordLogger) Debugf(f string, args ...interface{}) { atomic.AddInt32(&l.ndebug, 1) }
func (l *recordLogger) Errorf(f string, args ...interface{}) { atomic.AddInt32(&l.nerr, 1) }

func TestCipherRejectedKeyLogsAtDebug(t *testing.T) {
	rl := &recordLogger{Logger: smpcrypto.GetLogger()}
	s, err := New(smpcrypto.OptLogger(rl))
	if err != nil {
		t.Fatal(err)
	}

	// cmac takes any key length, so a 32 byte key is only caught by the cipher
	_, err = s.CMAC(make([]byte, 32), []byte("message"))
	if _, ok := errors.Cause(err).(*smpcrypto.LengthError); !ok {
		t.Fatalf("expected length error, got %v", err)
	}
	if n := atomic.LoadInt32(&rl.nerr); n != 0 {
		t.Fatalf("rejected key logged %d times at error level", n)
	}
	if n := atomic.LoadInt32(&rl.ndebug); n != 1 {
		t.Fatalf("expected one debug entry, got %d", n)
	}

	// bad lengths caught before the cipher are debug too
	if _, err := s.H6(make([]byte, 15), []byte("lebr")); err == nil {
		t.Fatal("expected length error")
	}
	if n := atomic.LoadInt32(&rl.nerr); n != 0 {
		t.Fatalf("rejected input logged %d times at error level", n)
	}
}

func TestCipherFailureLogsAtError(t *testing.T) {
	rl := &recordLogger{Logger: smpcrypto.GetLogger()}
	s, err := New(smpcrypto.OptBlockCipher(failingCipher{}), smpcrypto.OptLogger(rl))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.E(make([]byte, 16), make([]byte, 16)); err == nil {
		t.Fatal("expected error")
	}
	if _, err := s.CMAC(make([]byte, 16), nil); err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&rl.nerr); n != 2 {
		t.Fatalf("expected two error entries, got %d", n)
	}
	if n := atomic.LoadInt32(&rl.ndebug); n != 0 {
		t.Fatalf("cipher failure logged %d times at debug level", n)
	}
}

func TestDefaultSuite(t *testing.T) {
	a, b := std(), std()
	if a != b {
		t.Fatal("default suite rebuilt between calls")
	}
	if a.log == smpcrypto.GetLogger() {
		t.Fatal("default suite uses the root logger")
	}
	if _, ok := a.cipher.(smpcrypto.AES128); !ok {
		t.Fatalf("unexpected default cipher %T", a.cipher)
	}
}
