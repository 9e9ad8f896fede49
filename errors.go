package smpcrypto

import "fmt"

// LengthError reports an input whose length does not match the fixed
// width of the field it was passed as.
type LengthError struct {
	Field string
	Want  int
	Got   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("length error %s: want %d bytes, got %d", e.Field, e.Want, e.Got)
}

// RangeError reports a fixed-width input holding a value outside its domain,
// e.g. an address type other than 0 or 1.
type RangeError struct {
	Field string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range error %s: invalid value %d", e.Field, e.Value)
}

// EncryptionError wraps a failure reported by a BlockCipher. It has no
// Cause method so errors.Cause stops here; use Unwrap to reach the cipher error.
type EncryptionError struct {
	Err error
}

func (e *EncryptionError) Error() string {
	return "encryption failure: " + e.Err.Error()
}

func (e *EncryptionError) Unwrap() error { return e.Err }

// CheckLen returns a *LengthError if len(b) != want.
func CheckLen(field string, b []byte, want int) error {
	if len(b) != want {
		return &LengthError{Field: field, Want: want, Got: len(b)}
	}
	return nil
}
