package smpcrypto

// SuiteOption is implemented by anything that can be configured with an Option.
type SuiteOption interface {
	SetBlockCipher(BlockCipher) error
	SetLogger(Logger) error
}

// An Option is a configuration function, which configures a suite.
type Option func(SuiteOption) error

// OptBlockCipher replaces the default AES-128 block cipher.
func OptBlockCipher(c BlockCipher) Option {
	return func(opt SuiteOption) error {
		return opt.SetBlockCipher(c)
	}
}

// OptLogger sets the logger used for rejected inputs and cipher failures.
func OptLogger(l Logger) Option {
	return func(opt SuiteOption) error {
		return opt.SetLogger(l)
	}
}
