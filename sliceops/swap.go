package sliceops

// SwapBuf returns a reversed copy of in. SMP PDUs carry multi-octet values
// least significant octet first; the crypto functions take them MSB first.
func SwapBuf(in []byte) []byte {
	a := make([]byte, 0, len(in))
	a = append(a, in...)
	for i := len(a)/2 - 1; i >= 0; i-- {
		opp := len(a) - 1 - i
		a[i], a[opp] = a[opp], a[i]
	}

	return a
}
