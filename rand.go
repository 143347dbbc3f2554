package fpaillier

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"
)

// Source32 is an infallible generator of 32-bit pseudorandom words. It is
// the capability callers inject into the sampling and prime generation
// routines of this package. *math/rand.Rand satisfies it; secure sources
// should wrap a CSPRNG the way CryptoSource does.
type Source32 interface {
	Uint32() uint32
}

// NewReader adapts a Source32 to the io.Reader form expected by the
// math/big sampling routines (crypto/rand.Int and friends). Every read
// is served by forwarding requests for 32-bit words to the wrapped
// source; nothing is buffered between reads and the returned reader
// never fails. The reader holds only a handle to src, so it advances the
// state of src on every call.
func NewReader(src Source32) io.Reader {
	return &sourceReader{src: src}
}

type sourceReader struct {
	src Source32
}

func (r *sourceReader) Read(p []byte) (int, error) {
	var w [4]byte
	for i := 0; i < len(p); i += 4 {
		binary.BigEndian.PutUint32(w[:], r.src.Uint32())
		copy(p[i:], w[:])
	}
	return len(p), nil
}

// CryptoSource returns a Source32 backed by crypto/rand.Reader. It is
// the default entropy source wherever callers do not supply their own.
// Source32 is infallible, so a failing platform CSPRNG panics.
func CryptoSource() Source32 {
	return cryptoSource{}
}

type cryptoSource struct{}

func (cryptoSource) Uint32() uint32 {
	var b [4]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic("fpaillier: crypto/rand is unavailable: " + err.Error())
	}
	return binary.BigEndian.Uint32(b[:])
}

// randomBits returns a uniform integer in [0, 2^bits). The top bit of the
// requested width is not guaranteed to be set; callers that need an exact
// bit length must force it themselves.
func randomBits(src Source32, bits int) *big.Int {
	b := uint(bits % 8)
	if b == 0 {
		b = 8
	}
	bytes := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(NewReader(src), bytes); err != nil {
		// sourceReader never fails; reaching this is a broken invariant.
		panic("fpaillier: random source failed: " + err.Error())
	}
	// Clear the excess bits of the first byte so the value is < 2^bits.
	bytes[0] &= uint8(int(1<<b) - 1)
	return new(big.Int).SetBytes(bytes)
}
