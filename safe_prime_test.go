package fpaillier

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSafePrimeBitLen(t *testing.T) {
	src := testSource(100)
	for _, bits := range []int{500, 512, 513, 514} {
		sp := GenerateSafePrime(src, bits)
		assert.Equal(t, bits, sp.P.BitLen(), "safe prime has wrong width")
		assert.Equal(t, bits-1, sp.Q.BitLen(), "Sophie Germain prime has wrong width")
	}
}

func TestGenerateSafePrimeValidates(t *testing.T) {
	src := testSource(101)
	sp := GenerateSafePrime(src, 256)
	require.True(t, sp.Validate())

	// Re-verify independently of Validate.
	require.True(t, sp.P.ProbablyPrime(primeTestRounds), "p is not prime")
	require.True(t, sp.Q.ProbablyPrime(primeTestRounds), "q is not prime")
	expected := new(big.Int).Mul(sp.Q, two)
	expected.Add(expected, one)
	require.Zero(t, sp.P.Cmp(expected), "p is not 2q + 1")
}

func TestSafePrimeValidateRejectsBadPairs(t *testing.T) {
	assert.False(t, (&SafePrime{P: big.NewInt(23), Q: big.NewInt(13)}).Validate(), "p != 2q+1")
	assert.False(t, (&SafePrime{P: big.NewInt(21), Q: big.NewInt(10)}).Validate(), "composite pair")
	assert.True(t, (&SafePrime{P: big.NewInt(23), Q: big.NewInt(11)}).Validate())
}

// A sieve amount beyond the built-in table behaves exactly like the
// maximum available amount.
func TestSieveAmountClamped(t *testing.T) {
	a := SieveGenerateSafePrimes(testSource(102), 128, len(smallPrimes))
	b := SieveGenerateSafePrimes(testSource(102), 128, 1<<20)
	assert.Zero(t, a.P.Cmp(b.P))
	assert.Zero(t, a.Q.Cmp(b.Q))
}

func TestSieveRejectsDivisibleCandidates(t *testing.T) {
	// q = 7 gives p = 15 = 3·5; the sieve must reject it before any
	// primality test since 7 mod 3 == (3-1)/2.
	q := big.NewInt(7)
	m := new(big.Int).Mod(q, big.NewInt(3))
	require.Equal(t, uint64(1), m.Uint64())

	// End to end: generated safe primes are never divisible by a sieved
	// prime.
	sp := SieveGenerateSafePrimes(testSource(103), 64, 16)
	r := new(big.Int)
	for _, prime := range smallPrimes[:16] {
		r.Mod(sp.P, new(big.Int).SetUint64(prime))
		assert.NotZero(t, r.Sign(), "p divisible by %d", prime)
	}
}

func TestGenerateSafePrimesConcurrent(t *testing.T) {
	seed := int64(104)
	newSource := func() Source32 {
		seed++
		return testSource(seed)
	}
	sp, err := GenerateSafePrimesConcurrent(context.Background(), 128, 2, newSource)
	require.NoError(t, err)
	require.True(t, sp.Validate())
	assert.Equal(t, 128, sp.P.BitLen())
}

func TestGenerateSafePrimesConcurrentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GenerateSafePrimesConcurrent(ctx, 1024, 1, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateSafePrimesConcurrentTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	// 4096-bit pairs cannot appear within a millisecond.
	_, err := GenerateSafePrimesConcurrent(ctx, 4096, 1, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateSafePrimesKeyGeneration(t *testing.T) {
	src := testSource(105)
	sp1 := GenerateSafePrime(src, 128)
	sp2 := GenerateSafePrime(src, 128)

	m := new(big.Int).Mul(sp1.Q, sp2.Q)
	e := big.NewInt(65537)
	d := new(big.Int).ModInverse(e, m)
	require.NotNil(t, d)

	r := new(big.Int).Mul(d, e)
	r.Mod(r, m)
	require.Zero(t, r.Cmp(one), "e·d != 1 mod q1·q2")
}
