package fpaillier

import (
	"context"
	"math/big"
	"runtime"
)

// defaultSieveAmount is the sieve size used by GenerateSafePrime. It is
// indistinguishable from optimal for 500-1700 bit targets; callers tuning
// other ranges should use SieveGenerateSafePrimes directly.
const defaultSieveAmount = 135

// SafePrime holds a safe prime P together with its Sophie Germain prime
// Q = (P-1)/2.
type SafePrime struct {
	P, Q *big.Int
}

// Validate re-verifies the pair: P and Q are both probably prime and
// P = 2Q + 1.
func (sp *SafePrime) Validate() bool {
	p := new(big.Int).Lsh(sp.Q, 1)
	p.SetBit(p, 0, 1)
	return p.Cmp(sp.P) == 0 &&
		sp.P.ProbablyPrime(primeTestRounds) &&
		sp.Q.ProbablyPrime(primeTestRounds)
}

// GenerateSafePrime returns a safe prime of exactly bitLen bits drawn
// from src, sieving candidates with the first 135 primes of the built-in
// table before any primality test.
func GenerateSafePrime(src Source32, bitLen int) *SafePrime {
	return SieveGenerateSafePrimes(src, bitLen, defaultSieveAmount)
}

// SieveGenerateSafePrimes returns a safe prime P of exactly bitLen bits,
// together with Q = (P-1)/2. Candidates q are drawn uniformly at bitLen-1
// bits and cheaply rejected whenever 2q+1 is divisible by one of the
// first amount primes of the built-in table; survivors take 25 rounds of
// Miller-Rabin for q and then for 2q+1. An amount beyond the table size
// is silently clamped. The search loops until it succeeds; callers that
// need cancellation should use GenerateSafePrimesConcurrent or run the
// call on a worker they can abandon. Panics if bitLen < 3.
func SieveGenerateSafePrimes(src Source32, bitLen, amount int) *SafePrime {
	if bitLen < 3 {
		panic("fpaillier: safe primes need at least 3 bits")
	}
	if amount > len(smallPrimes) {
		amount = len(smallPrimes)
	}
	for {
		if sp := safePrimeCandidate(src, bitLen, amount); sp != nil {
			return sp
		}
	}
}

// safePrimeCandidate runs a single trial of the sieve search and returns
// nil when the candidate is rejected.
func safePrimeCandidate(src Source32, bitLen, amount int) *SafePrime {
	// A candidate q of bitLen-1 bits: randomBits stays below 2^(bitLen-1)
	// but does not guarantee bit bitLen-2 is set, so force it; doubling
	// then lands 2q+1 on exactly bitLen bits. Force bit 0 since q must
	// be odd.
	q := randomBits(src, bitLen-1)
	q.SetBit(q, bitLen-2, 1)
	q.SetBit(q, 0, 1)

	// If q mod s = (s-1)/2 then 2q+1 is divisible by s. This filter
	// rejects the bulk of candidates with cheap word-size moduli before
	// the expensive probabilistic tests run.
	m := new(big.Int)
	s := new(big.Int)
	for _, prime := range smallPrimes[:amount] {
		m.Mod(q, s.SetUint64(prime))
		if m.Uint64() == (prime-1)/2 {
			return nil
		}
	}

	if !q.ProbablyPrime(primeTestRounds) {
		return nil
	}
	p := new(big.Int).Lsh(q, 1)
	p.SetBit(p, 0, 1)
	if !p.ProbablyPrime(primeTestRounds) {
		return nil
	}
	return &SafePrime{P: p, Q: q}
}

// GenerateSafePrimesConcurrent searches for a safe prime of exactly
// bitLen bits on several goroutines at once and returns the first pair
// found. Generation time is mostly luck, so independent searches on
// multiple cores shorten the tail considerably for large bit lengths.
//
// newSource is called once per worker and must return sources that are
// independent of each other; a nil newSource gives every worker a
// CryptoSource. A concurrency below 1 uses GOMAXPROCS. The search stops
// when ctx is done, returning ctx.Err().
func GenerateSafePrimesConcurrent(ctx context.Context, bitLen, concurrency int, newSource func() Source32) (*SafePrime, error) {
	if bitLen < 3 {
		panic("fpaillier: safe primes need at least 3 bits")
	}
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if newSource == nil {
		newSource = CryptoSource
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so a worker that finds a pair right as the caller returns
	// never blocks.
	results := make(chan *SafePrime, concurrency)
	for i := 0; i < concurrency; i++ {
		go func(src Source32) {
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if sp := safePrimeCandidate(src, bitLen, defaultSieveAmount); sp != nil {
					results <- sp
					return
				}
			}
		}(newSource())
	}

	select {
	case sp := <-results:
		return sp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
