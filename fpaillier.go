// Package fpaillier provides the arbitrary-precision integer primitives
// used by modulus-squared homomorphic cryptosystems of the Paillier
// family: safe-prime generation, membership and uniform sampling in the
// multiplicative group Z*_n, and fast exponentiation modulo n² for a
// fixed exponent when the factorization n = pq is known.
package fpaillier

import "math/big"

// Miller-Rabin rounds for probabilistic primality tests, same count as
// the one used by mpz_nextprime.
const primeTestRounds = 25

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)
