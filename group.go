package fpaillier

import (
	"crypto/rand"
	"math/big"
)

// InMultGroup reports whether x is an element of the multiplicative
// group Z*_n, that is, x >= 0 and gcd(x, n) = 1.
func InMultGroup(x, n *big.Int) bool {
	return x.Sign() >= 0 && InMultGroupAbs(x, n)
}

// InMultGroupAbs reports whether abs(x) is an element of Z*_n. It is the
// same gcd test as InMultGroup without the sign check, for callers that
// already know the sign of x.
func InMultGroupAbs(x, n *big.Int) bool {
	// big.Int.GCD takes absolute values of its inputs.
	return new(big.Int).GCD(nil, nil, x, n).Cmp(one) == 0
}

// SampleInMultGroup returns a uniformly random element of Z*_n, drawing
// candidates below n from src and accepting the first one coprime to n.
// The expected number of draws is φ(n)/n, close to one for semiprime n
// with large factors, so the rejection loop carries no iteration cap.
// Panics if n <= 0.
func SampleInMultGroup(src Source32, n *big.Int) *big.Int {
	reader := NewReader(src)
	for {
		x, err := rand.Int(reader, n)
		if err != nil {
			// The adapted reader never fails.
			panic("fpaillier: sampling below n failed: " + err.Error())
		}
		if InMultGroup(x, n) {
			return x
		}
	}
}
