package fpaillier

import (
	"fmt"
	"math/big"
)

// FactorizedExp computes x^e mod (pq)² for an exponent e and modulus
// factorization fixed at construction time. Implementations precompute
// their context once and are immutable afterwards, so a single context
// may serve many Exp calls from concurrent goroutines.
type FactorizedExp interface {
	// Exp returns x^e mod (pq)². x is reduced modulo the relevant
	// modulus internally, so out-of-range and negative x are accepted.
	Exp(x *big.Int) *big.Int
}

// NaiveExp is the unoptimized FactorizedExp: one full-width modular
// exponentiation modulo n² per call.
type NaiveExp struct {
	e  *big.Int
	nn *big.Int
}

// NewNaiveExp precomputes n² = (pq)² for later exponentiations. It fails
// when e is negative or p or q is not positive.
func NewNaiveExp(e, p, q *big.Int) (*NaiveExp, error) {
	if e.Sign() < 0 {
		return nil, fmt.Errorf("e should be non-negative, but it is %s", e)
	}
	if p.Sign() <= 0 || q.Sign() <= 0 {
		return nil, fmt.Errorf("p and q should be positive")
	}
	n := new(big.Int).Mul(p, q)
	return &NaiveExp{
		e:  new(big.Int).Set(e),
		nn: n.Mul(n, n),
	}, nil
}

// Exp returns x^e mod (pq)².
func (ne *NaiveExp) Exp(x *big.Int) *big.Int {
	// e was checked non-negative at construction, so big.Int.Exp never
	// takes the modular-inverse path here.
	r := new(big.Int).Mod(x, ne.nn)
	return r.Exp(r, ne.e, ne.nn)
}

// CrtExp is the FactorizedExp based on the Chinese remainder theorem: two
// exponentiations at half the modulus width with exponents reduced modulo
// φ(p²) and φ(q²), recombined with the precomputed coefficient
// β = (p²)⁻¹ mod q². Roughly four times faster than NaiveExp for the
// bit sizes typical of Paillier moduli.
type CrtExp struct {
	pp        *big.Int
	qq        *big.Int
	eModPhiPP *big.Int
	eModPhiQQ *big.Int
	beta      *big.Int
}

// NewCrtExp precomputes the CRT context for exponentiation modulo (pq)².
// It fails when e is negative, p or q is not positive, or p² and q² are
// not coprime (p and q share a factor), since β does not exist then.
func NewCrtExp(e, p, q *big.Int) (*CrtExp, error) {
	if e.Sign() < 0 {
		return nil, fmt.Errorf("e should be non-negative, but it is %s", e)
	}
	if p.Sign() <= 0 || q.Sign() <= 0 {
		return nil, fmt.Errorf("p and q should be positive")
	}
	pp := new(big.Int).Mul(p, p)
	qq := new(big.Int).Mul(q, q)
	beta := new(big.Int).ModInverse(pp, qq)
	if beta == nil {
		return nil, fmt.Errorf("p² and q² are not coprime")
	}
	// φ(p²) = p² - p and φ(q²) = q² - q.
	phiPP := new(big.Int).Sub(pp, p)
	phiQQ := new(big.Int).Sub(qq, q)
	return &CrtExp{
		pp:        pp,
		qq:        qq,
		eModPhiPP: new(big.Int).Mod(e, phiPP),
		eModPhiQQ: new(big.Int).Mod(e, phiQQ),
		beta:      beta,
	}, nil
}

// Exp returns x^e mod (pq)².
func (ce *CrtExp) Exp(x *big.Int) *big.Int {
	s1 := new(big.Int).Mod(x, ce.pp)
	s2 := new(big.Int).Mod(x, ce.qq)

	// Both reduced exponents are non-negative by construction.
	r1 := s1.Exp(s1, ce.eModPhiPP, ce.pp)
	r2 := s2.Exp(s2, ce.eModPhiQQ, ce.qq)

	// r = ((r2 - r1) β mod q²) p² + r1
	r := new(big.Int).Sub(r2, r1)
	r.Mul(r, ce.beta)
	r.Mod(r, ce.qq)
	r.Mul(r, ce.pp)
	return r.Add(r, r1)
}
