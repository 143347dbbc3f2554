package fpaillier

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMultGroup(t *testing.T) {
	n := big.NewInt(15)
	cases := []struct {
		x        int64
		in, inAbs bool
	}{
		{0, false, false},
		{1, true, true},
		{2, true, true},
		{3, false, false},
		{5, false, false},
		{7, true, true},
		{14, true, true},
		{15, false, false},
		{16, true, true},
		{-2, false, true},
		{-3, false, false},
		{-7, false, true},
	}
	for _, c := range cases {
		x := big.NewInt(c.x)
		assert.Equal(t, c.in, InMultGroup(x, n), "InMultGroup(%d, 15)", c.x)
		assert.Equal(t, c.inAbs, InMultGroupAbs(x, n), "InMultGroupAbs(%d, 15)", c.x)
	}
}

func TestSampleInMultGroup(t *testing.T) {
	src := testSource(11)
	// 2·3·5·7·11·13: only 19% of residues are coprime, so the rejection
	// loop actually rejects.
	n := big.NewInt(30030)
	for i := 0; i < 200; i++ {
		x := SampleInMultGroup(src, n)
		require.True(t, InMultGroup(x, n), "sampled %s not in Z*_n", x)
		require.True(t, x.Sign() >= 0 && x.Cmp(n) < 0, "sampled %s out of [0, n)", x)
	}
}

func TestSampleInMultGroupSemiprime(t *testing.T) {
	src := testSource(12)
	p := GenerateSafePrime(src, 64)
	q := GenerateSafePrime(src, 64)
	n := new(big.Int).Mul(p.P, q.P)
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		x := SampleInMultGroup(src, n)
		require.True(t, InMultGroup(x, n))
		seen[x.String()] = true
	}
	assert.Greater(t, len(seen), 1, "samples should not repeat for a 128-bit modulus")
}
