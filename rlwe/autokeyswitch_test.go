package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/ringpack/ring"
)

// linearityTestParam uses a finer gadget decomposition (level*logBase close
// to log2(q)) than testParamPrime1024 so the decomposition rounding error
// stays small relative to the noise budget; testParamPrime1024's level=1
// configuration is deliberately coarse (it matches a concrete scenario
// elsewhere) and would otherwise swamp the decrypted comparison.
func linearityTestParam(t *testing.T) CdksParam {
	t.Helper()
	q, err := ring.GenPrime(54, 2048)
	require.NoError(t, err)

	param, err := NewCdksParam(CdksParamLiteral{
		LogN:               10,
		ModulusKind:        ring.Prime,
		Modulus:            q,
		SecretDistribution: Ternary,
		NoiseSigma:         3.19,
		LogBase:            13,
		Level:              4,
		PlaintextModulus:   4,
	})
	require.NoError(t, err)
	return param
}

// TestAutoKeySwitchLinearity checks that key-switching the sum of two
// ciphertexts decrypts to the sum of the two messages, the same as
// key-switching each separately and summing the results. The comparison is
// made after decryption (which cancels the gadget-decomposition rounding
// and key-switching noise down to a small, bounded term), not on the raw
// ciphertext coefficients, which are not themselves close: gadget digits
// multiply full-range key material, so a rounding difference in the
// decomposition shows up as a large difference in the raw polynomial even
// though it decrypts to a negligible error.
func TestAutoKeySwitchLinearity(t *testing.T) {
	param := linearityTestParam(t)
	rng := newTestRNG(t, 42)
	r := param.RingQ()

	sk := genSecretKey(r, rng)
	raw := AllocateCdksKeyRaw(param)
	PackingKeyGen(param, sk, rng, raw)
	prep := AllocateCdksKeyEval(param)
	PreparePackingKey(param, raw, prep)

	twist := uint64(2*param.N() - 1)
	ak := prep.Keys[twist]
	require.NotNil(t, ak)

	m1, m2 := uint64(1), uint64(2)
	c1 := leafLift(r, encryptLWE(param, sk, rng, m1))
	c2 := leafLift(r, encryptLWE(param, sk, rng, m2))
	sum := c1.Add(r, c2)

	out1 := AutoKeySwitch(param, ak, c1, ring.NewScratchSpace(param.N(), 1))
	out2 := AutoKeySwitch(param, ak, c2, ring.NewScratchSpace(param.N(), 1))
	outSum := AutoKeySwitch(param, ak, sum, ring.NewScratchSpace(param.N(), 1))

	gotSeparate := decryptRLWE(param, sk, out1) + decryptRLWE(param, sk, out2)
	gotSeparate %= param.PlaintextModulus()

	gotCombined := decryptRLWE(param, sk, outSum)

	require.Equal(t, (m1+m2)%param.PlaintextModulus(), gotSeparate)
	require.Equal(t, (m1+m2)%param.PlaintextModulus(), gotCombined)
}
