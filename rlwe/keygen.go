package rlwe

import (
	"github.com/latticeforge/ringpack/prng"
	"github.com/latticeforge/ringpack/ring"
)

// PackingKeyGen populates out (from AllocateCdksKeyRaw) with one AutoKeyRaw
// per twist in param.RequiredTwists, borrowing sk immutably. RNG draws
// happen in the fixed order required for reproducibility: for each twist in
// canonical order, for each limb i = 0..level, draw a_i then e_i.
func PackingKeyGen(param CdksParam, sk *SecretKey, rng prng.PRNG, out *CdksKeyRaw) {
	r := param.RingQ()
	level := param.Level()
	gadget := GadgetVector(param.LogBase(), level)

	uniform := ring.NewUniformSampler(r, rng)
	noise := ring.NewGaussianSampler(r, rng, param.NoiseSigma(), 0)

	for _, t := range param.RequiredTwists() {
		sPrime := r.Automorphism(sk.Value, t)
		ak := out.Keys[t]

		for i := 0; i < level; i++ {
			a := r.NewPoly()
			uniform.Read(a)

			e := r.NewPoly()
			noise.Read(e)

			// b_i = -a_i*s + g_i*s' + e_i
			as := r.MulCoeffs(a, sk.Value)
			negAS := r.Neg(as)

			gs := scalarMulPoly(r, sPrime, gadget[i])

			b := r.Add(negAS, gs)
			b = r.Add(b, e)

			ak.A[i] = a
			ak.B[i] = b
		}
	}
}

// PreparePackingKey NTT-forwards every a_i, b_i of raw into the evaluation
// layout prep expects, producing the runtime-hot form AutoKeySwitch uses.
func PreparePackingKey(param CdksParam, raw *CdksKeyRaw, prep *CdksKeyEval) {
	r := param.RingQ()

	for t, rawKey := range raw.Keys {
		prepKey, ok := prep.Keys[t]
		if !ok {
			continue
		}
		for i := range rawKey.A {
			prepKey.A[i] = r.Forward(rawKey.A[i])
			prepKey.B[i] = r.Forward(rawKey.B[i])
		}
	}
}

// scalarMulPoly multiplies every coefficient of p by the scalar c mod q,
// implemented as a ring multiply by a degree-0 polynomial rather than a
// dedicated scalar kernel since CdksParam's gadget levels are few.
func scalarMulPoly(r *ring.Ring, p *ring.Poly, c uint64) *ring.Poly {
	constant := r.NewPoly()
	constant.Coeffs[0] = c
	return r.MulCoeffs(p, constant)
}
