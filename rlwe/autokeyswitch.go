package rlwe

import "github.com/latticeforge/ringpack/ring"

// AutoKeySwitch computes sigma_t(in) re-keyed back to s using ak, implementing
// the apply step of the auto-key schedule:
//
//	(alpha, beta) = sigma_t(in), applied coefficient-wise to both a and b
//	decompose alpha into level limbs, NTT-forward each
//	out.a = sum_i alpha_i * ak.a_i          (evaluation layout)
//	out.b = beta + sum_i alpha_i * ak.b_i   (evaluation layout)
//	out is NTT-backward'd into coefficient layout
//
// scratch holds the one per-limb digit polynomial live at a time; it is
// reset at the start of every limb so the whole key-switch runs off a
// single small backing array regardless of level.
//
// Noise growth is ||e'|| <= ||sigma_t(e_in)|| + level*B*||e_ak||.
func AutoKeySwitch(param CdksParam, ak *AutoKeyEval, in *Ciphertext, scratch *ring.ScratchSpace) *Ciphertext {
	r := param.RingQ()
	t := ak.Twist

	alpha := r.Automorphism(in.A, t)
	beta := r.Automorphism(in.B, t)

	q := r.Modulus()
	logBase := param.LogBase()
	level := param.Level()

	accA := r.NewEvalPoly()
	accB := r.Forward(beta)

	for i := 0; i < level; i++ {
		scratch.Reset()
		digits := scratch.Alloc()
		gadgetDecomposePoly(digits, alpha, q, logBase, level, i)
		digitsEval := r.Forward(digits)

		termA := r.Mul(digitsEval, ak.A[i])
		termB := r.Mul(digitsEval, ak.B[i])

		accA = r.AddEval(accA, termA)
		accB = r.AddEval(accB, termB)
	}

	return &Ciphertext{A: r.Backward(accA), B: r.Backward(accB)}
}

// gadgetDecomposePoly writes into out the polynomial whose j-th coefficient
// is the limb-i balanced digit of p's j-th coefficient, i.e. the i-th term
// of Decompose applied to every coefficient independently.
func gadgetDecomposePoly(out, p *ring.Poly, q uint64, logBase, level, limb int) {
	for j, c := range p.Coeffs {
		digits := Decompose(c, q, logBase, level)
		out.Coeffs[j] = toUnsigned(digits[limb], q)
	}
}

