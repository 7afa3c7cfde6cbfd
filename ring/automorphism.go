package ring

import "math/bits"

// Automorphism applies sigma_gen: X -> X^gen to polIn in coefficient layout,
// writing the result to a new Poly. gen must be odd (so that it is a unit
// in Z/2NZ); the caller is responsible for that invariant, this only wraps
// indices modulo 2N and flips sign on wraparound as required by the
// negacyclic reduction X^N = -1.
func (r *Ring) Automorphism(polIn *Poly, gen uint64) *Poly {
	N := uint64(r.N())
	mask := N - 1
	logN := uint64(bits.Len64(mask))

	out := r.NewPoly()

	for i := uint64(0); i < N; i++ {
		raw := i * gen
		idx := raw & mask
		// bit logN of raw tells us whether i*gen wrapped past X^N, which
		// under X^N = -1 flips the sign of the coefficient moving there.
		wrapped := (raw >> logN) & 1

		v := polIn.Coeffs[i]
		if wrapped == 1 {
			v = r.ops.Neg(v)
		}
		out.Coeffs[idx] = v
	}

	return out
}
