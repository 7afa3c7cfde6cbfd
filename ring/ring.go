// Package ring implements single-modulus polynomial arithmetic over
// R_q = Z_q[X]/(X^N+1): NTT-accelerated multiplication for prime moduli,
// automorphisms, gadget-friendly scalar reduction, and modulus switching.
package ring

import "fmt"

// EvalPoly is a polynomial held in evaluation (NTT) layout: Coeffs[i] is the
// value of the polynomial at the i-th root of unity, in bit-reversed order.
// For ModulusKind other than Prime there is no distinct evaluation
// representation, so EvalPoly and Poly carry the same bits and Forward and
// Backward are copies; Mul still produces the mathematically correct
// product in both cases.
type EvalPoly struct {
	Coeffs []uint64
}

// Ring implements the CdksParam ring R_q = Z_q[X]/(X^N+1) for a single
// coefficient modulus and one of the three ModulusKind variants.
type Ring struct {
	n    int
	kind ModulusKind
	ops  ModulusOps

	// table is populated only for ModulusKind Prime, where Forward/Backward
	// is a genuine NTT and Mul is a pointwise product in evaluation layout.
	table *Table
}

// NewRing builds a Ring of degree N under the given ModulusKind. modulus is
// the prime q for Prime, and is unused for Native (the modulus is fixed at
// 2^64). bitLen is the exponent b for NonNativePowerOfTwo (modulus 2^b) and
// is unused otherwise.
func NewRing(N int, kind ModulusKind, modulus uint64, bitLen int) (*Ring, error) {
	if N <= 0 || N&(N-1) != 0 {
		return nil, fmt.Errorf("ring: N must be a power of two, got %d", N)
	}

	r := &Ring{n: N, kind: kind}

	switch kind {
	case Prime:
		if modulus == 0 {
			return nil, fmt.Errorf("ring: Prime ring requires a nonzero modulus")
		}
		ops := newPrimeOps(modulus)
		r.ops = ops
		t := NewTable(N, modulus)
		if err := t.GenNTTParams(uint64(2 * N)); err != nil {
			return nil, fmt.Errorf("ring: %w", err)
		}
		r.table = t
	case NonNativePowerOfTwo:
		if bitLen <= 0 || bitLen >= 64 {
			return nil, fmt.Errorf("ring: NonNativePowerOfTwo requires 0 < bitLen < 64, got %d", bitLen)
		}
		r.ops = newPow2Ops(bitLen)
	case Native:
		r.ops = nativeOps{}
	default:
		return nil, fmt.Errorf("ring: unknown modulus kind %v", kind)
	}

	return r, nil
}

// N returns the ring degree.
func (r *Ring) N() int { return r.n }

// RingSize returns the number of uint64 coefficients a Poly holds.
func (r *Ring) RingSize() int { return r.n }

// EvalSize returns the number of uint64 coefficients an EvalPoly holds.
// It always equals RingSize: this ring never RNS-splits a modulus across
// several limbs.
func (r *Ring) EvalSize() int { return r.n }

// Kind reports which ModulusKind this ring was built with.
func (r *Ring) Kind() ModulusKind { return r.kind }

// Modulus returns the coefficient modulus (0 means 2^64, the Native case).
func (r *Ring) Modulus() uint64 { return r.ops.Modulus() }

// NewPoly allocates a zero coefficient-layout polynomial.
func (r *Ring) NewPoly() *Poly { return NewPoly(r.n) }

// NewEvalPoly allocates a zero evaluation-layout polynomial.
func (r *Ring) NewEvalPoly() *EvalPoly { return &EvalPoly{Coeffs: make([]uint64, r.n)} }

// Add computes p1 + p2 coefficientwise.
func (r *Ring) Add(p1, p2 *Poly) *Poly {
	out := r.NewPoly()
	for i := range out.Coeffs {
		out.Coeffs[i] = r.ops.Add(p1.Coeffs[i], p2.Coeffs[i])
	}
	return out
}

// Sub computes p1 - p2 coefficientwise.
func (r *Ring) Sub(p1, p2 *Poly) *Poly {
	out := r.NewPoly()
	for i := range out.Coeffs {
		out.Coeffs[i] = r.ops.Sub(p1.Coeffs[i], p2.Coeffs[i])
	}
	return out
}

// Neg computes -p coefficientwise.
func (r *Ring) Neg(p *Poly) *Poly {
	out := r.NewPoly()
	for i := range out.Coeffs {
		out.Coeffs[i] = r.ops.Neg(p.Coeffs[i])
	}
	return out
}

// Reduce maps every coefficient of p into [0, Modulus).
func (r *Ring) Reduce(p *Poly) *Poly {
	out := r.NewPoly()
	for i := range out.Coeffs {
		out.Coeffs[i] = r.ops.Reduce(p.Coeffs[i])
	}
	return out
}

// Forward transforms a coefficient-layout polynomial into evaluation
// layout. For the Prime ModulusKind this is a negacyclic NTT; otherwise it
// is a plain copy, since those rings have no distinct evaluation layout.
func (r *Ring) Forward(p *Poly) *EvalPoly {
	out := r.NewEvalPoly()
	if r.kind == Prime {
		forwardNTT(p.Coeffs, out.Coeffs, r.n, r.table.RootsForward, r.table.Modulus, r.table.MRedParams)
	} else {
		copy(out.Coeffs, p.Coeffs)
	}
	return out
}

// Backward transforms an evaluation-layout polynomial back to coefficient
// layout, inverting Forward.
func (r *Ring) Backward(e *EvalPoly) *Poly {
	out := r.NewPoly()
	if r.kind == Prime {
		backwardNTT(e.Coeffs, out.Coeffs, r.n, r.table.RootsBackward, r.table.NInv, r.table.Modulus, r.table.MRedParams)
	} else {
		copy(out.Coeffs, e.Coeffs)
	}
	return out
}

// Mul returns the product of a and b in evaluation layout. For Prime rings
// this is a pointwise product of NTT values: Forward leaves its outputs in
// the standard (non-Montgomery) domain, so each slot is a plain Barrett
// modular product, and Backward turns the result back into standard-domain
// coefficients. For the other two ModulusKind variants, Forward is
// the identity, so a,b here are still coefficient-layout operands and Mul
// performs the full O(N^2) negacyclic schoolbook convolution directly.
func (r *Ring) Mul(a, b *EvalPoly) *EvalPoly {
	out := r.NewEvalPoly()

	if r.kind == Prime {
		q := r.table.Modulus
		bredParams := r.table.BRedParams
		for i := range out.Coeffs {
			out.Coeffs[i] = BRed(a.Coeffs[i], b.Coeffs[i], q, bredParams)
		}
		return out
	}

	n := r.n
	for i := 0; i < n; i++ {
		if a.Coeffs[i] == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if b.Coeffs[j] == 0 {
				continue
			}
			prod := r.ops.Mul(a.Coeffs[i], b.Coeffs[j])
			k := i + j
			if k < n {
				out.Coeffs[k] = r.ops.Add(out.Coeffs[k], prod)
			} else {
				// X^n = -1: wraps negate.
				out.Coeffs[k-n] = r.ops.Sub(out.Coeffs[k-n], prod)
			}
		}
	}
	return out
}

// AddEval adds two evaluation-layout polynomials. For the Prime
// ModulusKind these are standard-domain residues mod the Table's modulus;
// for the other two kinds Forward is the identity, so this reduces to the
// same modular add Ring.Add uses on coefficient layout.
func (r *Ring) AddEval(a, b *EvalPoly) *EvalPoly {
	out := r.NewEvalPoly()
	if r.kind == Prime {
		q := r.table.Modulus
		for i := range out.Coeffs {
			out.Coeffs[i] = CRed(a.Coeffs[i]+b.Coeffs[i], q)
		}
		return out
	}
	for i := range out.Coeffs {
		out.Coeffs[i] = r.ops.Add(a.Coeffs[i], b.Coeffs[i])
	}
	return out
}

// Neg1 returns -c mod the ring's modulus, the scalar form of Neg used when
// shifting a polynomial by a monomial folds coefficients past degree N-1
// back in with a sign flip.
func (r *Ring) Neg1(c uint64) uint64 { return r.ops.Neg(c) }

// ScalarMul multiplies every coefficient of p by the scalar c mod the
// ring's modulus.
func (r *Ring) ScalarMul(p *Poly, c uint64) *Poly {
	out := r.NewPoly()
	for i, v := range p.Coeffs {
		out.Coeffs[i] = r.ops.Mul(v, c)
	}
	return out
}

// InversePow2 returns (2^ell)^-1 mod the ring's modulus, computed as
// (2^ell)^(q-2) mod q, which is the inverse for an odd prime modulus. It
// panics for a Native ring (modulus 2^64) and for any even modulus, which
// includes every NonNativePowerOfTwo ring, since 2 is not invertible there.
func (r *Ring) InversePow2(ell int) uint64 {
	q := r.Modulus()
	if q == 0 {
		// Native: true modulus is 2^64, which is never odd. Packing over a
		// Native ring is not part of this component's supported surface.
		panic("ring: InversePow2 unsupported for Native modulus")
	}
	if q&1 == 0 {
		panic("ring: InversePow2 requires an odd modulus")
	}
	two := ModExp(2, uint64(ell), q)
	return ModExp(two, q-2, q)
}

// MulCoeffs multiplies two coefficient-layout polynomials, going through
// Forward/Mul/Backward. It is a convenience wrapper; hot paths that
// multiply a fixed operand repeatedly (the packer's automorphism-keyed
// key-switches) call Forward once and reuse the evaluation-layout result.
func (r *Ring) MulCoeffs(p1, p2 *Poly) *Poly {
	return r.Backward(r.Mul(r.Forward(p1), r.Forward(p2)))
}
