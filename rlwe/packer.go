package rlwe

import (
	"fmt"
	"math/bits"

	"github.com/latticeforge/ringpack/ring"
)

// PackLWEs merges the first k of cts (k = len(cts); k > N panics, a
// programmer error, not a runtime failure) into a single RLWE ciphertext,
// using key's prepared automorphism keys. Decrypting the result under
// sigma_{2N-1}(s) and decoding yields m_j at position j*stride for j < k,
// stride = N / 2^ceil(log2(max(1,k))).
func PackLWEs(param CdksParam, key *CdksKeyEval, cts []LWECiphertext) *Ciphertext {
	return packLWEs(param, key, cts)
}

// PackLWEsModSwitch is PackLWEs for LWE ciphertexts under a source modulus
// other than the ring modulus: every scalar is first rescaled with
// ring.ModSwitch(x, qFrom, qTo). The source ring must be NonNativePowerOfTwo
// or Native (2^64); Prime sources return ErrModulusSwitchUnsupported.
func PackLWEsModSwitch(param CdksParam, key *CdksKeyEval, lweRing *ring.Ring, cts []LWECiphertext) (*Ciphertext, error) {
	if lweRing.Kind() != ring.NonNativePowerOfTwo && lweRing.Kind() != ring.Native {
		return nil, fmt.Errorf("%w: got %v", ErrModulusSwitchUnsupported, lweRing.Kind())
	}

	qFrom := lweRing.Modulus()
	qTo := param.RingQ().Modulus()

	switched := make([]LWECiphertext, len(cts))
	for i, c := range cts {
		a := make([]uint64, len(c.A))
		for j, v := range c.A {
			a[j] = ring.ModSwitch(v, qFrom, qTo)
		}
		switched[i] = LWECiphertext{A: a, B: ring.ModSwitch(c.B, qFrom, qTo)}
	}

	return packLWEs(param, key, switched), nil
}

func packLWEs(param CdksParam, key *CdksKeyEval, cts []LWECiphertext) *Ciphertext {
	r := param.RingQ()
	N := param.N()
	k := len(cts)

	if k > N {
		panic(fmt.Sprintf("rlwe: pack_lwes: k=%d exceeds ring dimension N=%d", k, N))
	}

	if k == 0 {
		return NewCiphertext(r)
	}

	ell := bits.Len(uint(k - 1))
	size := 1 << uint(ell)

	leaves := make([]*Ciphertext, size)
	for i := 0; i < size; i++ {
		if i < k {
			leaves[i] = scaleByInversePow2(r, leafLift(r, cts[i]), ell)
		} else {
			leaves[i] = NewCiphertext(r)
		}
	}

	// One scratch pool, sized for a single limb's decomposition buffer,
	// shared across every AutoKeySwitch call in the tree (see 4.2's
	// allocate_scratch contract).
	scratch := ring.NewScratchSpace(N, 1)
	merged := mergeRecurse(param, key, leaves, scratch)

	// Every key-switch in the merge tree re-keys to s, so merged decrypts
	// under s. A plain (key-free) sigma_{2N-1} moves it to decrypt under
	// sigma_{2N-1}(s) and also applies sigma_{2N-1} to the message. For
	// k >= 2 a key-switch with the 2N-1 key first applies sigma_{2N-1} to the
	// message once more; sigma_{2N-1} is an involution, so the slots keep
	// their places. For k == 1 the message is a constant, which
	// sigma_{2N-1} fixes, so only the plain automorphism is applied.
	t := uint64(2*N - 1)
	if ell > 0 {
		merged = AutoKeySwitch(param, key.Keys[t], merged, scratch)
	}
	merged = &Ciphertext{A: r.Automorphism(merged.A, t), B: r.Automorphism(merged.B, t)}

	return merged
}

// leafLift turns a scalar LWE ciphertext (a_vec, b) under s into the RLWE
// ciphertext (a(X), b(X)) whose constant term decrypts to the same value:
// b(X) = b, a(X) = a_0 - a_{N-1}*X - a_{N-2}*X^2 - ... - a_1*X^{N-1}.
func leafLift(r *ring.Ring, ct LWECiphertext) *Ciphertext {
	N := r.N()

	a := r.NewPoly()
	a.Coeffs[0] = ct.A[0]
	for k := 1; k < N; k++ {
		a.Coeffs[k] = r.Neg1(ct.A[N-k])
	}

	b := r.NewPoly()
	b.Coeffs[0] = ct.B

	return &Ciphertext{A: a, B: b}
}

// mergeRecurse implements the recursive CDKS merge tree: ciphertexts is
// decimated into even/odd-indexed halves (the classic doubling structure of
// the CDKS merge), each half is packed independently, and the two results
// are combined with one negacyclic shift and one automorphism key-switch.
//
// L is the current call's log2(size). The deepest calls (L == 1, directly
// combining two leaves) use the reserved 2N-1 twist; every other level uses
// 2^(L-1)+1 for this module's direct X -> X^t automorphism convention.
func mergeRecurse(param CdksParam, key *CdksKeyEval, ciphertexts []*Ciphertext, scratch *ring.ScratchSpace) *Ciphertext {
	r := param.RingQ()
	N := param.N()

	L := bits.Len(uint(len(ciphertexts))) - 1
	if L == 0 {
		return ciphertexts[0]
	}

	half := len(ciphertexts) >> 1
	left := make([]*Ciphertext, half)
	right := make([]*Ciphertext, half)
	for i := 0; i < half; i++ {
		left[i] = ciphertexts[2*i]
		right[i] = ciphertexts[2*i+1]
	}

	ctLeft := mergeRecurse(param, key, left, scratch)
	ctRight := mergeRecurse(param, key, right, scratch)

	shift := N >> uint(L)
	ctRightShifted := mulMonomial(r, ctRight, shift)

	sum := ctLeft.Add(r, ctRightShifted)
	diff := ctLeft.Sub(r, ctRightShifted)

	var t uint64
	if L == 1 {
		t = uint64(2*N - 1)
	} else {
		t = uint64(1<<uint(L-1)) + 1
	}

	twisted := AutoKeySwitch(param, key.Keys[t], diff, scratch)

	return sum.Add(r, twisted)
}

// mulMonomial multiplies ct by X^shift using the negacyclic wraparound
// (coefficients shifted past N are negated), a pure permutation requiring
// no key-switch.
func mulMonomial(r *ring.Ring, ct *Ciphertext, shift int) *Ciphertext {
	return &Ciphertext{A: shiftPoly(r, ct.A, shift), B: shiftPoly(r, ct.B, shift)}
}

func shiftPoly(r *ring.Ring, p *ring.Poly, shift int) *ring.Poly {
	N := r.N()
	out := r.NewPoly()
	for i, c := range p.Coeffs {
		j := i + shift
		if j < N {
			out.Coeffs[j] = c
		} else {
			out.Coeffs[j-N] = r.Neg1(c)
		}
	}
	return out
}

// scaleByInversePow2 multiplies ct by (2^ell)^-1 mod q. packLWEs applies it
// to every leaf before merging, cancelling the factor of two gained at each
// of the ell merge levels (each level's sum+twisted step doubles every
// surviving leaf's contribution).
func scaleByInversePow2(r *ring.Ring, ct *Ciphertext, ell int) *Ciphertext {
	if ell == 0 {
		return ct
	}
	inv := r.InversePow2(ell)
	return &Ciphertext{A: r.ScalarMul(ct.A, inv), B: r.ScalarMul(ct.B, inv)}
}
