package ring

import (
	"fmt"
	"math/bits"
)

// Table is a struct storing the precomputation required for fast modular
// reduction and negacyclic NTT evaluation under a single prime modulus.
//
// Unlike lattigo's RNS ring.Table, this Table never represents a modulus
// chain: CdksParam fixes exactly one coefficient modulus, and the packing
// core never needs to extend or rescale across primes.
type Table struct {
	N int

	// NthRoot is the order of the primitive root used by the NTT, 2*N for
	// the standard negacyclic convolution.
	NthRoot uint64

	Modulus uint64

	// Mask is 2^bitlen(Modulus) - 1, used to bound rejection sampling.
	Mask uint64

	BRedParams []uint64
	MRedParams uint64

	PrimitiveRoot uint64

	RootsForward  []uint64 // powers of the NthRoot-th primitive root, Montgomery form, bit-reversed order.
	RootsBackward []uint64 // powers of its inverse, Montgomery form, bit-reversed order.
	NInv          uint64   // N^-1 mod Modulus, Montgomery form.
}

// NewTable builds the Montgomery/Barrett reduction constants for Modulus.
// GenNTTParams must be called separately to populate the NTT roots.
func NewTable(N int, Modulus uint64) (t *Table) {
	t = &Table{N: N, Modulus: Modulus}
	t.Mask = (1 << uint64(bits.Len64(Modulus-1))) - 1
	t.BRedParams = BRedParams(Modulus)
	if (Modulus&(Modulus-1)) != 0 && Modulus != 0 {
		t.MRedParams = MRedParams(Modulus)
	}
	return
}

// GenNTTParams populates the Table with the bit-reversed powers of a
// primitive NthRoot-th root of unity mod Modulus. NthRoot must be a power
// of two (it always is for the negacyclic convolution, NthRoot = 2*N) and
// Modulus must be prime and congruent to 1 mod NthRoot.
func (t *Table) GenNTTParams(NthRoot uint64) (err error) {

	if t.N == 0 || t.Modulus == 0 || NthRoot < 1 {
		return fmt.Errorf("invalid table parameters (missing)")
	}

	Modulus := t.Modulus

	if !IsPrime(Modulus) {
		return fmt.Errorf("invalid modulus: %d is not prime", Modulus)
	}

	if Modulus&(NthRoot-1) != 1 {
		return fmt.Errorf("invalid modulus: %d is not 1 mod %d", Modulus, NthRoot)
	}

	t.NthRoot = NthRoot

	if t.PrimitiveRoot == 0 {
		if t.PrimitiveRoot, err = PrimitiveNthRoot(Modulus, NthRoot); err != nil {
			return err
		}
	}

	logNthRoot := uint64(bits.Len64(NthRoot>>1) - 1)

	t.NInv = MForm(ModExp(NthRoot>>1, Modulus-2, Modulus), Modulus, t.BRedParams)

	t.RootsForward = make([]uint64, NthRoot>>1)
	t.RootsBackward = make([]uint64, NthRoot>>1)

	psiMont := MForm(t.PrimitiveRoot, Modulus, t.BRedParams)
	psiInvMont := MForm(ModExp(t.PrimitiveRoot, NthRoot-1, Modulus), Modulus, t.BRedParams)

	t.RootsForward[0] = MForm(1, Modulus, t.BRedParams)
	t.RootsBackward[0] = MForm(1, Modulus, t.BRedParams)

	for j := uint64(1); j < NthRoot>>1; j++ {
		prev := bitReverse64(j-1, logNthRoot)
		next := bitReverse64(j, logNthRoot)
		t.RootsForward[next] = MRed(t.RootsForward[prev], psiMont, Modulus, t.MRedParams)
		t.RootsBackward[next] = MRed(t.RootsBackward[prev], psiInvMont, Modulus, t.MRedParams)
	}

	return nil
}

// PrimitiveNthRoot searches for a primitive NthRoot-th root of unity mod q.
// It relies on NthRoot being a power of two: an element g of order exactly
// NthRoot satisfies g^(NthRoot/2) = -1 mod q, which is cheap to check without
// factoring q-1 (unlike a generic primitive-root search over all of q-1).
func PrimitiveNthRoot(q, NthRoot uint64) (uint64, error) {

	if (q-1)%NthRoot != 0 {
		return 0, fmt.Errorf("NthRoot does not divide q-1")
	}

	power := (q - 1) / NthRoot
	minusOne := q - 1

	for g := uint64(2); g < q; g++ {
		cand := ModExp(g, power, q)
		if ModExp(cand, NthRoot/2, q) == minusOne {
			return cand, nil
		}
	}

	return 0, fmt.Errorf("no primitive %d-th root of unity mod %d", NthRoot, q)
}

func bitReverse64(index, bitLen uint64) (r uint64) {
	r = bits.Reverse64(index) >> (64 - bitLen)
	return
}
