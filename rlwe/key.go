package rlwe

import "github.com/latticeforge/ringpack/ring"

// SecretKey is the RLWE secret s in R_q. Ownership is caller-held: key
// generation only ever borrows it immutably.
type SecretKey struct {
	Value *ring.Poly
}

// AutoKeyRaw is the non-prepared (portable, coefficient-layout) form of an
// automorphism key-switching key AK_t: level RLWE encryptions of g_i *
// sigma_t(s) under s.
type AutoKeyRaw struct {
	Twist uint64
	A     []*ring.Poly // length Level
	B     []*ring.Poly
}

// AutoKeyEval is the prepared (runtime-hot, evaluation-layout) form of
// AutoKeyRaw, produced by PreparePackingKey.
type AutoKeyEval struct {
	Twist uint64
	A     []*ring.EvalPoly
	B     []*ring.EvalPoly
}

// CdksKeyRaw maps every twist in CdksParam.RequiredTwists to its raw
// AutoKeyRaw. It is the form produced by PackingKeyGen and the only form
// that can be serialized.
type CdksKeyRaw struct {
	Keys map[uint64]*AutoKeyRaw
}

// CdksKeyEval maps every twist to its prepared AutoKeyEval. It is the form
// AutoKeySwitch and the packer consume; never serialized directly, always
// regenerated from CdksKeyRaw via PreparePackingKey.
type CdksKeyEval struct {
	Keys map[uint64]*AutoKeyEval
}

// AllocateCdksKeyRaw returns a CdksKeyRaw with one zeroed AutoKeyRaw per
// twist in param.RequiredTwists, ready for PackingKeyGen to populate.
func AllocateCdksKeyRaw(param CdksParam) *CdksKeyRaw {
	r := param.RingQ()
	level := param.Level()

	out := &CdksKeyRaw{Keys: make(map[uint64]*AutoKeyRaw, param.LogN()+1)}
	for _, t := range param.RequiredTwists() {
		a := make([]*ring.Poly, level)
		b := make([]*ring.Poly, level)
		for i := 0; i < level; i++ {
			a[i] = r.NewPoly()
			b[i] = r.NewPoly()
		}
		out.Keys[t] = &AutoKeyRaw{Twist: t, A: a, B: b}
	}
	return out
}

// AllocateCdksKeyEval returns a CdksKeyEval with one zeroed AutoKeyEval per
// twist in param.RequiredTwists, ready for PreparePackingKey to populate.
func AllocateCdksKeyEval(param CdksParam) *CdksKeyEval {
	r := param.RingQ()
	level := param.Level()

	out := &CdksKeyEval{Keys: make(map[uint64]*AutoKeyEval, param.LogN()+1)}
	for _, t := range param.RequiredTwists() {
		a := make([]*ring.EvalPoly, level)
		b := make([]*ring.EvalPoly, level)
		for i := 0; i < level; i++ {
			a[i] = r.NewEvalPoly()
			b[i] = r.NewEvalPoly()
		}
		out.Keys[t] = &AutoKeyEval{Twist: t, A: a, B: b}
	}
	return out
}
