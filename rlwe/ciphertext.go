package rlwe

import "github.com/latticeforge/ringpack/ring"

// Ciphertext is an RLWE ciphertext (a, b) in R_q x R_q, always held in
// coefficient layout between calls (the packer transiently lifts operands
// into evaluation layout inside AutoKeySwitch and Ring.Mul, never across a
// public API boundary).
type Ciphertext struct {
	A *ring.Poly
	B *ring.Poly
}

// NewCiphertext allocates a zero ciphertext for r.
func NewCiphertext(r *ring.Ring) *Ciphertext {
	return &Ciphertext{A: r.NewPoly(), B: r.NewPoly()}
}

// CopyNew returns a fresh, independent copy of ct.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{A: ct.A.CopyNew(), B: ct.B.CopyNew()}
}

// Add returns ct + other.
func (ct *Ciphertext) Add(r *ring.Ring, other *Ciphertext) *Ciphertext {
	return &Ciphertext{A: r.Add(ct.A, other.A), B: r.Add(ct.B, other.B)}
}

// Sub returns ct - other.
func (ct *Ciphertext) Sub(r *ring.Ring, other *Ciphertext) *Ciphertext {
	return &Ciphertext{A: r.Sub(ct.A, other.A), B: r.Sub(ct.B, other.B)}
}

// LWECiphertext is a scalar LWE ciphertext (a_vec, b) under modulus q',
// where q' is the ring's own coefficient modulus for pack_lwes and a
// possibly different modulus for pack_lwes_ms.
type LWECiphertext struct {
	A []uint64 // length N
	B uint64
}
