package ring

// Poly is a polynomial in R_q = Z_q[X]/(X^N+1), stored as N coefficients.
// Coeffs holds the standard (non-evaluation) representation; a Poly never
// carries information about which domain it is in, callers are responsible
// for not mixing coefficient- and evaluation-domain polynomials.
type Poly struct {
	Coeffs []uint64
}

// NewPoly allocates a zero Poly of degree N.
func NewPoly(N int) *Poly {
	return &Poly{Coeffs: make([]uint64, N)}
}

// CopyNew returns a fresh copy of p.
func (p *Poly) CopyNew() *Poly {
	c := &Poly{Coeffs: make([]uint64, len(p.Coeffs))}
	copy(c.Coeffs, p.Coeffs)
	return c
}

// Copy copies the coefficients of p into dst. dst must already be allocated
// to the same degree.
func (p *Poly) Copy(dst *Poly) {
	copy(dst.Coeffs, p.Coeffs)
}

// Zero sets all coefficients of p to zero.
func (p *Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// Equals reports whether p and other hold identical coefficients.
func (p *Poly) Equals(other *Poly) bool {
	if len(p.Coeffs) != len(other.Coeffs) {
		return false
	}
	for i, c := range p.Coeffs {
		if other.Coeffs[i] != c {
			return false
		}
	}
	return true
}
