package ring

import "fmt"

// ModulusKind selects which coefficient-modulus arithmetic a Ring uses.
// CdksParam pins exactly one of these for the lifetime of a ring.
type ModulusKind int

const (
	// Prime is a modulus q chosen so that a 2N-th primitive root of unity
	// exists mod q, enabling a negacyclic NTT for fast polynomial
	// multiplication.
	Prime ModulusKind = iota
	// NonNativePowerOfTwo is a modulus 2^b for some b < 64, reduced with a
	// mask rather than Montgomery/Barrett arithmetic.
	NonNativePowerOfTwo
	// Native is the modulus 2^64: ordinary uint64 wraparound arithmetic,
	// with reduction the identity.
	Native
)

func (k ModulusKind) String() string {
	switch k {
	case Prime:
		return "Prime"
	case NonNativePowerOfTwo:
		return "NonNativePowerOfTwo"
	case Native:
		return "Native"
	default:
		return fmt.Sprintf("ModulusKind(%d)", int(k))
	}
}

// ModulusOps is the single-modulus scalar arithmetic a Ring builds its
// polynomial operations on top of. Each ModulusKind supplies its own
// implementation; none of them carry any RNS/modulus-chain state, since
// CdksParam fixes exactly one coefficient modulus.
type ModulusOps interface {
	// Modulus returns the modulus value, or 0 to mean 2^64 (Native).
	Modulus() uint64
	Add(x, y uint64) uint64
	Sub(x, y uint64) uint64
	Mul(x, y uint64) uint64
	Neg(x uint64) uint64
	// Reduce maps an arbitrary uint64 into [0, Modulus).
	Reduce(x uint64) uint64
}

// primeOps implements ModulusOps for the Prime ModulusKind using Montgomery
// and Barrett reduction constants (no value is ever kept in Montgomery form
// across calls: every Mul here is a plain, non-Montgomery product, NTT
// multiplication uses the Table's own Montgomery roots directly).
type primeOps struct {
	q          uint64
	bredParams []uint64
	mredParams uint64
}

func newPrimeOps(q uint64) *primeOps {
	return &primeOps{q: q, bredParams: BRedParams(q), mredParams: MRedParams(q)}
}

func (m *primeOps) Modulus() uint64 { return m.q }

func (m *primeOps) Add(x, y uint64) uint64 {
	return CRed(x+y, m.q)
}

func (m *primeOps) Sub(x, y uint64) uint64 {
	return CRed(x+m.q-CRed(y, m.q), m.q)
}

func (m *primeOps) Mul(x, y uint64) uint64 {
	return BRed(x, y, m.q, m.bredParams)
}

func (m *primeOps) Neg(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return m.q - CRed(x, m.q)
}

func (m *primeOps) Reduce(x uint64) uint64 {
	return x % m.q
}

// pow2Ops implements ModulusOps for NonNativePowerOfTwo, modulus 2^bitLen
// for bitLen < 64, reduced by masking.
type pow2Ops struct {
	mask uint64
}

func newPow2Ops(bitLen int) *pow2Ops {
	return &pow2Ops{mask: (uint64(1) << uint(bitLen)) - 1}
}

func (m *pow2Ops) Modulus() uint64      { return m.mask + 1 }
func (m *pow2Ops) Add(x, y uint64) uint64 { return (x + y) & m.mask }
func (m *pow2Ops) Sub(x, y uint64) uint64 { return (x - y) & m.mask }
func (m *pow2Ops) Mul(x, y uint64) uint64 { return (x * y) & m.mask }
func (m *pow2Ops) Neg(x uint64) uint64    { return (-x) & m.mask }
func (m *pow2Ops) Reduce(x uint64) uint64 { return x & m.mask }

// nativeOps implements ModulusOps for Native, modulus 2^64: ordinary
// wraparound uint64 arithmetic, reduction is the identity.
type nativeOps struct{}

func (nativeOps) Modulus() uint64        { return 0 }
func (nativeOps) Add(x, y uint64) uint64 { return x + y }
func (nativeOps) Sub(x, y uint64) uint64 { return x - y }
func (nativeOps) Mul(x, y uint64) uint64 { return x * y }
func (nativeOps) Neg(x uint64) uint64    { return -x }
func (nativeOps) Reduce(x uint64) uint64 { return x }

// ModSwitch rescales x from modulus qFrom to modulus qTo, rounding to the
// nearest integer with ties broken to even: round_half_even(x * qTo /
// qFrom). qFrom == 0 is the Native convention for 2^64. It is not offered
// as a Ring method since the two moduli involved generally differ in kind.
func ModSwitch(x, qFrom, qTo uint64) uint64 {
	// x*qTo may overflow 64 bits for the sizes CdksParam allows (< 62 bits
	// each), so the multiplication is carried out with a 128-bit product.
	hi, lo := mul64(x, qTo)

	if qFrom == 0 {
		// Dividing by 2^64 is just reading off the high word as the
		// quotient and the low word as the remainder.
		q, r := hi, lo
		if r > 1<<63 || (r == 1<<63 && q&1 == 1) {
			q++
		}
		return q % qTo
	}

	q, r := div128(hi, lo, qFrom)
	if 2*r > qFrom || (2*r == qFrom && q&1 == 1) {
		q++
	}
	return q % qTo
}

func mul64(x, y uint64) (hi, lo uint64) {
	const mask32 = 1<<32 - 1
	x0, x1 := x&mask32, x>>32
	y0, y1 := y&mask32, y>>32

	t := x0 * y0
	w0 := t & mask32
	k := t >> 32

	t = x1*y0 + k
	w1 := t & mask32
	w2 := t >> 32

	t = x0*y1 + w1
	k = t >> 32

	hi = x1*y1 + w2 + k
	lo = (t << 32) | w0
	return
}

// div128 divides the 128-bit value (hi,lo) by a 64-bit divisor d, returning
// quotient and remainder, assuming hi < d (true here since x < qFrom^... in
// practice the product hi,lo is always < qFrom*2^64 given qFrom fits in 62
// bits and x < qFrom).
func div128(hi, lo, d uint64) (q, r uint64) {
	if hi == 0 {
		return lo / d, lo % d
	}
	// Long division bit by bit; only ever exercised with small bit widths
	// (CdksParam moduli are < 62 bits) so this is never a hot path.
	var rem uint64
	var quot uint64
	for i := 63; i >= 0; i-- {
		rem <<= 1
		rem |= (hi >> uint(i)) & 1
		if rem >= d {
			rem -= d
		}
	}
	for i := 63; i >= 0; i-- {
		bit := (lo >> uint(i)) & 1
		rem = (rem << 1) | bit
		quot <<= 1
		if rem >= d {
			rem -= d
			quot |= 1
		}
	}
	return quot, rem
}
