package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testPrimeRing(t *testing.T) *Ring {
	t.Helper()
	q, err := GenPrime(54, 2048)
	require.NoError(t, err)
	r, err := NewRing(1024, Prime, q, 0)
	require.NoError(t, err)
	return r
}

func TestNTTRoundTrip(t *testing.T) {
	r := testPrimeRing(t)

	p := r.NewPoly()
	for i := range p.Coeffs {
		p.Coeffs[i] = uint64(i * 7 % int(r.Modulus()))
	}

	got := r.Backward(r.Forward(p))
	require.True(t, p.Equals(got))
}

func TestMulMatchesSchoolbook(t *testing.T) {
	r := testPrimeRing(t)
	N := r.N()

	a := r.NewPoly()
	b := r.NewPoly()
	a.Coeffs[1] = 1 // a = X
	b.Coeffs[N-1] = 1 // b = X^(N-1)

	got := r.MulCoeffs(a, b)

	// X * X^(N-1) = X^N = -1 mod (X^N+1)
	want := r.NewPoly()
	want.Coeffs[0] = r.Modulus() - 1

	require.True(t, got.Equals(want))
}

func TestAutomorphismIdentity(t *testing.T) {
	r := testPrimeRing(t)

	p := r.NewPoly()
	for i := range p.Coeffs {
		p.Coeffs[i] = uint64(i + 1)
	}

	got := r.Automorphism(p, 1)
	require.True(t, p.Equals(got))
}

func TestAutomorphismInverse(t *testing.T) {
	r := testPrimeRing(t)
	N := uint64(r.N())

	p := r.NewPoly()
	for i := range p.Coeffs {
		p.Coeffs[i] = uint64(i + 1)
	}

	// t = 2N-1 is its own inverse mod 2N: ((2N-1)*(2N-1)) mod 2N = 1.
	t1 := 2*N - 1
	got := r.Automorphism(r.Automorphism(p, t1), t1)
	require.True(t, p.Equals(got))
}

func TestModulusOpsNonNativePowerOfTwo(t *testing.T) {
	r, err := NewRing(16, NonNativePowerOfTwo, 0, 8)
	require.NoError(t, err)

	require.Equal(t, uint64(256), r.Modulus())

	p := r.NewPoly()
	p.Coeffs[0] = 250
	q := r.NewPoly()
	q.Coeffs[0] = 10

	got := r.Add(p, q)
	require.Equal(t, uint64(4), got.Coeffs[0]) // (250+10) mod 256 = 4
}

func TestModulusOpsNative(t *testing.T) {
	r, err := NewRing(16, Native, 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), r.Modulus())

	p := r.NewPoly()
	p.Coeffs[0] = ^uint64(0)
	q := r.NewPoly()
	q.Coeffs[0] = 2

	got := r.Add(p, q)
	require.Equal(t, uint64(1), got.Coeffs[0]) // wraps
}

func TestModSwitch(t *testing.T) {
	// Rounding to nearest: 100 under modulus 200 rescaled to modulus 100
	// should land exactly on 50.
	got := ModSwitch(100, 200, 100)
	require.Equal(t, uint64(50), got)

	// Exact half (1*2/4 = 0.5): round-half-to-even picks the even
	// neighbor, 0, not 1.
	got2 := ModSwitch(1, 4, 2)
	require.Equal(t, uint64(0), got2)

	// Exact half landing on an odd lower candidate rounds up to the even
	// neighbor instead: 3*2/4 = 1.5, nearest integers 1 (odd) and 2 (even);
	// 2 reduces to 0 mod qTo=2.
	got3 := ModSwitch(3, 4, 2)
	require.Equal(t, uint64(0), got3)

	// Exercise the Native (qFrom == 0) tie-breaking branch directly: x such
	// that x*qTo/2^64 lands exactly on a half-integer with an odd floor.
	// (2^63)*3 / 2^64 = 1.5 under qTo = 3.
	got4 := ModSwitch(uint64(1)<<63, 0, 3)
	require.Equal(t, uint64(2), got4)
}
