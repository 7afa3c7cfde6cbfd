package rlwe

import (
	"math/big"
	"testing"

	"github.com/latticeforge/ringpack/prng"
	"github.com/latticeforge/ringpack/ring"
)

// The encrypt/decrypt/secret-sampling helpers in this file are the minimal
// stand-ins for the external RLWE/LWE collaborator this package assumes is
// supplied by its caller. They exist only to exercise the packer's
// observable guarantees end to end; production encrypt/decrypt is outside
// this package's surface.

func newTestRNG(t *testing.T, seed byte) prng.PRNG {
	t.Helper()
	rng, err := prng.NewChaCha20PRNG([]byte{seed, seed, seed, seed})
	if err != nil {
		panic(err)
	}
	return rng
}

func genSecretKey(r *ring.Ring, rng prng.PRNG) *SecretKey {
	sk := r.NewPoly()
	ring.NewTernarySampler(r, rng).Read(sk)
	return &SecretKey{Value: sk}
}

// encryptLWE returns a scalar LWE ciphertext (a, b) under secret s: a is
// uniform, b = -<a,s> + delta*m + e, so that b + <a,s> = delta*m + e.
func encryptLWE(param CdksParam, sk *SecretKey, rng prng.PRNG, m uint64) LWECiphertext {
	r := param.RingQ()
	N := r.N()
	q := r.Modulus()

	a := make([]uint64, N)
	uniform := ring.NewUniformSampler(r, rng)
	aPoly := r.NewPoly()
	uniform.Read(aPoly)
	copy(a, aPoly.Coeffs)

	noise := ring.NewGaussianSampler(r, rng, param.NoiseSigma(), 0)
	ePoly := r.NewPoly()
	noise.Read(ePoly)

	delta := q / param.PlaintextModulus()

	var dot uint64
	for i := 0; i < N; i++ {
		dot = addMod(dot, mulMod(a[i], sk.Value.Coeffs[i], q), q)
	}

	b := addMod(r.Neg1(dot), addMod(mulMod(delta, m, q), ePoly.Coeffs[0], q), q)

	return LWECiphertext{A: a, B: b}
}

// decryptRLWEUnderAutomorphism decrypts ct under sigma_t(s) and returns the
// rounded message recovered at coefficient index 0.
func decryptRLWEUnderAutomorphism(param CdksParam, sk *SecretKey, t uint64, ct *Ciphertext) uint64 {
	r := param.RingQ()
	sPrime := r.Automorphism(sk.Value, t)
	return decryptRLWE(param, &SecretKey{Value: sPrime}, ct)
}

func decryptRLWE(param CdksParam, sk *SecretKey, ct *Ciphertext) uint64 {
	r := param.RingQ()
	q := r.Modulus()

	as := r.MulCoeffs(ct.A, sk.Value)
	noisy := r.Add(ct.B, as)

	return roundToPlaintext(noisy.Coeffs[0], q, param.PlaintextModulus())
}

// decryptRLWESlot decrypts the message carried at coefficient index slot.
func decryptRLWESlot(param CdksParam, sk *SecretKey, t uint64, ct *Ciphertext, slot int) uint64 {
	r := param.RingQ()
	sPrime := r.Automorphism(sk.Value, t)
	q := r.Modulus()

	as := r.MulCoeffs(ct.A, sPrime)
	noisy := r.Add(ct.B, as)

	return roundToPlaintext(noisy.Coeffs[slot], q, param.PlaintextModulus())
}

func roundToPlaintext(x, q, plaintextModulus uint64) uint64 {
	delta := q / plaintextModulus
	signed := int64(x)
	if x > q/2 {
		signed = int64(x) - int64(q)
	}
	rounded := (signed + int64(delta)/2)
	if rounded < 0 {
		rounded -= int64(delta) - 1
	}
	m := (rounded / int64(delta)) % int64(plaintextModulus)
	if m < 0 {
		m += int64(plaintextModulus)
	}
	return uint64(m)
}

// secretUnderModulus reduces sk's centered {-1,0,1} coefficients into
// residues mod qFrom (qFrom == 0 meaning 2^64), for use as the LWE-side
// secret when the LWE ciphertexts live under a different modulus than the
// RLWE ring's.
func secretUnderModulus(sk *SecretKey, r *ring.Ring, qFrom uint64) []uint64 {
	q := r.Modulus()
	N := r.N()
	out := make([]uint64, N)
	for i, c := range sk.Value.Coeffs {
		signed := int64(c)
		if c > q/2 {
			signed = int64(c) - int64(q)
		}
		if qFrom == 0 {
			out[i] = uint64(signed)
			continue
		}
		v := signed % int64(qFrom)
		if v < 0 {
			v += int64(qFrom)
		}
		out[i] = uint64(v)
	}
	return out
}

// encryptLWEUnderModulus is encryptLWE generalized to an arbitrary source
// ring (used for LWE ciphertexts under a modulus distinct from the RLWE
// ring's, ahead of a modulus-switching pack).
func encryptLWEUnderModulus(lweRing *ring.Ring, skLWE []uint64, rng prng.PRNG, m, plaintextModulus uint64) LWECiphertext {
	N := lweRing.N()
	qFrom := lweRing.Modulus()

	aPoly := lweRing.NewPoly()
	ring.NewUniformSampler(lweRing, rng).Read(aPoly)
	a := make([]uint64, N)
	copy(a, aPoly.Coeffs)

	ePoly := lweRing.NewPoly()
	ring.NewGaussianSampler(lweRing, rng, 3.19, 0).Read(ePoly)

	var dot uint64
	for i := 0; i < N; i++ {
		dot = addModQ(dot, mulModQ(a[i], skLWE[i], qFrom), qFrom)
	}

	delta := deltaFor(qFrom, plaintextModulus)
	b := addModQ(lweRing.Neg1(dot), addModQ(mulModQ(delta, m, qFrom), ePoly.Coeffs[0], qFrom), qFrom)

	return LWECiphertext{A: a, B: b}
}

// deltaFor returns floor(qFrom/plaintextModulus); for qFrom == 0 (2^64) it
// returns floor((2^64-1)/plaintextModulus).
func deltaFor(qFrom, plaintextModulus uint64) uint64 {
	if qFrom == 0 {
		return (^uint64(0)) / plaintextModulus
	}
	return qFrom / plaintextModulus
}

// addModQ and mulModQ are addMod/mulMod generalized to qFrom == 0 meaning
// 2^64, where native uint64 arithmetic already wraps correctly.
func addModQ(x, y, qFrom uint64) uint64 {
	if qFrom == 0 {
		return x + y
	}
	return addMod(x, y, qFrom)
}

func mulModQ(x, y, qFrom uint64) uint64 {
	if qFrom == 0 {
		return x * y
	}
	return mulMod(x, y, qFrom)
}

func addMod(x, y, q uint64) uint64 {
	s := x + y
	if s >= q {
		s -= q
	}
	return s
}

func mulMod(x, y, q uint64) uint64 {
	prod := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
	prod.Mod(prod, new(big.Int).SetUint64(q))
	return prod.Uint64()
}
