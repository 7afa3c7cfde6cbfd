package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/ringpack/ring"
)

func testParamPrime1024(t *testing.T) CdksParam {
	t.Helper()
	q, err := ring.GenPrime(54, 2048)
	require.NoError(t, err)

	param, err := NewCdksParam(CdksParamLiteral{
		LogN:               10,
		ModulusKind:        ring.Prime,
		Modulus:            q,
		SecretDistribution: Ternary,
		NoiseSigma:         3.19,
		LogBase:            17,
		Level:              1,
		PlaintextModulus:   4,
	})
	require.NoError(t, err)
	return param
}

func TestPackLWEsSingle(t *testing.T) {
	param := testParamPrime1024(t)
	rng := newTestRNG(t, 1)

	sk := genSecretKey(param.RingQ(), rng)
	raw := AllocateCdksKeyRaw(param)
	PackingKeyGen(param, sk, rng, raw)
	prep := AllocateCdksKeyEval(param)
	PreparePackingKey(param, raw, prep)

	m0 := uint64(2)
	ct0 := encryptLWE(param, sk, rng, m0)

	out := PackLWEs(param, prep, []LWECiphertext{ct0})

	got := decryptRLWEUnderAutomorphism(param, sk, uint64(2*param.N()-1), out)
	require.Equal(t, m0, got)
}

func TestPackLWEsSevenOfEight(t *testing.T) {
	param := testParamPrime1024(t)
	rng := newTestRNG(t, 2)

	sk := genSecretKey(param.RingQ(), rng)
	raw := AllocateCdksKeyRaw(param)
	PackingKeyGen(param, sk, rng, raw)
	prep := AllocateCdksKeyEval(param)
	PreparePackingKey(param, raw, prep)

	messages := []uint64{0, 1, 2, 3, 0, 1, 2}
	cts := make([]LWECiphertext, len(messages))
	for i, m := range messages {
		cts[i] = encryptLWE(param, sk, rng, m)
	}

	out := PackLWEs(param, prep, cts)

	N := param.N()
	stride := N / 8
	t_final := uint64(2*N - 1)
	for j, want := range messages {
		got := decryptRLWESlot(param, sk, t_final, out, j*stride)
		require.Equalf(t, want, got, "slot %d", j*stride)
	}
}

func TestPackLWEsZero(t *testing.T) {
	param := testParamPrime1024(t)

	out := PackLWEs(param, AllocateCdksKeyEval(param), nil)

	for _, c := range out.A.Coeffs {
		require.Zero(t, c)
	}
	for _, c := range out.B.Coeffs {
		require.Zero(t, c)
	}
}

func TestPackLWEsFull(t *testing.T) {
	param := testParamPrime1024(t)
	rng := newTestRNG(t, 3)

	sk := genSecretKey(param.RingQ(), rng)
	raw := AllocateCdksKeyRaw(param)
	PackingKeyGen(param, sk, rng, raw)
	prep := AllocateCdksKeyEval(param)
	PreparePackingKey(param, raw, prep)

	N := param.N()
	messages := make([]uint64, N)
	for i := range messages {
		messages[i] = uint64(i) % param.PlaintextModulus()
	}
	cts := make([]LWECiphertext, N)
	for i, m := range messages {
		cts[i] = encryptLWE(param, sk, rng, m)
	}

	out := PackLWEs(param, prep, cts)

	t_final := uint64(2*N - 1)
	for j, want := range messages {
		got := decryptRLWESlot(param, sk, t_final, out, j)
		require.Equalf(t, want, got, "slot %d", j)
	}
}

func TestPackLWEsModSwitchNative(t *testing.T) {
	param := testParamPrime1024(t)
	rng := newTestRNG(t, 4)

	sk := genSecretKey(param.RingQ(), rng)
	raw := AllocateCdksKeyRaw(param)
	PackingKeyGen(param, sk, rng, raw)
	prep := AllocateCdksKeyEval(param)
	PreparePackingKey(param, raw, prep)

	N := param.N()
	lweRing, err := ring.NewRing(N, ring.Native, 0, 0)
	require.NoError(t, err)
	skLWE := secretUnderModulus(sk, param.RingQ(), 0)

	messages := []uint64{0, 1, 2, 3}
	cts := make([]LWECiphertext, len(messages))
	for i, m := range messages {
		cts[i] = encryptLWEUnderModulus(lweRing, skLWE, rng, m, param.PlaintextModulus())
	}

	out, err := PackLWEsModSwitch(param, prep, lweRing, cts)
	require.NoError(t, err)

	stride := N / 4
	t_final := uint64(2*N - 1)
	for j, want := range messages {
		got := decryptRLWESlot(param, sk, t_final, out, j*stride)
		require.Equalf(t, want, got, "slot %d", j*stride)
	}
}

func TestPackLWEsModSwitchRejectsPrimeSource(t *testing.T) {
	param := testParamPrime1024(t)
	prep := AllocateCdksKeyEval(param)

	_, err := PackLWEsModSwitch(param, prep, param.RingQ(), nil)
	require.ErrorIs(t, err, ErrModulusSwitchUnsupported)
}

func TestPackLWEsDeterministic(t *testing.T) {
	param := testParamPrime1024(t)

	run := func() *Ciphertext {
		rng := newTestRNG(t, 7)
		sk := genSecretKey(param.RingQ(), rng)
		raw := AllocateCdksKeyRaw(param)
		PackingKeyGen(param, sk, rng, raw)
		prep := AllocateCdksKeyEval(param)
		PreparePackingKey(param, raw, prep)

		messages := []uint64{0, 1, 2, 3}
		cts := make([]LWECiphertext, len(messages))
		for i, m := range messages {
			cts[i] = encryptLWE(param, sk, rng, m)
		}
		return PackLWEs(param, prep, cts)
	}

	out1 := run()
	out2 := run()

	require.True(t, out1.A.Equals(out2.A))
	require.True(t, out1.B.Equals(out2.B))
}
