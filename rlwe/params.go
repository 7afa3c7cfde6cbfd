// Package rlwe packs many LWE ciphertexts into a single RLWE ciphertext
// through a recursive tree of automorphism key-switches (CDKS packing),
// and provides the automorphism key generation, gadget decomposition, and
// serialization that operation depends on.
package rlwe

import (
	"fmt"
	"math/bits"

	"github.com/google/go-cmp/cmp"

	"github.com/latticeforge/ringpack/ring"
)

// SecretDistribution selects how CdksParam samples the RLWE secret key.
type SecretDistribution int

const (
	// Ternary samples each coefficient uniformly from {-1, 0, 1}.
	Ternary SecretDistribution = iota
	// Gaussian samples each coefficient from a discrete Gaussian with the
	// parameter's stated standard deviation.
	Gaussian
)

// CdksParamLiteral is the user-facing, unvalidated description of a
// CdksParam; NewCdksParam checks it and turns it into an immutable
// CdksParam. A plain literal for construction, an opaque validated type
// everywhere else.
type CdksParamLiteral struct {
	LogN int

	ModulusKind ring.ModulusKind
	Modulus     uint64 // the prime q, for ModulusKind Prime
	ModulusBits int    // b, for ModulusKind NonNativePowerOfTwo

	SecretDistribution SecretDistribution
	SecretSigma        float64 // used only when SecretDistribution == Gaussian

	NoiseSigma float64

	LogBase int // gadget base B = 2^LogBase
	Level   int // gadget decomposition limb count

	PlaintextModulus uint64
}

// CdksParam is an immutable, validated parameter set for the packing core.
// Every field of CdksParamLiteral has already been checked against the
// invariants of the component design: N a power of two, the modulus
// compatible with its ModulusKind, and the gadget parameters within
// log2(q).
type CdksParam struct {
	logN int

	modulusKind ring.ModulusKind
	modulus     uint64
	modulusBits int

	secretDistribution SecretDistribution
	secretSigma        float64
	noiseSigma         float64

	logBase int
	level   int

	plaintextModulus uint64

	ringQ *ring.Ring
}

// NewCdksParam validates lit and builds the Ring it describes, returning
// ErrParameterInvalid wrapped with the specific violation on failure.
func NewCdksParam(lit CdksParamLiteral) (CdksParam, error) {
	if lit.LogN <= 0 {
		return CdksParam{}, fmt.Errorf("%w: LogN must be positive, got %d", ErrParameterInvalid, lit.LogN)
	}

	N := 1 << uint(lit.LogN)

	if lit.Level <= 0 {
		return CdksParam{}, fmt.Errorf("%w: Level must be positive, got %d", ErrParameterInvalid, lit.Level)
	}

	if lit.LogBase <= 0 {
		return CdksParam{}, fmt.Errorf("%w: LogBase must be positive, got %d", ErrParameterInvalid, lit.LogBase)
	}

	var qBits int
	switch lit.ModulusKind {
	case ring.Prime:
		if lit.Modulus == 0 {
			return CdksParam{}, fmt.Errorf("%w: Prime modulus must be nonzero", ErrParameterInvalid)
		}
		if lit.Modulus>>62 != 0 {
			return CdksParam{}, fmt.Errorf("%w: Prime modulus must fit in 62 bits", ErrParameterInvalid)
		}
		qBits = bits.Len64(lit.Modulus)
	case ring.NonNativePowerOfTwo:
		if lit.ModulusBits <= 0 || lit.ModulusBits >= 64 {
			return CdksParam{}, fmt.Errorf("%w: NonNativePowerOfTwo requires 0 < ModulusBits < 64", ErrParameterInvalid)
		}
		qBits = lit.ModulusBits
	case ring.Native:
		qBits = 64
	default:
		return CdksParam{}, fmt.Errorf("%w: unknown ModulusKind %v", ErrParameterInvalid, lit.ModulusKind)
	}

	if lit.LogBase*lit.Level > qBits {
		return CdksParam{}, fmt.Errorf("%w: gadget decomposition (log_base=%d, level=%d) overflows log2(q)=%d",
			ErrParameterInvalid, lit.LogBase, lit.Level, qBits)
	}

	ringQ, err := ring.NewRing(N, lit.ModulusKind, lit.Modulus, lit.ModulusBits)
	if err != nil {
		return CdksParam{}, fmt.Errorf("%w: %s", ErrParameterInvalid, err)
	}

	sigma := lit.NoiseSigma
	if sigma == 0 {
		sigma = 3.19
	}

	return CdksParam{
		logN:               lit.LogN,
		modulusKind:         lit.ModulusKind,
		modulus:             lit.Modulus,
		modulusBits:         lit.ModulusBits,
		secretDistribution:  lit.SecretDistribution,
		secretSigma:         lit.SecretSigma,
		noiseSigma:          sigma,
		logBase:             lit.LogBase,
		level:               lit.Level,
		plaintextModulus:    lit.PlaintextModulus,
		ringQ:               ringQ,
	}, nil
}

// N returns the ring dimension.
func (p CdksParam) N() int { return 1 << uint(p.logN) }

// LogN returns log2(N).
func (p CdksParam) LogN() int { return p.logN }

// RingQ returns the validated Ring this parameter set built.
func (p CdksParam) RingQ() *ring.Ring { return p.ringQ }

// LogBase returns the gadget base's log2.
func (p CdksParam) LogBase() int { return p.logBase }

// Level returns the gadget decomposition limb count.
func (p CdksParam) Level() int { return p.level }

// PlaintextModulus returns the plaintext space modulus used to scale
// messages by Delta = q / PlaintextModulus.
func (p CdksParam) PlaintextModulus() uint64 { return p.plaintextModulus }

// NoiseSigma returns the standard deviation of the key-switching noise
// distribution.
func (p CdksParam) NoiseSigma() float64 { return p.noiseSigma }

// SecretDistribution reports which distribution the RLWE secret is drawn
// from.
func (p CdksParam) SecretDistribution() SecretDistribution { return p.secretDistribution }

// SecretSigma returns the standard deviation used when SecretDistribution
// is Gaussian.
func (p CdksParam) SecretSigma() float64 { return p.secretSigma }

// Equal reports whether p and other describe the same parameter set,
// comparing every scalar field (not the derived Ring, which is rebuilt
// deterministically from them).
func (p CdksParam) Equal(other CdksParam) bool {
	type scalars struct {
		LogN                                       int
		ModulusKind                                ring.ModulusKind
		Modulus                                     uint64
		ModulusBits                                 int
		SecretDistribution                          SecretDistribution
		SecretSigma, NoiseSigma                     float64
		LogBase, Level                              int
		PlaintextModulus                            uint64
	}
	a := scalars{p.logN, p.modulusKind, p.modulus, p.modulusBits, p.secretDistribution, p.secretSigma, p.noiseSigma, p.logBase, p.level, p.plaintextModulus}
	b := scalars{other.logN, other.modulusKind, other.modulus, other.modulusBits, other.secretDistribution, other.secretSigma, other.noiseSigma, other.logBase, other.level, other.plaintextModulus}
	return cmp.Equal(a, b)
}

// RequiredTwists returns the canonical, ascending-then-2N-1-last ordering
// of automorphism twists the packer's tree needs: { 2^(logN-j)+1 : j =
// 1..logN } followed by 2N-1.
func (p CdksParam) RequiredTwists() []uint64 {
	N := p.N()
	twists := make([]uint64, 0, p.logN+1)
	for j := p.logN; j >= 1; j-- {
		twists = append(twists, uint64(1<<uint(p.logN-j))+1)
	}
	twists = append(twists, uint64(2*N-1))
	return twists
}
