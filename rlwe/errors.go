package rlwe

import "errors"

// The three error kinds the packing core can report, all at construction or
// deserialization time: every ring and key-switch operation on already
// validated parameters is infallible.
var (
	// ErrParameterInvalid is returned by NewCdksParam when N is not a power
	// of two, q is incompatible with the chosen ModulusKind, the gadget
	// parameters overflow log2(q). CdksParamLiteral carries no LWE
	// dimension, so no LWE dimension is checked against N.
	ErrParameterInvalid = errors.New("rlwe: parameter invalid")

	// ErrModulusSwitchUnsupported is returned by PackLWEsModSwitch when the
	// source LWE ring is neither NonNativePowerOfTwo nor Native.
	ErrModulusSwitchUnsupported = errors.New("rlwe: modulus switch unsupported for this source modulus kind")

	// ErrDeserializationFailed is returned by ReadCdksKeyRawFrom when the
	// encoded key's dimensions do not match the current parameter set.
	ErrDeserializationFailed = errors.New("rlwe: deserialization failed: key does not match parameters")
)
