package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGadgetVector(t *testing.T) {
	g := GadgetVector(4, 4)
	require.Equal(t, []uint64{1, 16, 256, 4096}, g)
}

func TestDecomposeRoundTrip(t *testing.T) {
	const q = uint64(1<<54 + 13) // not required to be prime for this arithmetic check
	const logBase = 9
	const level = 6

	samples := []uint64{0, 1, q - 1, q / 2, 123456789, q/3*2 + 7}

	for _, x := range samples {
		digits := Decompose(x, q, logBase, level)
		require.Len(t, digits, level)
		for _, d := range digits {
			require.LessOrEqual(t, d, int64(1<<(logBase-1)))
			require.Greater(t, d, -int64(1<<(logBase-1)))
		}

		recomposed := Recompose(digits, q, logBase)

		diff := centerLift(toUnsigned(int64(x)-int64(recomposed), q), q)
		if diff < 0 {
			diff = -diff
		}

		bound := int64(q) >> uint(level*logBase)
		if bound < 1 {
			bound = 1
		}
		require.LessOrEqualf(t, diff, bound, "x=%d recomposed=%d", x, recomposed)
	}
}
