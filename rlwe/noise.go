package rlwe

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// NoiseStats summarizes the noise magnitude observed across a batch of
// decrypted ciphertexts, each contributing one log2(|e|) sample
// (min/max/mean/median, reported in log2 scale), built from raw error
// magnitudes rather than round-trip precision against a target plaintext.
type NoiseStats struct {
	MinLog2    float64
	MaxLog2    float64
	MeanLog2   float64
	MedianLog2 float64
	StdDevLog2 float64
}

func (n NoiseStats) String() string {
	return fmt.Sprintf(`
┌────────┬────────┐
│  stat  │ log2|e|│
├────────┼────────┤
│    min │ %6.2f │
│    max │ %6.2f │
│   mean │ %6.2f │
│ median │ %6.2f │
│ stddev │ %6.2f │
└────────┴────────┘
`, n.MinLog2, n.MaxLog2, n.MeanLog2, n.MedianLog2, n.StdDevLog2)
}

// MeasureNoise computes NoiseStats over a batch of raw error magnitudes
// (centered residuals, one per decrypted ciphertext, already lifted to
// Z rather than Z_q). A zero magnitude contributes log2(1) = 0 rather than
// -Inf, since an exact decryption is the noise floor, not an absence of
// signal.
func MeasureNoise(magnitudes []float64) (NoiseStats, error) {
	if len(magnitudes) == 0 {
		return NoiseStats{}, fmt.Errorf("%w: no samples", ErrParameterInvalid)
	}

	logs := make([]float64, len(magnitudes))
	for i, m := range magnitudes {
		if m < 1 {
			m = 1
		}
		logs[i] = math.Log2(m)
	}

	data := stats.LoadRawData(logs)

	min, err := stats.Min(data)
	if err != nil {
		return NoiseStats{}, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return NoiseStats{}, err
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return NoiseStats{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return NoiseStats{}, err
	}
	stddev, err := stats.StandardDeviation(data)
	if err != nil {
		return NoiseStats{}, err
	}

	return NoiseStats{
		MinLog2:    min,
		MaxLog2:    max,
		MeanLog2:   mean,
		MedianLog2: median,
		StdDevLog2: stddev,
	}, nil
}
