package sampler

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// kernelCovariance builds the diagonal product-kernel covariance diag(bw^2).
func kernelCovariance(bw []float64) *mat.SymDense {
	cov := mat.NewSymDense(len(bw), nil)
	for i, h := range bw {
		cov.SetSym(i, i, h*h)
	}
	return cov
}

// noiseFunc fills dst with one zero-mean kernel noise vector.
type noiseFunc func(dst []float64)

// kernelNoise returns a sampler of zero-mean normal vectors with covariance
// diag(bw^2). gonum rejects a singular covariance, which a constant reference
// column produces, so that case draws each dimension on its own.
func kernelNoise(bw []float64, src rand.Source) noiseFunc {
	if dist, ok := distmv.NewNormal(make([]float64, len(bw)), kernelCovariance(bw), src); ok {
		return func(dst []float64) { dist.Rand(dst) }
	}
	rng := rand.New(src)
	return func(dst []float64) {
		for i, h := range bw {
			dst[i] = h * rng.NormFloat64()
		}
	}
}

// indexUpperBound returns the exclusive upper bound for base-row indices.
// By default the last reference row is never drawn; includeLast widens the
// pool to every row.
func indexUpperBound(rows int, includeLast bool) int {
	if includeLast {
		return rows
	}
	return rows - 1
}

// drawKernel performs a smoothed bootstrap: pick a reference row uniformly,
// add kernel noise, clamp each trait to [0,1].
func drawKernel(n int, data *Table, bw []float64, includeLast bool, indexRNG *rand.Rand, noiseSrc rand.Source) (*Table, error) {
	rows := data.Len()
	if rows < 2 {
		return nil, errors.Wrapf(ErrInsufficientData, "reference table has %d rows, need at least 2", rows)
	}
	if len(bw) != NumTraits {
		return nil, errors.Errorf("bandwidth has %d dimensions, want %d", len(bw), NumTraits)
	}
	bound := indexUpperBound(rows, includeLast)

	indices := make([]int, n)
	for i := range indices {
		indices[i] = indexRNG.IntN(bound)
	}

	noise := kernelNoise(bw, noiseSrc)
	out := NewTable(n)
	ks := make([]float64, NumTraits)
	for _, idx := range indices {
		noise(ks)
		v := data.Rows[idx]
		for j := range v {
			v[j] += ks[j]
		}
		out.Append(ClampVector(v))
	}
	return out, nil
}
