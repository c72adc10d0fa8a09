package sampler

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// ParametricParams defines the multivariate normal used when no reference
// data is supplied.
type ParametricParams struct {
	Mean Vector
	Cov  [NumTraits][NumTraits]float64
}

// DefaultParametric returns the parameters of a prior empirical fit of the
// three traits.
func DefaultParametric() ParametricParams {
	return ParametricParams{
		Mean: Vector{0.44, 0.55, 0.67},
		Cov: [NumTraits][NumTraits]float64{
			{0.0390052298, -0.013795166, -0.0004315343},
			{-0.0137951665, 0.022726950, 0.0037587265},
			{-0.0004315343, 0.003758727, 0.0169329420},
		},
	}
}

// covariance returns Cov as a symmetric matrix. The reference constants
// disagree in their last digits across the diagonal, so the two halves are
// averaged.
func (p ParametricParams) covariance() *mat.SymDense {
	sym := mat.NewSymDense(NumTraits, nil)
	for i := 0; i < NumTraits; i++ {
		for j := i; j < NumTraits; j++ {
			sym.SetSym(i, j, (p.Cov[i][j]+p.Cov[j][i])/2)
		}
	}
	return sym
}

// Validate checks that the covariance is positive definite.
func (p ParametricParams) Validate() error {
	var chol mat.Cholesky
	if ok := chol.Factorize(p.covariance()); !ok {
		return errors.Wrap(ErrInvalidConfig, "parametric covariance is not positive definite")
	}
	return nil
}

func (p ParametricParams) distribution(src rand.Source) (*distmv.Normal, error) {
	dist, ok := distmv.NewNormal(p.Mean[:], p.covariance(), src)
	if !ok {
		return nil, errors.Wrap(ErrInvalidConfig, "parametric covariance is not positive definite")
	}
	return dist, nil
}

// drawParametric draws n clamped vectors straight from the parametric model.
func drawParametric(n int, p ParametricParams, src rand.Source) (*Table, error) {
	dist, err := p.distribution(src)
	if err != nil {
		return nil, err
	}
	out := NewTable(n)
	x := make([]float64, NumTraits)
	for i := 0; i < n; i++ {
		dist.Rand(x)
		out.Append(ClampVector(Vector(x)))
	}
	return out, nil
}
