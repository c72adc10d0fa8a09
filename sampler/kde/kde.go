// Package kde estimates multivariate densities with a product Gaussian kernel.
//
// Bandwidths are chosen per dimension by a named rule; see Methods.
package kde

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnknownMethod is returned for a bandwidth rule name that is not registered.
	ErrUnknownMethod = errors.New("unknown bandwidth method")

	// ErrTooFewObservations is returned when fewer than two observations are supplied.
	ErrTooFewObservations = errors.New("too few observations")
)

var logSqrt2Pi = 0.5 * math.Log(2*math.Pi)

// KDE is a fitted product-kernel density estimate over continuous data.
type KDE struct {
	data   [][]float64
	dim    int
	bw     []float64
	method string
}

// New fits a density estimate to data (one row per observation) using the
// named bandwidth rule. data is retained, not copied.
func New(data [][]float64, method string) (*KDE, error) {
	if len(data) < 2 {
		return nil, errors.Wrapf(ErrTooFewObservations, "got %d, need at least 2", len(data))
	}
	dim := len(data[0])
	if dim == 0 {
		return nil, errors.New("observations have no dimensions")
	}
	for i, row := range data {
		if len(row) != dim {
			return nil, errors.Errorf("observation %d has %d dimensions, want %d", i, len(row), dim)
		}
	}
	rule, ok := rules[method]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMethod, "%q; valid: %v", method, Methods())
	}
	k := &KDE{data: data, dim: dim, method: method}
	k.bw = rule(k)
	return k, nil
}

// Estimate is shorthand for New(data, method).Bandwidth().
func Estimate(data [][]float64, method string) ([]float64, error) {
	k, err := New(data, method)
	if err != nil {
		return nil, err
	}
	return k.Bandwidth(), nil
}

// Bandwidth returns a copy of the per-dimension bandwidths.
func (k *KDE) Bandwidth() []float64 {
	return append([]float64(nil), k.bw...)
}

// Method returns the bandwidth rule the estimate was fitted with.
func (k *KDE) Method() string { return k.method }

// N returns the number of observations.
func (k *KDE) N() int { return len(k.data) }

// PDF evaluates the estimated density at x.
func (k *KDE) PDF(x []float64) float64 {
	if len(x) != k.dim {
		return math.NaN()
	}
	terms := make([]float64, len(k.data))
	for i, row := range k.data {
		terms[i] = logKernel(x, row, k.bw)
	}
	return math.Exp(floats.LogSumExp(terms) - math.Log(float64(len(k.data))))
}

// LeaveOneOutLogLik is the log-likelihood of each observation under the
// density built from all the others, for bandwidth bw.
func (k *KDE) LeaveOneOutLogLik(bw []float64) float64 {
	n := len(k.data)
	terms := make([]float64, 0, n-1)
	norm := math.Log(float64(n - 1))
	total := 0.0
	for i := range k.data {
		terms = terms[:0]
		for j := range k.data {
			if i != j {
				terms = append(terms, logKernel(k.data[i], k.data[j], bw))
			}
		}
		total += floats.LogSumExp(terms) - norm
	}
	return total
}

// integratedSquaredError is the least-squares cross-validation score for bw:
// the integral of the squared estimate minus twice the mean leave-one-out
// density at the observations. Gaussian kernels convolve to a Gaussian of
// width sqrt(2)*h, so the integral has a closed form.
func (k *KDE) integratedSquaredError(bw []float64) float64 {
	n := float64(len(k.data))
	conv := make([]float64, len(bw))
	for d, h := range bw {
		conv[d] = math.Sqrt2 * h
	}
	var squared, loo float64
	for i := range k.data {
		for j := range k.data {
			squared += math.Exp(logKernel(k.data[i], k.data[j], conv))
			if i != j {
				loo += math.Exp(logKernel(k.data[i], k.data[j], bw))
			}
		}
	}
	return squared/(n*n) - 2*loo/(n*(n-1))
}

// logKernel is the log of the product Gaussian kernel centered on c with
// per-dimension width bw. A zero width acts as a point mass.
func logKernel(x, c, bw []float64) float64 {
	s := 0.0
	for d := range x {
		h := bw[d]
		if h <= 0 {
			if x[d] != c[d] {
				return math.Inf(-1)
			}
			continue
		}
		u := (x[d] - c[d]) / h
		s += -0.5*u*u - math.Log(h) - logSqrt2Pi
	}
	return s
}
