package kde

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Bandwidth rule names.
const (
	// NormalReference is the rule of thumb 1.06 * sd * n^(-1/(4+d)), with
	// sd the population standard deviation.
	NormalReference = "normal_reference"
	// Scott is sd * n^(-1/(d+4)), with sd the sample standard deviation.
	Scott = "scott"
	// Silverman is sd * (n*(d+2)/4)^(-1/(d+4)).
	Silverman = "silverman"
	// MaxLikelihoodCV maximizes the leave-one-out log-likelihood.
	MaxLikelihoodCV = "cv_ml"
	// LeastSquaresCV minimizes the estimated integrated squared error.
	LeastSquaresCV = "cv_ls"
)

// DefaultMethod is the rule used when none is configured.
const DefaultMethod = NormalReference

type rule func(k *KDE) []float64

var rules = map[string]rule{
	NormalReference: normalReference,
	Scott:           scott,
	Silverman:       silverman,
	MaxLikelihoodCV: maxLikelihoodCV,
	LeastSquaresCV:  leastSquaresCV,
}

// Methods lists the registered bandwidth rules in sorted order.
func Methods() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidMethod reports whether name is a registered bandwidth rule.
func ValidMethod(name string) bool {
	_, ok := rules[name]
	return ok
}

// stdDevs returns the per-dimension standard deviation. The population form
// divides by n, the sample form by n-1.
func stdDevs(k *KDE, population bool) []float64 {
	col := make([]float64, len(k.data))
	sd := make([]float64, k.dim)
	for d := 0; d < k.dim; d++ {
		for i, row := range k.data {
			col[i] = row[d]
		}
		if population {
			_, sd[d] = stat.PopMeanStdDev(col, nil)
		} else {
			sd[d] = stat.StdDev(col, nil)
		}
	}
	return sd
}

func scaled(sd []float64, factor float64) []float64 {
	out := make([]float64, len(sd))
	for i, s := range sd {
		out[i] = s * factor
	}
	return out
}

func normalReference(k *KDE) []float64 {
	n, d := float64(k.N()), float64(k.dim)
	return scaled(stdDevs(k, true), 1.06*math.Pow(n, -1/(4+d)))
}

func scott(k *KDE) []float64 {
	n, d := float64(k.N()), float64(k.dim)
	return scaled(stdDevs(k, false), math.Pow(n, -1/(d+4)))
}

func silverman(k *KDE) []float64 {
	n, d := float64(k.N()), float64(k.dim)
	return scaled(stdDevs(k, false), math.Pow(n*(d+2)/4, -1/(d+4)))
}

const (
	cvMaxEvaluations = 400
	// cvLogSpan bounds the search to a factor of e^cvLogSpan around the start.
	cvLogSpan = 7.0
	cvPenalty = 1e300
)

func maxLikelihoodCV(k *KDE) []float64 {
	return crossValidate(k, MaxLikelihoodCV, func(bw []float64) float64 {
		return -k.LeaveOneOutLogLik(bw)
	})
}

func leastSquaresCV(k *KDE) []float64 {
	return crossValidate(k, LeastSquaresCV, k.integratedSquaredError)
}

// crossValidate minimizes loss over log-bandwidths with Nelder-Mead, starting
// from the normal reference rule. Dimensions with zero spread keep a zero
// bandwidth.
func crossValidate(k *KDE, name string, loss func(bw []float64) float64) []float64 {
	start := normalReference(k)
	for _, h := range start {
		if !(h > 0) {
			logrus.Warnf("%s: zero-spread dimension in %v; using %s bandwidths", name, start, NormalReference)
			return start
		}
	}

	x0 := make([]float64, len(start))
	for i, h := range start {
		x0[i] = math.Log(h)
	}
	bw := make([]float64, len(start))
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			for i := range x {
				if math.Abs(x[i]-x0[i]) > cvLogSpan {
					return cvPenalty
				}
				bw[i] = math.Exp(x[i])
			}
			v := loss(bw)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return cvPenalty
			}
			return v
		},
	}
	settings := &optimize.Settings{FuncEvaluations: cvMaxEvaluations}
	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if result == nil || result.F >= cvPenalty {
		logrus.Warnf("%s: optimization failed (%v); using %s bandwidths", name, err, NormalReference)
		return start
	}
	if err != nil {
		logrus.Debugf("%s: optimizer stopped early: %v", name, err)
	}

	out := make([]float64, len(start))
	for i, x := range result.X {
		out[i] = math.Exp(x)
	}
	logrus.Debugf("%s: bandwidth %v -> %v after %d evaluations (status %v)",
		name, start, out, result.Stats.FuncEvaluations, result.Status)
	return out
}
